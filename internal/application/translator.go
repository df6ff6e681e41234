package application

import (
	"context"
	"log"
	"sync"
	"time"

	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/output"
	"tradutor/pkg/langtag"
)

const (
	// translateAttempts is the total number of provider calls per message.
	// Attempts are immediate, with no backoff between them; the per-attempt
	// timeout is the only latency bound.
	translateAttempts = 2

	// translateWorkers bounds concurrent provider calls so translation
	// latency never starves chat-event processing.
	translateWorkers = 2
)

// TranslationService is the invoker: it decides which languages actually
// need translating, calls the provider at most twice, and always resolves to
// a usable response — the echo response when everything else fails.
type TranslationService struct {
	provider output.TranslationProvider
	timeout  time.Duration
	sem      chan struct{}

	degradedOnce sync.Once
}

// NewTranslationService creates the invoker. provider may be nil when direct
// translation is not configured.
func NewTranslationService(provider output.TranslationProvider, timeout time.Duration) *TranslationService {
	if timeout <= 0 {
		timeout = time.Minute
	}
	if timeout < time.Second {
		timeout = time.Second
	}
	return &TranslationService{
		provider: provider,
		timeout:  timeout,
		sem:      make(chan struct{}, translateWorkers),
	}
}

// Direct reports whether the direct provider path is available.
func (s *TranslationService) Direct() bool {
	return s.provider != nil && s.provider.Configured()
}

// Translate runs the full fan-out for one request synchronously and never
// returns nil: on any failure every recipient resolves to the original text.
func (s *TranslationService) Translate(ctx context.Context, req *entities.ChatRequest) *entities.TranslationResponse {
	if req == nil {
		return &entities.TranslationResponse{}
	}
	targets := SanitizeTargets(req.Targets)
	if len(targets) == 0 {
		return emptyResponse(req)
	}
	dedupe := DedupeByLanguage(targets)
	if len(dedupe.Targets) == 0 {
		return emptyResponse(req)
	}
	if !s.needsProvider(dedupe, req.OriginalLanguage) {
		// Everyone speaks the sender's language; identity passthrough.
		return NormalizeResponse(nil, targets, dedupe, req)
	}
	if !s.Direct() {
		s.degradedOnce.Do(func() {
			log.Printf("tradutor: translation provider not configured, delivering original text only")
		})
		return NormalizeResponse(nil, targets, dedupe, req)
	}

	preq := output.ProviderRequest{
		OriginalText:     req.OriginalText,
		OriginalLanguage: req.OriginalLanguage,
		Targets:          dedupe.Targets,
	}
	for attempt := 1; attempt <= translateAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		items, err := s.provider.Translate(attemptCtx, preq)
		cancel()
		if err != nil {
			log.Printf("tradutor: translation attempt %d/%d failed: %v", attempt, translateAttempts, err)
			continue
		}
		return NormalizeResponse(items, targets, dedupe, req)
	}
	log.Printf("tradutor: translation attempts exhausted for message %s, delivering original text", req.MessageID)
	return NormalizeResponse(nil, targets, dedupe, req)
}

// TranslateAsync runs Translate on the bounded worker pool and hands the
// result to done. The caller is never blocked, even when both workers are
// busy.
func (s *TranslationService) TranslateAsync(ctx context.Context, req *entities.ChatRequest, done func(*entities.TranslationResponse)) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		s.sem <- struct{}{}
		defer func() { <-s.sem }()
		done(s.Translate(ctx, req))
	}()
}

// Fallback synthesizes the echo response for a request without touching the
// provider.
func (s *TranslationService) Fallback(req *entities.ChatRequest) *entities.TranslationResponse {
	if req == nil {
		return &entities.TranslationResponse{}
	}
	targets := SanitizeTargets(req.Targets)
	return NormalizeResponse(nil, targets, DedupeByLanguage(targets), req)
}

// needsProvider reports whether any deduped target wants a language other
// than the original message's.
func (s *TranslationService) needsProvider(dedupe DedupeResult, originalLanguage string) bool {
	base := langtag.Normalize(originalLanguage)
	for _, t := range dedupe.Targets {
		if langtag.Normalize(t.Language) != base {
			return true
		}
	}
	return false
}
