package application

import (
	"context"
	"log"
	"strings"

	"tradutor/internal/domain"
	"tradutor/internal/ports/input"
	"tradutor/internal/ports/output"
	"tradutor/pkg/langtag"
)

var _ input.LanguageUseCase = (*LanguageService)(nil)

// LanguageService handles participant-initiated preference changes, the host
// side of the "/l <code>" command.
type LanguageService struct {
	languages output.LanguageRepository
	messages  output.Messages // optional
}

// NewLanguageService creates the preference handler. messages may be nil.
func NewLanguageService(languages output.LanguageRepository, messages output.Messages) *LanguageService {
	return &LanguageService{languages: languages, messages: messages}
}

// SetLanguage validates tag, stores its canonical form and confirms to the
// participant in the new language.
func (s *LanguageService) SetLanguage(ctx context.Context, r output.Recipient, tag string) (string, error) {
	if r == nil {
		return "", domain.ErrLanguageUnknown
	}
	canonical, ok := langtag.Canonical(tag)
	if !ok {
		s.notify(r, tag, "language.invalid", strings.TrimSpace(tag))
		return "", domain.ErrLanguageUnknown
	}
	err := s.languages.Set(ctx, r.ID(), output.LanguagePreference{
		Username: r.Name(),
		Language: canonical,
	})
	if err != nil {
		return "", err
	}
	s.notify(r, canonical, "language.updated", canonical)
	return canonical, nil
}

// ClearLanguage removes the stored preference; the participant falls back to
// the client hint and the configured default.
func (s *LanguageService) ClearLanguage(ctx context.Context, r output.Recipient) error {
	if r == nil {
		return nil
	}
	return s.languages.Clear(ctx, r.ID())
}

func (s *LanguageService) notify(r output.Recipient, locale, key, language string) {
	if s.messages == nil {
		return
	}
	msg := s.messages.T(locale, key, map[string]any{"Language": language})
	if strings.TrimSpace(msg) == "" {
		return
	}
	if err := r.Deliver(msg); err != nil {
		log.Printf("tradutor: failed to confirm language change to %s: %v", r.Name(), err)
	}
}
