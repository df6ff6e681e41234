package application

import (
	"context"
	"log"
	"strings"

	"tradutor/internal/ports/input"
	"tradutor/internal/ports/output"
	"tradutor/pkg/langtag"
)

var _ input.ConnectUseCase = (*ConnectService)(nil)

// ConnectService handles participants joining: it refreshes the stored
// username, auto-detects a language from the connecting IP for players
// without a preference, and sends the localized join warning.
type ConnectService struct {
	languages output.LanguageRepository
	geo       output.Geolocator // optional
	messages  output.Messages   // optional

	defaultLanguage string
	warnOnJoin      bool
}

// NewConnectService creates the join handler. geo and messages may be nil.
func NewConnectService(languages output.LanguageRepository, geo output.Geolocator, messages output.Messages, defaultLanguage string, warnOnJoin bool) *ConnectService {
	return &ConnectService{
		languages:       languages,
		geo:             geo,
		messages:        messages,
		defaultLanguage: defaultLanguage,
		warnOnJoin:      warnOnJoin,
	}
}

// OnConnect runs the join flow. The geolocation lookup happens off the
// caller's goroutine; everything visible to the player is best-effort.
func (s *ConnectService) OnConnect(ctx context.Context, r output.Recipient, ip string) {
	if r == nil {
		return
	}
	if err := s.languages.UpdateUsername(ctx, r.ID(), r.Name()); err != nil {
		log.Printf("tradutor: failed to refresh username for %s: %v", r.Name(), err)
	}

	if s.geo != nil {
		go s.autoDetect(context.WithoutCancel(ctx), r, ip)
	}

	if !s.warnOnJoin || s.messages == nil {
		return
	}
	locale := s.localeFor(ctx, r)
	warn := s.messages.T(locale, "join.warn", nil)
	if strings.TrimSpace(warn) == "" {
		return
	}
	if err := r.Deliver(warn); err != nil {
		log.Printf("tradutor: failed to send join warning to %s: %v", r.Name(), err)
	}
}

// autoDetect assigns a language from the player's country when no
// preference is stored yet. Failures are logged and dropped; the player
// keeps the default language until they pick one.
func (s *ConnectService) autoDetect(ctx context.Context, r output.Recipient, ip string) {
	has, err := s.languages.Has(ctx, r.ID())
	if err != nil || has {
		return
	}
	result, err := s.geo.Lookup(ctx, ip)
	if err != nil {
		log.Printf("tradutor: language auto-detection skipped for %s: %v", r.Name(), err)
		return
	}
	language := langtag.LanguageForCountry(result.CountryCode)
	if language == "" {
		log.Printf("tradutor: no language mapping for country %s (player %s)", result.CountryCode, r.Name())
		return
	}
	// Re-check: the player may have picked a language while we looked up.
	if has, err := s.languages.Has(ctx, r.ID()); err != nil || has {
		return
	}
	storedIP := result.IP
	if storedIP == "" {
		storedIP = ip
	}
	err = s.languages.Set(ctx, r.ID(), output.LanguagePreference{
		Username: r.Name(),
		Language: language,
		IP:       storedIP,
	})
	if err != nil {
		log.Printf("tradutor: failed to store auto-detected language for %s: %v", r.Name(), err)
		return
	}
	log.Printf("tradutor: language auto-detected for %s: %s (country %s)", r.Name(), language, result.CountryCode)

	if s.messages == nil {
		return
	}
	notice := s.messages.T(language, "language.auto_set", map[string]any{"Language": language})
	if strings.TrimSpace(notice) == "" {
		return
	}
	if err := r.Deliver(notice); err != nil {
		log.Printf("tradutor: failed to send auto-detection notice to %s: %v", r.Name(), err)
	}
}

func (s *ConnectService) localeFor(ctx context.Context, r output.Recipient) string {
	if stored, err := s.languages.Get(ctx, r.ID()); err == nil && strings.TrimSpace(stored) != "" {
		return strings.TrimSpace(stored)
	}
	if hint := strings.TrimSpace(r.LanguageHint()); hint != "" {
		return hint
	}
	return s.defaultLanguage
}
