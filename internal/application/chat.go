package application

import (
	"context"
	"log"
	"strings"
	"sync"

	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/input"
	"tradutor/internal/ports/output"
	"tradutor/pkg/langtag"
)

var _ input.ChatUseCase = (*ChatService)(nil)

// ChatService is the entry point of the fan-out pipeline: it resolves
// recipient languages, decides whether translation is needed at all, and
// routes the request to the direct provider path or the relay transport.
type ChatService struct {
	languages  output.LanguageRepository
	directory  output.Directory
	translator *TranslationService
	dispatcher input.Dispatcher
	pending    *PendingStore
	relay      output.ChatRelay   // optional
	bridge     output.GroupBridge // optional

	defaultLanguage string
	disabledOnce    sync.Once
}

// NewChatService wires the pipeline. relay and bridge may be nil.
func NewChatService(
	languages output.LanguageRepository,
	directory output.Directory,
	translator *TranslationService,
	dispatcher input.Dispatcher,
	pending *PendingStore,
	relay output.ChatRelay,
	bridge output.GroupBridge,
	defaultLanguage string,
) *ChatService {
	return &ChatService{
		languages:       languages,
		directory:       directory,
		translator:      translator,
		dispatcher:      dispatcher,
		pending:         pending,
		relay:           relay,
		bridge:          bridge,
		defaultLanguage: defaultLanguage,
	}
}

// Submit accepts one chat event and fans it out. It never blocks on the
// provider: the direct path runs on the invoker's worker pool and the relay
// path only enqueues a frame. Recipients sharing the sender's language get
// the original text locally without any external call.
func (s *ChatService) Submit(ctx context.Context, ev input.ChatEvent) {
	if strings.TrimSpace(ev.SenderName) == "" {
		return
	}

	if err := s.languages.UpdateUsername(ctx, ev.SenderID, ev.SenderName); err != nil {
		log.Printf("tradutor: failed to refresh username for %s: %v", ev.SenderName, err)
	}

	recipients := s.recipientsExceptSender(ev)
	senderLanguage := s.senderLanguage(ctx, ev)
	translationNeeded := s.shouldTranslate(ctx, senderLanguage, recipients)

	if !translationNeeded && len(recipients) > 0 {
		// Single-language room: deliver the original text directly.
		for _, r := range recipients {
			s.deliver(r, s.format(ev, ev.Text))
		}
	}

	if !ev.FromBridge && s.bridge != nil && s.bridge.HasChannelForLanguage(senderLanguage) {
		s.bridge.SendUntranslated(ev.SenderName, ev.Text, senderLanguage)
	}

	var targets []entities.Target
	if translationNeeded {
		targets = s.onlineTargets(ctx)
	}
	if !ev.FromBridge && s.bridge != nil {
		targets = s.bridge.AppendTargets(targets, senderLanguage)
	}
	if len(targets) == 0 {
		return
	}

	messageID := newMessageID()
	s.pending.Put(messageID, &PendingChat{
		SenderID:   ev.SenderID,
		SenderName: ev.SenderName,
		Formatter:  ev.Formatter,
	})

	req := &entities.ChatRequest{
		MessageID:        messageID,
		OriginalText:     ev.Text,
		OriginalLanguage: senderLanguage,
		SenderID:         ev.SenderID,
		SenderName:       ev.SenderName,
		Targets:          targets,
	}

	if s.translator.Direct() {
		s.translator.TranslateAsync(ctx, req, func(resp *entities.TranslationResponse) {
			s.dispatcher.Dispatch(messageID, resp)
		})
		return
	}

	if s.relay != nil && s.relay.Configured() {
		s.relay.SendChat(req)
		return
	}

	s.disabledOnce.Do(func() {
		log.Printf("tradutor: translation disabled, configure a provider key or the relay url/server id")
	})
}

// recipientsExceptSender snapshots the live directory minus the sender,
// keyed by lowercased name so duplicates collapse.
func (s *ChatService) recipientsExceptSender(ev input.ChatEvent) []output.Recipient {
	if s.directory == nil {
		return nil
	}
	var out []output.Recipient
	seen := make(map[string]bool)
	for _, r := range s.directory.Online() {
		if r == nil {
			continue
		}
		name := strings.TrimSpace(r.Name())
		if name == "" {
			continue
		}
		if ev.SenderID != "" && r.ID() == ev.SenderID {
			continue
		}
		if strings.EqualFold(name, ev.SenderName) {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func (s *ChatService) senderLanguage(ctx context.Context, ev input.ChatEvent) string {
	if lang := strings.TrimSpace(ev.Language); lang != "" {
		return lang
	}
	if stored, err := s.languages.Get(ctx, ev.SenderID); err == nil && strings.TrimSpace(stored) != "" {
		return strings.TrimSpace(stored)
	}
	return s.fallbackLanguage()
}

// resolveLanguage picks a recipient's language: stored preference, then the
// client-reported hint, then the configured default, then "auto".
func (s *ChatService) resolveLanguage(ctx context.Context, r output.Recipient) string {
	if stored, err := s.languages.Get(ctx, r.ID()); err == nil && strings.TrimSpace(stored) != "" {
		return strings.TrimSpace(stored)
	}
	if hint := strings.TrimSpace(r.LanguageHint()); hint != "" {
		return hint
	}
	return s.fallbackLanguage()
}

func (s *ChatService) fallbackLanguage() string {
	if lang := strings.TrimSpace(s.defaultLanguage); lang != "" {
		return lang
	}
	return "auto"
}

func (s *ChatService) shouldTranslate(ctx context.Context, senderLanguage string, recipients []output.Recipient) bool {
	base := langtag.Normalize(senderLanguage)
	for _, r := range recipients {
		lang := langtag.Normalize(s.resolveLanguage(ctx, r))
		if base == "" {
			base = lang
			continue
		}
		if lang != "" && lang != base {
			return true
		}
	}
	return false
}

// onlineTargets builds the wire target list from everyone online, sender
// included; the same-language resolution downstream handles the sender's
// own category.
func (s *ChatService) onlineTargets(ctx context.Context) []entities.Target {
	if s.directory == nil {
		return nil
	}
	var out []entities.Target
	for _, r := range s.directory.Online() {
		if r == nil {
			continue
		}
		name := strings.TrimSpace(r.Name())
		if name == "" {
			continue
		}
		out = append(out, entities.Target{
			Name:     name,
			Language: s.resolveLanguage(ctx, r),
		})
	}
	return out
}

func (s *ChatService) format(ev input.ChatEvent, text string) string {
	if ev.Formatter != nil {
		return ev.Formatter(ev.SenderName, text)
	}
	return ev.SenderName + ": " + text
}

func (s *ChatService) deliver(r output.Recipient, text string) {
	if err := r.Deliver(text); err != nil {
		log.Printf("tradutor: failed to deliver chat to %s: %v", r.Name(), err)
	}
}
