package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/input"
	"tradutor/internal/ports/output"
	"tradutor/pkg/langtag"
)

// targetPrefix marks the pseudo-targets the bridge injects into the fan-out;
// the dispatcher routes items addressed to these names back here.
const targetPrefix = "DISCORD:"

var _ output.GroupBridge = (*Bridge)(nil)

type channelMapping struct {
	language   string // as configured, sent to the provider verbatim
	normalized string
	channelID  string
}

// Bridge mirrors chat between the game and Discord, one text channel per
// language. Messages written in a mapped channel re-enter the translation
// pipeline as chat events; translated lines addressed to "DISCORD:<lang>"
// come back out to the matching channel.
type Bridge struct {
	session  *discordgo.Session
	chat     input.ChatUseCase
	channels []channelMapping
	byLang   map[string]channelMapping // normalized language -> mapping
	byChan   map[string]channelMapping // channel id -> mapping

	warned sync.Map // normalized language -> struct{}
}

// NewBridge creates a Bridge for the given bot token and language-to-channel
// mapping. Channels with an empty language or id are skipped; duplicate
// languages keep the first mapping.
func NewBridge(token string, channels map[string]string) (*Bridge, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bridge{
		session: session,
		byLang:  make(map[string]channelMapping),
		byChan:  make(map[string]channelMapping),
	}
	for language, channelID := range channels {
		language = strings.TrimSpace(language)
		channelID = strings.TrimSpace(channelID)
		normalized := langtag.Normalize(language)
		if normalized == "" || channelID == "" {
			continue
		}
		if _, dup := b.byLang[normalized]; dup {
			continue
		}
		m := channelMapping{language: language, normalized: normalized, channelID: channelID}
		b.channels = append(b.channels, m)
		b.byLang[normalized] = m
		b.byChan[channelID] = m
	}

	session.AddHandler(b.onMessage)
	return b, nil
}

// SetChat wires the use case that receives messages typed in Discord. Must
// be called before Start.
func (b *Bridge) SetChat(chat input.ChatUseCase) {
	b.chat = chat
}

// Start opens the gateway connection.
func (b *Bridge) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}
	log.Printf("tradutor: Discord bridge connected (%d channel(s))", len(b.channels))
	return nil
}

// Stop closes the gateway connection.
func (b *Bridge) Stop() {
	if err := b.session.Close(); err != nil {
		log.Printf("tradutor: Discord close: %v", err)
	}
}

// HasChannelForLanguage reports whether a channel is mapped to the language.
func (b *Bridge) HasChannelForLanguage(language string) bool {
	_, ok := b.byLang[langtag.Normalize(language)]
	return ok
}

// AppendTargets adds one pseudo-target per mapped channel whose language
// differs from senderLanguage.
func (b *Bridge) AppendTargets(targets []entities.Target, senderLanguage string) []entities.Target {
	base := langtag.Normalize(senderLanguage)
	for _, m := range b.channels {
		if m.normalized == base {
			continue
		}
		targets = append(targets, entities.Target{
			Name:     targetPrefix + m.normalized,
			Language: m.language,
		})
	}
	return targets
}

// SendTranslated posts a translated line to the channel mapped to language.
func (b *Bridge) SendTranslated(language, senderName, text string) {
	b.send(language, senderName, text)
}

// SendUntranslated posts a same-language message straight to the sender's
// own language channel.
func (b *Bridge) SendUntranslated(senderName, text, language string) {
	b.send(language, senderName, text)
}

func (b *Bridge) send(language, senderName, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	m, ok := b.byLang[langtag.Normalize(language)]
	if !ok {
		b.warnMissingChannel(language)
		return
	}
	formatted := "**" + SanitizeForDiscord(senderName) + "**: " + SanitizeForDiscord(text)
	if _, err := b.session.ChannelMessageSend(m.channelID, formatted); err != nil {
		log.Printf("tradutor: Discord send failed (channel=%s): %v", m.channelID, err)
	}
}

func (b *Bridge) warnMissingChannel(language string) {
	key := langtag.Normalize(language)
	if _, loaded := b.warned.LoadOrStore(key, struct{}{}); !loaded {
		log.Printf("tradutor: no Discord channel mapped for language %q", language)
	}
}

func (b *Bridge) onMessage(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if b.chat == nil || m.Author == nil || m.Author.Bot {
		return
	}
	mapping, ok := b.byChan[m.ChannelID]
	if !ok {
		return
	}
	text := SanitizeForGame(strings.TrimSpace(m.ContentWithMentionsReplaced()))
	if text == "" {
		return
	}
	b.chat.Submit(context.Background(), input.ChatEvent{
		SenderName: m.Author.Username,
		Text:       text,
		Language:   mapping.language,
		Formatter: func(sender, line string) string {
			return "[Discord] " + sender + ": " + line
		},
		FromBridge: true,
	})
}
