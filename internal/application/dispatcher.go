package application

import (
	"log"
	"strings"

	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/input"
	"tradutor/internal/ports/output"
)

// bridgeTargetPrefix marks pseudo-targets that stand for a group-bridge
// channel rather than a live recipient. The suffix is the normalized
// language of the mapped channel.
const bridgeTargetPrefix = "DISCORD:"

var _ input.Dispatcher = (*Dispatcher)(nil)

// Dispatcher resolves a translation result against the send context stored
// for its message id and delivers each line to the matching live recipient.
type Dispatcher struct {
	pending   *PendingStore
	directory output.Directory
	bridge    output.GroupBridge // optional
}

// NewDispatcher creates a Dispatcher. bridge may be nil.
func NewDispatcher(pending *PendingStore, directory output.Directory, bridge output.GroupBridge) *Dispatcher {
	return &Dispatcher{pending: pending, directory: directory, bridge: bridge}
}

// Dispatch delivers one translation result at most once per message id: the
// pending entry is removed up front, so a second call (or a late frame after
// TTL expiry) finds nothing and the sender context degrades to whatever the
// response itself carries. Per-recipient delivery failures are logged and
// never abort the remaining deliveries.
func (d *Dispatcher) Dispatch(messageID string, resp *entities.TranslationResponse) {
	if resp == nil || len(resp.Items) == 0 {
		return
	}

	pending := d.pending.Remove(messageID)

	senderName := resp.SenderName
	var formatter output.Formatter
	if pending != nil {
		if pending.SenderName != "" {
			senderName = pending.SenderName
		}
		formatter = pending.Formatter
	}

	render := func(text string) string { return text }
	switch {
	case formatter != nil:
		render = func(text string) string { return formatter(senderName, text) }
	case senderName != "":
		render = func(text string) string { return senderName + ": " + text }
	}

	byName := d.snapshotRecipients()
	for _, item := range resp.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		if senderName != "" && strings.EqualFold(name, senderName) {
			// The sender saw their own message locally already.
			continue
		}
		if lang, ok := bridgeLanguage(name); ok {
			if d.bridge != nil {
				d.bridge.SendTranslated(lang, senderName, item.Text)
			}
			continue
		}
		target, ok := byName[strings.ToLower(name)]
		if !ok {
			// Recipient left between request and response.
			continue
		}
		if err := target.Deliver(render(item.Text)); err != nil {
			log.Printf("tradutor: failed to deliver translation to %s: %v", name, err)
		}
	}
}

func (d *Dispatcher) snapshotRecipients() map[string]output.Recipient {
	byName := make(map[string]output.Recipient)
	if d.directory == nil {
		return byName
	}
	for _, r := range d.directory.Online() {
		if r == nil {
			continue
		}
		name := strings.TrimSpace(r.Name())
		if name == "" {
			continue
		}
		byName[strings.ToLower(name)] = r
	}
	return byName
}

// bridgeLanguage extracts the channel language from a bridge pseudo-target
// name.
func bridgeLanguage(name string) (string, bool) {
	if !strings.HasPrefix(strings.ToUpper(name), bridgeTargetPrefix) {
		return "", false
	}
	return strings.ToLower(name[len(bridgeTargetPrefix):]), true
}
