package output

import "tradutor/internal/domain/entities"

// GroupBridge mirrors chat into an external group-chat platform with one
// channel per language. Bridge channels join the translation fan-out as
// pseudo-targets named "DISCORD:<lang>"; the dispatcher routes translated
// text for those names back through SendTranslated.
type GroupBridge interface {
	HasChannelForLanguage(language string) bool
	// AppendTargets adds one pseudo-target per mapped channel whose language
	// differs from senderLanguage and returns the extended slice.
	AppendTargets(targets []entities.Target, senderLanguage string) []entities.Target
	SendTranslated(language, senderName, text string)
	// SendUntranslated forwards a same-language message to the sender's own
	// language channel without going through the provider.
	SendUntranslated(senderName, text, language string)
}
