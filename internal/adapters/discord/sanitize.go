package discord

import (
	"regexp"
	"strings"
)

const (
	discordMaxLength = 2000
	gameMaxLength    = 256

	zwsp = "\u200b"
	// rolePlaceholder protects the "<@&" mention marker while color codes
	// are being stripped.
	rolePlaceholder = "\x00role\x00"
)

var (
	colorCode = regexp.MustCompile(`[§&][0-9a-fk-or]`)

	codeBlock     = regexp.MustCompile("(?s)```.*?```")
	inlineCode    = regexp.MustCompile("`[^`]+`")
	bold          = regexp.MustCompile(`\*\*(.+?)\*\*`)
	underline     = regexp.MustCompile(`__(.+?)__`)
	strikethrough = regexp.MustCompile(`~~(.+?)~~`)
	italicStar    = regexp.MustCompile(`\*(.+?)\*`)
	italicUnder   = regexp.MustCompile(`_(.+?)_`)
	spoiler       = regexp.MustCompile(`\|\|(.+?)\|\|`)
)

// SanitizeForDiscord neutralizes mass mentions and role pings, strips
// color codes and caps the message at Discord's length limit.
func SanitizeForDiscord(input string) string {
	if input == "" {
		return ""
	}
	s := strings.ReplaceAll(input, "<@&", rolePlaceholder)
	s = colorCode.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, rolePlaceholder, "<@"+zwsp+"&")
	s = strings.ReplaceAll(s, "@everyone", "@"+zwsp+"everyone")
	s = strings.ReplaceAll(s, "@here", "@"+zwsp+"here")
	return truncate(s, discordMaxLength)
}

// SanitizeForGame flattens Discord markdown into plain text so in-game chat
// never shows literal formatting characters.
func SanitizeForGame(input string) string {
	if input == "" {
		return ""
	}
	s := codeBlock.ReplaceAllString(input, "[code]")
	s = inlineCode.ReplaceAllString(s, "[code]")
	s = bold.ReplaceAllString(s, "$1")
	s = underline.ReplaceAllString(s, "$1")
	s = strikethrough.ReplaceAllString(s, "$1")
	s = italicStar.ReplaceAllString(s, "$1")
	s = italicUnder.ReplaceAllString(s, "$1")
	s = spoiler.ReplaceAllString(s, "$1")
	return truncate(s, gameMaxLength)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
