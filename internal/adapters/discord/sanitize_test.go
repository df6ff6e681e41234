package discord

import (
	"strings"
	"testing"
)

func TestSanitizeForDiscord(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "everyone", in: "hi @everyone", want: "hi @" + zwsp + "everyone"},
		{name: "here", in: "hi @here", want: "hi @" + zwsp + "here"},
		{name: "role mention", in: "<@&123456> hello", want: "<@" + zwsp + "&123456> hello"},
		{name: "color codes", in: "§chello &aworld", want: "hello world"},
		{name: "plain", in: "olá mundo", want: "olá mundo"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeForDiscord(tc.in); got != tc.want {
				t.Fatalf("SanitizeForDiscord(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeForDiscordTruncates(t *testing.T) {
	got := SanitizeForDiscord(strings.Repeat("a", discordMaxLength+50))
	if len([]rune(got)) != discordMaxLength {
		t.Fatalf("length = %d, want %d", len([]rune(got)), discordMaxLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("missing ellipsis: %q", got[len(got)-10:])
	}
}

func TestSanitizeForGame(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "bold", in: "**hello**", want: "hello"},
		{name: "italic star", in: "*hello*", want: "hello"},
		{name: "italic underscore", in: "_hello_", want: "hello"},
		{name: "underline", in: "__hello__", want: "hello"},
		{name: "strikethrough", in: "~~hello~~", want: "hello"},
		{name: "spoiler", in: "||hello||", want: "hello"},
		{name: "inline code", in: "run `rm -rf`", want: "run [code]"},
		{name: "code block", in: "look ```go\ncode\n``` done", want: "look [code] done"},
		{name: "mixed", in: "**bold** and _italic_", want: "bold and italic"},
		{name: "plain", in: "hello", want: "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeForGame(tc.in); got != tc.want {
				t.Fatalf("SanitizeForGame(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeForGameTruncates(t *testing.T) {
	got := SanitizeForGame(strings.Repeat("x", gameMaxLength*2))
	if len([]rune(got)) != gameMaxLength {
		t.Fatalf("length = %d, want %d", len([]rune(got)), gameMaxLength)
	}
}
