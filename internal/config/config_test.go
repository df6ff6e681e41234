package config

import (
	"reflect"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_MODEL", "RELAY_WS_URL", "SERVER_ID", "SERVER_SECRET",
		"DEFAULT_LANGUAGE", "API_TIMEOUT_MS", "WS_RECONNECT_SECONDS", "PENDING_TTL_SECONDS",
		"DATABASE_URL", "LANGUAGES_FILE", "DISCORD_TOKEN", "DISCORD_CHANNELS",
		"IPINFO_TOKEN", "WARN_ON_JOIN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DefaultLanguage != "auto" {
		t.Fatalf("DefaultLanguage = %q", cfg.DefaultLanguage)
	}
	if cfg.APITimeout != 60*time.Second {
		t.Fatalf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.ReconnectDelay != 3*time.Second {
		t.Fatalf("ReconnectDelay = %v", cfg.ReconnectDelay)
	}
	if cfg.PendingTTL != 30*time.Second {
		t.Fatalf("PendingTTL = %v", cfg.PendingTTL)
	}
	if cfg.LanguagesFile != "languages.json" {
		t.Fatalf("LanguagesFile = %q", cfg.LanguagesFile)
	}
	if !cfg.WarnOnJoin {
		t.Fatal("WarnOnJoin default must be true")
	}
	if !cfg.HasOpenAI() || cfg.RelayConfigured() || cfg.HasDatabase() || cfg.HasDiscord() {
		t.Fatalf("capability flags wrong: %#v", cfg)
	}
}

func TestLoadRequiresSomeTranslationPath(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected an error with neither provider key nor relay configured")
	}
}

func TestLoadRelayOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("RELAY_WS_URL", "wss://relay.example.com/ws")
	t.Setenv("SERVER_ID", "srv1")
	t.Setenv("SERVER_SECRET", "shh")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.RelayConfigured() || cfg.HasOpenAI() {
		t.Fatalf("capability flags wrong: %#v", cfg)
	}
}

func TestLoadRejectsNonWebsocketRelayURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("RELAY_WS_URL", "https://relay.example.com/ws")
	t.Setenv("SERVER_ID", "srv1")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-ws scheme")
	}
}

func TestLoadDiscordNeedsChannels(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DISCORD_TOKEN", "bot-token")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a token without channels")
	}

	t.Setenv("DISCORD_CHANNELS", "pt-BR:123,en:456")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := map[string]string{"pt-BR": "123", "en": "456"}
	if !reflect.DeepEqual(cfg.DiscordChannels, want) {
		t.Fatalf("DiscordChannels = %#v", cfg.DiscordChannels)
	}
}

func TestLoadRejectsNonNumericChannelID(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DISCORD_TOKEN", "bot-token")
	t.Setenv("DISCORD_CHANNELS", "en:not-a-channel")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-numeric channel id")
	}
}

func TestParseChannels(t *testing.T) {
	cases := []struct {
		in   string
		want map[string]string
	}{
		{in: "", want: map[string]string{}},
		{in: "pt-BR:123", want: map[string]string{"pt-BR": "123"}},
		{in: " pt-BR : 123 , en : 456 ", want: map[string]string{"pt-BR": "123", "en": "456"}},
		{in: "broken,en:456,:789,fr:", want: map[string]string{"en": "456"}},
		{in: "en:1,en:2", want: map[string]string{"en": "1"}},
	}

	for _, tc := range cases {
		if got := parseChannels(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("parseChannels(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestLoadDurationOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("API_TIMEOUT_MS", "1500")
	t.Setenv("WS_RECONNECT_SECONDS", "10")
	t.Setenv("PENDING_TTL_SECONDS", "45")
	t.Setenv("WARN_ON_JOIN", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APITimeout != 1500*time.Millisecond {
		t.Fatalf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.ReconnectDelay != 10*time.Second {
		t.Fatalf("ReconnectDelay = %v", cfg.ReconnectDelay)
	}
	if cfg.PendingTTL != 45*time.Second {
		t.Fatalf("PendingTTL = %v", cfg.PendingTTL)
	}
	if cfg.WarnOnJoin {
		t.Fatal("WARN_ON_JOIN=false not honored")
	}
}
