package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Direct translation provider.
	OpenAIKey   string
	OpenAIModel string

	// Relay transport.
	RelayURL     string
	ServerID     string
	ServerSecret string

	DefaultLanguage string
	APITimeout      time.Duration
	ReconnectDelay  time.Duration
	PendingTTL      time.Duration

	// Language preference storage: PostgreSQL when DATABASE_URL is set,
	// otherwise a JSON file.
	DatabaseURL   string
	LanguagesFile string

	// Discord bridge.
	DiscordToken    string
	DiscordChannels map[string]string // language tag -> channel id

	// Language auto-detection on connect.
	IPInfoToken string
	WarnOnJoin  bool
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (Docker, CI, etc.).
	}

	cfg := &Config{
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		RelayURL:        os.Getenv("RELAY_WS_URL"),
		ServerID:        os.Getenv("SERVER_ID"),
		ServerSecret:    os.Getenv("SERVER_SECRET"),
		DefaultLanguage: envOr("DEFAULT_LANGUAGE", "auto"),
		APITimeout:      time.Duration(envInt("API_TIMEOUT_MS", 60000)) * time.Millisecond,
		ReconnectDelay:  time.Duration(envInt("WS_RECONNECT_SECONDS", 3)) * time.Second,
		PendingTTL:      time.Duration(envInt("PENDING_TTL_SECONDS", 30)) * time.Second,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LanguagesFile:   envOr("LANGUAGES_FILE", "languages.json"),
		DiscordToken:    os.Getenv("DISCORD_TOKEN"),
		DiscordChannels: parseChannels(os.Getenv("DISCORD_CHANNELS")),
		IPInfoToken:     os.Getenv("IPINFO_TOKEN"),
		WarnOnJoin:      envBool("WARN_ON_JOIN", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies all the rules on the loaded configuration.
func (c *Config) validate() error {
	if !c.HasOpenAI() && !c.RelayConfigured() {
		return fmt.Errorf("config: set OPENAI_API_KEY or RELAY_WS_URL + SERVER_ID, translation has no path otherwise")
	}

	if c.RelayURL != "" {
		parsed, err := url.Parse(c.RelayURL)
		if err != nil {
			return fmt.Errorf("config: RELAY_WS_URL invalid (%q): %w", c.RelayURL, err)
		}
		if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
			return fmt.Errorf("config: RELAY_WS_URL must use the ws:// or wss:// scheme (%q)", c.RelayURL)
		}
	}

	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
		}
	}

	if c.HasDiscord() && len(c.DiscordChannels) == 0 {
		return fmt.Errorf("config: DISCORD_TOKEN is set but DISCORD_CHANNELS is empty (expected \"lang:channelID,lang:channelID\")")
	}

	for lang, id := range c.DiscordChannels {
		for _, r := range id {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: DISCORD_CHANNELS entry %q must map to a Discord channel id (digits only)", lang)
			}
		}
	}

	if c.APITimeout <= 0 {
		c.APITimeout = 60 * time.Second
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = 3 * time.Second
	}
	if c.PendingTTL <= 0 {
		c.PendingTTL = 30 * time.Second
	}

	return nil
}

func (c *Config) HasOpenAI() bool {
	return strings.TrimSpace(c.OpenAIKey) != ""
}

func (c *Config) RelayConfigured() bool {
	return strings.TrimSpace(c.RelayURL) != "" && strings.TrimSpace(c.ServerID) != ""
}

func (c *Config) HasDatabase() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

func (c *Config) HasDiscord() bool {
	return strings.TrimSpace(c.DiscordToken) != ""
}

func (c *Config) HasIPInfo() bool {
	return strings.TrimSpace(c.IPInfoToken) != ""
}

// parseChannels parses "pt-BR:123,en:456" into a language->channel map.
// Malformed entries are skipped.
func parseChannels(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		lang, id, ok := strings.Cut(pair, ":")
		lang = strings.TrimSpace(lang)
		id = strings.TrimSpace(id)
		if !ok || lang == "" || id == "" {
			continue
		}
		if _, dup := out[lang]; dup {
			continue
		}
		out[lang] = id
	}
	return out
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
