package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tradutor/internal/adapters/discord"
	"tradutor/internal/adapters/registry"
	"tradutor/internal/application"
	"tradutor/internal/config"
	"tradutor/internal/infrastructure/database"
	"tradutor/internal/infrastructure/i18n"
	"tradutor/internal/infrastructure/ipinfo"
	"tradutor/internal/infrastructure/langfile"
	"tradutor/internal/infrastructure/openai"
	"tradutor/internal/infrastructure/relay"
	"tradutor/internal/ports/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("tradutor: %v", err)
	}

	ctx := context.Background()

	var languages output.LanguageRepository
	if cfg.HasDatabase() {
		if err := database.RunMigrations(cfg.DatabaseURL, "internal/infrastructure/database/migrations"); err != nil {
			log.Fatalf("tradutor: %v", err)
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("tradutor: %v", err)
		}
		defer pool.Close()
		languages = database.NewLanguageRepository(pool)
	} else {
		store, err := langfile.Load(cfg.LanguagesFile)
		if err != nil {
			log.Fatalf("tradutor: %v", err)
		}
		languages = store
	}

	players := registry.New()
	pending := application.NewPendingStore(cfg.PendingTTL)
	provider := openai.New(cfg.OpenAIKey, cfg.OpenAIModel)
	translator := application.NewTranslationService(provider, cfg.APITimeout)

	var bridge *discord.Bridge
	var groupBridge output.GroupBridge
	if cfg.HasDiscord() {
		bridge, err = discord.NewBridge(cfg.DiscordToken, cfg.DiscordChannels)
		if err != nil {
			log.Fatalf("tradutor: %v", err)
		}
		groupBridge = bridge
	}

	dispatcher := application.NewDispatcher(pending, players, groupBridge)

	relayClient := relay.NewClient(relay.Config{
		URL:            cfg.RelayURL,
		ServerID:       cfg.ServerID,
		ServerSecret:   cfg.ServerSecret,
		ReconnectDelay: cfg.ReconnectDelay,
	}, dispatcher)

	chat := application.NewChatService(
		languages, players, translator, dispatcher, pending, relayClient, groupBridge, cfg.DefaultLanguage,
	)
	connect := application.NewConnectService(
		languages, ipinfo.New(cfg.IPInfoToken), i18n.NewMessages(cfg.DefaultLanguage), cfg.DefaultLanguage, cfg.WarnOnJoin,
	)
	players.SetConnect(connect)

	if relayClient.Configured() && !translator.Direct() {
		relayClient.Start()
	}
	defer relayClient.Stop()

	if bridge != nil {
		bridge.SetChat(chat)
		if err := bridge.Start(); err != nil {
			log.Fatalf("tradutor: %v", err)
		}
		defer bridge.Stop()
	}

	log.Printf("tradutor: started (direct=%v, relay=%v, discord=%v)",
		translator.Direct(), relayClient.Configured(), bridge != nil)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Printf("tradutor: shutting down")
}
