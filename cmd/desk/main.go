package main

import (
	"context"
	"fmt"

	"github.com/vericred/vericred-desk/internal/adapter"
	"github.com/vericred/vericred-desk/internal/client"
	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/service"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/internal/tui"
	"github.com/vericred/vericred-desk/internal/wallet"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("vericred-desk")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Backend, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	sessions, err := store.NewSessionStorage(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local session storage")
	}

	provider, err := wallet.NewKeystoreProvider(cfg.Chain, cfg.Wallet, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create wallet provider")
	}
	navigator := wallet.NewLogNavigator(log)

	services := service.NewServices(cfg, sessions, serverAdapter, provider, navigator, log)

	ui, err := tui.New(services, cfg.Workers.PendingRefreshInterval, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
