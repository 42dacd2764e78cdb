// Command server runs the railbank HTTP API.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amitrawal/railbank/infra/initializer"
	credrepo "github.com/amitrawal/railbank/infra/repository/credential"
	"github.com/amitrawal/railbank/infra/repository/ledger"
	resrepo "github.com/amitrawal/railbank/infra/repository/reservation"
	"github.com/amitrawal/railbank/pkg/config"
	resdomain "github.com/amitrawal/railbank/pkg/domain/reservation"
	acctsvc "github.com/amitrawal/railbank/pkg/service/account"
	authsvc "github.com/amitrawal/railbank/pkg/service/auth"
	ressvc "github.com/amitrawal/railbank/pkg/service/reservation"
	"github.com/amitrawal/railbank/pkg/trains"
	"github.com/amitrawal/railbank/webapi"
)

func main() {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := initializer.SetupLogger(&cfg.Log)

	creds := credrepo.New(cfg.Data.CredentialsFile, logger)
	if err := creds.Load(); err != nil {
		// A failed load leaves the store empty; the service still starts.
		logger.Error("failed to load credentials", "error", err)
	}
	resStore, err := resrepo.New(cfg.Data.ReservationsFile, logger)
	if err != nil {
		logger.Error("failed to open reservation store", "error", err)
		os.Exit(1)
	}
	accounts := ledger.New(logger)
	if cfg.Data.LedgerSnapshot != "" {
		if err := accounts.Load(cfg.Data.LedgerSnapshot); err != nil {
			logger.Error("failed to load ledger snapshot", "error", err)
		}
	}

	app := webapi.New(webapi.Deps{
		Cfg:  cfg,
		Auth: authsvc.New(creds, authsvc.ComparerFor(cfg.Auth.Strategy), &cfg.Auth.Jwt, logger),
		Reservations: ressvc.New(
			resStore, resdomain.NewGenerator(), trains.NewDirectory(), logger),
		Accounts: acctsvc.New(accounts, logger),
		Logger:   logger,
	})

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-done
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "addr", cfg.Server.Addr)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", "error", err)
	}
	if cfg.Data.LedgerSnapshot != "" {
		if err := accounts.Save(cfg.Data.LedgerSnapshot); err != nil {
			logger.Error("failed to save ledger snapshot", "error", err)
		}
	}
}
