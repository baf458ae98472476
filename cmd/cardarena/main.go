package main

import (
	"os"

	"github.com/evrtek/geobeastProdV1-sub000/internal/api"
	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/evrtek/geobeastProdV1-sub000/internal/logging"
	"github.com/evrtek/geobeastProdV1-sub000/internal/notify"
	"github.com/evrtek/geobeastProdV1-sub000/internal/realtime"
	"github.com/evrtek/geobeastProdV1-sub000/internal/service"
	"github.com/evrtek/geobeastProdV1-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	checkEnvVars([]string{constants.EnvSessionSecret})

	cfg := loadConfigOrExit(os.Getenv(constants.EnvConfigPath))
	// Allow the DB path to be overridden via ARENA_DB.
	if p := os.Getenv(constants.EnvDBPath); p != "" {
		cfg.DatabasePath = p
	}

	repo := createRepositoryOrExit(cfg.DatabasePath)

	// The reserved AI opponent exists before the first request.
	if _, err := service.EnsureAIIdentity(repo); err != nil {
		logging.Fatal("Failed to provision AI opponent", err, nil)
	}

	var mailer notify.Mailer
	if cfg.SMTPAddr != "" {
		mailer = &notify.SMTPMailer{
			Addr:     cfg.SMTPAddr,
			Host:     cfg.SMTPHost,
			From:     cfg.SMTPFrom,
			Username: cfg.SMTPUsername,
			Password: os.Getenv(constants.EnvSMTPPassword),
		}
	}
	notifier := notify.NewNotifier(repo, mailer)
	hub := realtime.NewHub()
	sessions := session.NewStore(repo)
	svc := service.NewBattleService(repo, sessions, notifier, hub, cfg.InvitationTTL)

	sweeper, err := service.StartInvitationSweep(repo, cfg.InvitationTTL, cfg.SweepInterval)
	if err != nil {
		logging.Fatal("Failed to start invitation sweep", err, nil)
	}
	defer func() { _ = sweeper.Shutdown() }()

	handler := api.NewBattleHandler(repo, svc, hub)
	router := gin.Default()
	api.RegisterRoutes(router, handler)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
