package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	api "stokvel-backend/internal/api/http"
	"stokvel-backend/internal/config"
	"stokvel-backend/internal/logger"
	"stokvel-backend/internal/repository/postgres"
	"stokvel-backend/internal/security"
	"stokvel-backend/internal/service"
	"stokvel-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting stokvel backend", "address", cfg.GetServerAddress())

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	proofs, err := storage.NewLocalProofStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize proof storage", "error", err)
		log.Fatalf("Failed to initialize proof storage: %v", err)
	}

	var notifier service.Notifier
	if cfg.Email.APIKey != "" {
		notifier = service.NewSendGridNotifier(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	} else {
		logger.Info("No email API key configured, decision mail disabled")
		notifier = service.NewNoopNotifier()
	}

	groupSvc := service.NewGroupService(store.Repositories, store)
	memberSvc := service.NewMemberService(store.Repositories)
	membershipSvc := service.NewMembershipService(store.Repositories, store, notifier)
	contributionSvc := service.NewContributionService(store.Repositories)
	payoutSvc := service.NewPayoutService(store.Repositories, store)
	reportSvc := service.NewReportService(store.Repositories)

	server := api.NewServer(
		groupSvc,
		memberSvc,
		membershipSvc,
		contributionSvc,
		payoutSvc,
		reportSvc,
		tokenManager,
		proofs,
	)

	logger.Info("Listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), server.Router()); err != nil {
		logger.Error("Server stopped", "error", err)
		log.Fatalf("Server stopped: %v", err)
	}
}
