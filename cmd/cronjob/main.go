package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"stokvel-backend/internal/config"
	"stokvel-backend/internal/jobs"
	"stokvel-backend/internal/logger"
	"stokvel-backend/internal/repository/postgres"
	"stokvel-backend/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting stokvel cronjob runner")

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

	store := postgres.NewStore(db)
	runner := jobs.NewJobRunner(store.Repositories, cfg)

	sched := scheduler.NewScheduler(runner)
	sched.Start()
	logger.Info("Scheduler started", "spec", cfg.Scheduler.ExpireStaleRequests)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler")
	sched.Stop()
}
