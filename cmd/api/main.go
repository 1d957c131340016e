package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dgrayson/cardkeeper-backend/api/routes"
	"github.com/dgrayson/cardkeeper-backend/internal/collection"
	"github.com/dgrayson/cardkeeper-backend/internal/decks"
	"github.com/dgrayson/cardkeeper-backend/internal/search"
	"github.com/dgrayson/cardkeeper-backend/pkg/archidekt"
	"github.com/dgrayson/cardkeeper-backend/pkg/config"
	"github.com/dgrayson/cardkeeper-backend/pkg/db"
	"github.com/dgrayson/cardkeeper-backend/pkg/logger"
	"github.com/dgrayson/cardkeeper-backend/pkg/metrics"
	"github.com/dgrayson/cardkeeper-backend/pkg/scryfall"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cardkeeper"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cardkeeper",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := dbClient.AutoMigrate(); err != nil {
		logg.Error(context.Background(), "failed to migrate schema", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	apiMetrics := metrics.NewAPIMetrics(registry)

	scryfallClient := scryfall.NewClient(cfg.Scryfall, scryfall.WithMetrics(apiMetrics))
	archidektClient := archidekt.NewClient(cfg.Archidekt)

	collectionRepo := collection.NewRepository(dbClient.DB())
	collectionSvc := collection.NewService(collectionRepo, scryfallClient, logg, apiMetrics)

	decksRepo := decks.NewRepository(dbClient.DB())
	decksSvc := decks.NewService(decksRepo, logg)
	importer := decks.NewImporter(dbClient.DB(), decksRepo, archidektClient, scryfallClient, logg, apiMetrics)

	searchSvc := search.NewService(scryfallClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting cardkeeper server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, collectionSvc, searchSvc, decksSvc, importer),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "server stopped unexpectedly", err)
		os.Exit(1)
	}
}
