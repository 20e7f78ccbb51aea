package main

import (
	"context"
	"log"
	"time"

	"wedding-marketplace/cmd"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/internal/wire"
	"wedding-marketplace/pkg/chapa"
	"wedding-marketplace/pkg/database"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment processor client
	gateway := chapa.NewClient(chapa.Config{
		SecretKey:     config.Chapa.SecretKey,
		WebhookSecret: config.Chapa.WebhookSecret,
		BaseURL:       config.Chapa.BaseURL,
		Timeout:       config.Chapa.Timeout(),
	}, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, gateway, config, logger)

	// The platform's settlement subaccount must exist before any payment
	// can be split; refuse to start without it.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Service.Payment.EnsureAdminSubaccount(ctx); err != nil {
		logger.Fatal("Failed to provision platform subaccount", zap.Error(err))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
