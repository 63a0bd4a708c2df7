package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CosmicQuant/tumafast-sub002/cmd"
	apihttp "github.com/CosmicQuant/tumafast-sub002/internal/adapters/in/http"
	"github.com/CosmicQuant/tumafast-sub002/internal/adapters/out/postgres/accountrepo"
	"github.com/CosmicQuant/tumafast-sub002/internal/adapters/out/postgres/orderrepo"
	"github.com/CosmicQuant/tumafast-sub002/internal/adapters/out/postgres/outboxrepo"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	config, err := loadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	gormDB, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	if err := migrate(gormDB); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(config, gormDB, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&root, config)
}

func loadConfig() (cmd.Config, error) {
	// Missing .env is fine: containerized deployments pass real env vars.
	_ = godotenv.Load(".env")

	var config cmd.Config
	if err := env.Parse(&config); err != nil {
		return cmd.Config{}, err
	}
	return config, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&outboxrepo.RecordDTO{},
		&accountrepo.AccountDTO{},
		&accountrepo.APIKeyDTO{},
	)
}

func startWebServer(root *cmd.CompositionRoot, config cmd.Config) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	server := apihttp.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateUpdateOrderCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateQuoteQueryHandler(),
		config.TrackingBaseURL,
	)
	server.RegisterRoutes(e, root.AccountResolver())

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}
