package main

// @title Surroundings Microservice API
// @version 1.0.0
// @description Microservice that analyzes the surroundings of a location or cadastral parcel.
// @description
// @description Capabilities:
// @description - Nearby place search by category (education, finance, transport, infrastructure, green areas, water, nuisances)
// @description - Walk/bike/car travel-time estimates via road routing
// @description - Environmental hazard evaluation: flood, seismic, soil, landslide, noise, mining
// @description - Noise exposure from official strategic noise maps with an emitter-based fallback

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/surroundings-microservice/docs"
	"github.com/surroundings-microservice/internal/config"
	httpDelivery "github.com/surroundings-microservice/internal/delivery/http"
	"github.com/surroundings-microservice/internal/delivery/http/handler"
	"github.com/surroundings-microservice/internal/domain/repository"
	"github.com/surroundings-microservice/internal/infrastructure/geoportal"
	"github.com/surroundings-microservice/internal/infrastructure/osrm"
	"github.com/surroundings-microservice/internal/infrastructure/overpass"
	"github.com/surroundings-microservice/internal/pkg/logger"
	"github.com/surroundings-microservice/internal/repository/postgresosm"
	"github.com/surroundings-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Surroundings Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("feature_backend", cfg.Analyzer.FeatureBackend),
	)

	// 3. Feature source: Overpass API by default, a local planet_osm
	// import when configured.
	var featureRepo repository.FeatureRepository

	switch cfg.Analyzer.FeatureBackend {
	case "postgres":
		osmDB, err := postgresosm.New(&cfg.OSMDB, log)
		if err != nil {
			log.Fatal("Failed to connect to OSM PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := osmDB.Close(); err != nil {
				log.Error("Failed to close OSM PostgreSQL connection", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := osmDB.Health(ctx); err != nil {
			log.Fatal("OSM PostgreSQL health check failed", zap.Error(err))
		}

		featureRepo = postgresosm.NewFeatureRepository(osmDB, log)
	default:
		featureRepo = overpass.NewClient(&cfg.Overpass, log)
	}

	// 4. Remaining providers
	routingRepo := osrm.NewClient(&cfg.OSRM, log)
	noiseMapRepo := geoportal.NewNoiseClient(&cfg.Geoportal, log)
	landslideRepo := geoportal.NewLandslideClient(&cfg.Geoportal, log)

	log.Info("Providers initialized")

	// 5. Use cases
	estimator := usecase.NewTravelTimeEstimator(routingRepo, log)
	placeUC := usecase.NewPlaceSearchUsecase(featureRepo, estimator, cfg.Analyzer.DefaultRadiusM, log)
	noiseUC := usecase.NewNoiseUsecase(noiseMapRepo, featureRepo, cfg.Analyzer.Voivodeship, log)
	riskUC := usecase.NewRiskUsecase(featureRepo, landslideRepo, noiseUC, log)

	log.Info("Use cases initialized")

	// 6. HTTP handlers and server
	placeHandler := handler.NewPlaceHandler(placeUC, log)
	riskHandler := handler.NewRiskHandler(riskUC, log)
	noiseHandler := handler.NewNoiseHandler(noiseUC, log)

	server := httpDelivery.NewServer(cfg, log, placeHandler, riskHandler, noiseHandler)

	log.Info("HTTP server initialized")

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
