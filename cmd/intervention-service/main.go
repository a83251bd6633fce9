package main

import (
	"fmt"
	"os"

	"intervention-service/internal/auth"
	"intervention-service/internal/config"
	"intervention-service/internal/db"
	httphandler "intervention-service/internal/http"
	"intervention-service/internal/http/middleware"
	"intervention-service/internal/logger"
	"intervention-service/internal/repository"
	"intervention-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	zoneRepo := repository.NewZoneRepository(database)
	userRepo := repository.NewUserRepository(database)
	typeRepo := repository.NewInterventionTypeRepository(database)
	interventionRepo := repository.NewInterventionRepository(database)
	planningRepo := repository.NewPlanningRepository(database)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)

	zoneService := service.NewZoneService(zoneRepo, userRepo)
	userService := service.NewUserService(userRepo, tokenIssuer)
	typeService := service.NewInterventionTypeService(typeRepo)
	interventionService := service.NewInterventionService(interventionRepo, typeRepo, userRepo)
	planningService := service.NewPlanningService(planningRepo, typeRepo, interventionRepo, userRepo)

	handler := httphandler.NewHandler(zoneService, userService, typeService, interventionService, planningService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, appLogger)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting intervention service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
