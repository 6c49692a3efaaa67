// Command token prints a bearer token for an existing persona.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	applogger "inventory-system/pkg/logger"
	"inventory-system/pkg/service"
)

func main() {
	username := flag.String("user", "", "nombre_usuario of the persona")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	if !cfg.JWT.Enabled() {
		logger.Fatal("JWT_SECRET_KEY is not set")
	}

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	personaService := services.NewPersonaService(
		repositories.NewPersonaRepository(dbPool, logger),
		repositories.NewOfficeRepository(dbPool, logger),
		repositories.NewTxManager(dbPool, logger),
		logger,
	)

	persona, err := personaService.FindByUsername(ctx, *username)
	if err != nil {
		logger.Fatal("Persona lookup failed", zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	token, err := jwtSvc.GenerateToken(persona.ID, persona.Rol)
	if err != nil {
		logger.Fatal("Token generation failed", zap.Error(err))
	}

	logger.Info("Token issued",
		zap.Uint64("personaId", persona.ID),
		zap.String("rol", persona.Rol.String()),
		zap.Duration("ttl", jwtSvc.GetAccessTokenTTL()),
	)
	fmt.Println(token)
}
