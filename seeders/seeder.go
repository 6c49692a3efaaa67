package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SeedDictionaries fills the reference data that has no dependencies:
// material categories and the demo offices.
func SeedDictionaries(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("Seeding dictionaries")

	if err := seedCategorias(ctx, db, logger); err != nil {
		return fmt.Errorf("categorias: %w", err)
	}
	if err := seedOficinas(ctx, db, logger); err != nil {
		return fmt.Errorf("oficinas: %w", err)
	}

	logger.Info("Dictionaries seeded")
	return nil
}

// SeedAdmin creates the administrator persona. It depends on the offices
// created by SeedDictionaries.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, username string, logger *zap.Logger) error {
	logger.Info("Seeding administrator", zap.String("nombreUsuario", username))

	if err := seedAdmin(ctx, db, defaultAdmin(username), logger); err != nil {
		return fmt.Errorf("administrador: %w", err)
	}
	return nil
}
