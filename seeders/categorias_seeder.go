package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func seedCategorias(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("  - categorias_material")

	query := `INSERT INTO categorias_material (nombre, fecha_creacion) VALUES ($1, NOW()) ON CONFLICT (LOWER(nombre)) DO NOTHING`
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, nombre := range categoriasData {
		tag, err := tx.Exec(ctx, query, nombre)
		if err != nil {
			return err
		}
		inserted += int(tag.RowsAffected())
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	logger.Info("  - categorias_material done", zap.Int("inserted", inserted))
	return nil
}
