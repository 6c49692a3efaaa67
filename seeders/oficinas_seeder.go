package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func seedOficinas(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("  - oficinas")

	query := `INSERT INTO oficinas (numero, departamento) VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT ux_oficinas_numero DO UPDATE SET departamento = EXCLUDED.departamento`
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, o := range oficinasData {
		if _, err := tx.Exec(ctx, query, o.Numero, o.Departamento); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
