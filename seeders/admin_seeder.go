package seeders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func seedAdmin(ctx context.Context, db *pgxpool.Pool, admin adminData, logger *zap.Logger) error {
	var oficinaID *uint64
	var id uint64
	err := db.QueryRow(ctx, `SELECT id FROM oficinas WHERE numero = $1`, admin.OficinaNumero).Scan(&id)
	switch {
	case err == nil:
		oficinaID = &id
	case errors.Is(err, pgx.ErrNoRows):
		logger.Warn("Office for administrator not found, creating it without office",
			zap.Int("numero", admin.OficinaNumero))
	default:
		return err
	}

	tag, err := db.Exec(ctx,
		`INSERT INTO personas (nombre, apellido, jerarquia, nombre_usuario, rol, oficina_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT ON CONSTRAINT ux_personas_nombre_usuario DO NOTHING`,
		admin.Nombre, admin.Apellido, admin.Jerarquia, admin.NombreUsuario, admin.Rol, oficinaID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		logger.Info("Administrator already exists", zap.String("nombreUsuario", admin.NombreUsuario))
		return nil
	}
	logger.Info("Administrator created", zap.String("nombreUsuario", admin.NombreUsuario))
	return nil
}
