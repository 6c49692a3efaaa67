package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
)

const (
	historyTable  = "asignaciones_historial"
	historyFields = "h.id, h.material_id, h.persona_id, h.oficina_id, h.fecha_asignacion, h.fecha_desasignacion, " +
		"h.estado, h.motivo, h.observaciones, h.usuario_registro_id, h.fecha_registro"

	ConstraintHistoryOpen            = "ux_asignaciones_historial_abierta"
	ConstraintHistoryOficina         = "fk_historial_oficina"
	ConstraintHistoryUsuarioRegistro = "fk_historial_usuario_registro"
)

// HistoryEntry is a history row with the names needed to display it.
type HistoryEntry struct {
	entities.AssignmentHistory
	PersonaNombre         *string
	PersonaApellido       *string
	OficinaNumero         int
	UsuarioRegistroNombre string
}

type AssignmentHistoryRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, row entities.AssignmentHistory) (uint64, error)
	FindOpenByMaterial(ctx context.Context, tx pgx.Tx, materialID uint64) (*entities.AssignmentHistory, error)
	Close(ctx context.Context, tx pgx.Tx, id uint64, at time.Time) error
	FindByMaterial(ctx context.Context, materialID uint64) ([]HistoryEntry, error)
}

type assignmentHistoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAssignmentHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) AssignmentHistoryRepositoryInterface {
	return &assignmentHistoryRepository{storage: storage, logger: logger}
}

func (r *assignmentHistoryRepository) Create(ctx context.Context, tx pgx.Tx, row entities.AssignmentHistory) (uint64, error) {
	query, args, err := psql.Insert(historyTable).
		Columns("material_id", "persona_id", "oficina_id", "fecha_asignacion", "fecha_desasignacion",
			"estado", "motivo", "observaciones", "usuario_registro_id").
		Values(row.MaterialID, row.PersonaID, row.OficinaID, row.FechaAsignacion, row.FechaDesasignacion,
			row.Estado, row.Motivo, row.Observaciones, row.UsuarioRegistroID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapError(err, "insert historial")
	}
	return id, nil
}

func (r *assignmentHistoryRepository) FindOpenByMaterial(ctx context.Context, tx pgx.Tx, materialID uint64) (*entities.AssignmentHistory, error) {
	query, args, err := psql.Select(historyFields).
		From(historyTable + " h").
		Where(sq.Eq{"h.material_id": materialID, "h.fecha_desasignacion": nil}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var h entities.AssignmentHistory
	err = pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(
		&h.ID, &h.MaterialID, &h.PersonaID, &h.OficinaID, &h.FechaAsignacion, &h.FechaDesasignacion,
		&h.Estado, &h.Motivo, &h.Observaciones, &h.UsuarioRegistroID, &h.FechaRegistro,
	)
	if err != nil {
		return nil, mapError(err, "select historial abierto")
	}
	return &h, nil
}

// Close stamps fecha_desasignacion on an open row. Already closed rows are
// left untouched and reported as not found.
func (r *assignmentHistoryRepository) Close(ctx context.Context, tx pgx.Tx, id uint64, at time.Time) error {
	query, args, err := psql.Update(historyTable).
		Set("fecha_desasignacion", at).
		Where(sq.Eq{"id": id, "fecha_desasignacion": nil}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "close historial")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *assignmentHistoryRepository) FindByMaterial(ctx context.Context, materialID uint64) ([]HistoryEntry, error) {
	query, args, err := psql.Select(historyFields,
		"p.nombre", "p.apellido", "o.numero", "u.nombre || ' ' || u.apellido",
	).
		From(historyTable + " h").
		LeftJoin("personas p ON p.id = h.persona_id").
		Join("oficinas o ON o.id = h.oficina_id").
		Join("personas u ON u.id = h.usuario_registro_id").
		Where(sq.Eq{"h.material_id": materialID}).
		OrderBy("h.fecha_asignacion ASC", "h.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "select historial")
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(
			&e.ID, &e.MaterialID, &e.PersonaID, &e.OficinaID, &e.FechaAsignacion, &e.FechaDesasignacion,
			&e.Estado, &e.Motivo, &e.Observaciones, &e.UsuarioRegistroID, &e.FechaRegistro,
			&e.PersonaNombre, &e.PersonaApellido, &e.OficinaNumero, &e.UsuarioRegistroNombre,
		); err != nil {
			r.logger.Error("Error scanning historial", zap.Error(err))
			return nil, mapError(err, "scan historial")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate historial")
	}
	return entries, nil
}
