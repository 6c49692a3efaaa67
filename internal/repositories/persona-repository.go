package repositories

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const (
	personaTable  = "personas"
	personaFields = "p.id, p.nombre, p.apellido, p.jerarquia, p.nombre_usuario, p.rol, p.oficina_id, p.created_at, p.updated_at"

	ConstraintPersonaNombreUsuario = "ux_personas_nombre_usuario"
	ConstraintPersonaOficina       = "fk_personas_oficina"
)

type PersonaFilter struct {
	SearchTerm string
	OficinaID  *uint64
	Rol        *constants.RolUsuario
	Jerarquia  *constants.Jerarquia
}

type PersonaListItem struct {
	entities.Persona
	OficinaNumero       *int
	OficinaDepartamento *string
	MaterialesAsignados int
}

type PersonaStats struct {
	Total        int64
	PorRol       map[constants.RolUsuario]int64
	PorJerarquia map[constants.Jerarquia]int64
	PorOficina   map[int]int64
	SinOficina   int64
}

type PersonaRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Persona, error)
	FindByUsername(ctx context.Context, nombreUsuario string) (*entities.Persona, error)
	Exists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	ExistsUsername(ctx context.Context, tx pgx.Tx, nombreUsuario string, excludeID *uint64) (bool, error)
	GetAll(ctx context.Context, filter PersonaFilter, page types.PageRequest) ([]PersonaListItem, int64, error)
	Create(ctx context.Context, tx pgx.Tx, persona entities.Persona) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, persona entities.Persona) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error

	CountAssignedMaterials(ctx context.Context, tx pgx.Tx, id uint64) (int64, error)
	CountRegisteredHistory(ctx context.Context, tx pgx.Tx, id uint64) (int64, error)
	LastAssignmentDate(ctx context.Context, id uint64) (*time.Time, error)
	Stats(ctx context.Context) (*PersonaStats, error)
}

type personaRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPersonaRepository(storage *pgxpool.Pool, logger *zap.Logger) PersonaRepositoryInterface {
	return &personaRepository{storage: storage, logger: logger}
}

// FindByID returns the person together with their office, if any.
func (r *personaRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Persona, error) {
	return r.findOne(ctx, pick(r.storage, tx), sq.Eq{"p.id": id})
}

func (r *personaRepository) FindByUsername(ctx context.Context, nombreUsuario string) (*entities.Persona, error) {
	return r.findOne(ctx, r.storage, sq.Expr("LOWER(p.nombre_usuario) = LOWER(?)", nombreUsuario))
}

func (r *personaRepository) findOne(ctx context.Context, q Querier, where sq.Sqlizer) (*entities.Persona, error) {
	query, args, err := psql.
		Select(personaFields, "o.id", "o.numero", "o.departamento").
		From(personaTable + " p").
		LeftJoin("oficinas o ON o.id = p.oficina_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		p            entities.Persona
		oficinaID    *uint64
		numero       *int
		departamento *string
	)
	err = q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Nombre, &p.Apellido, &p.Jerarquia, &p.NombreUsuario, &p.Rol, &p.OficinaID, &p.CreatedAt, &p.UpdatedAt,
		&oficinaID, &numero, &departamento,
	)
	if err != nil {
		return nil, mapError(err, "select persona")
	}
	if oficinaID != nil {
		p.Oficina = &entities.Office{ID: *oficinaID, Numero: *numero, Departamento: departamento}
	}
	return &p, nil
}

func (r *personaRepository) Exists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	return exists(ctx, pick(r.storage, tx), psql.Select("1").From(personaTable).Where(sq.Eq{"id": id}))
}

// ExistsUsername compares usernames case-insensitively.
func (r *personaRepository) ExistsUsername(ctx context.Context, tx pgx.Tx, nombreUsuario string, excludeID *uint64) (bool, error) {
	builder := psql.Select("1").From(personaTable).
		Where(sq.Expr("LOWER(nombre_usuario) = LOWER(?)", nombreUsuario))
	if excludeID != nil {
		builder = builder.Where(sq.NotEq{"id": *excludeID})
	}
	return exists(ctx, pick(r.storage, tx), builder)
}

func applyPersonaFilter(b sq.SelectBuilder, f PersonaFilter) sq.SelectBuilder {
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		pattern := likePattern(term)
		b = b.Where(sq.Or{
			sq.ILike{"p.nombre": pattern},
			sq.ILike{"p.apellido": pattern},
			sq.Expr("(p.nombre || ' ' || p.apellido) ILIKE ?", pattern),
			sq.ILike{"p.nombre_usuario": pattern},
		})
	}
	if f.OficinaID != nil {
		b = b.Where(sq.Eq{"p.oficina_id": *f.OficinaID})
	}
	if f.Rol != nil {
		b = b.Where(sq.Eq{"p.rol": *f.Rol})
	}
	if f.Jerarquia != nil {
		b = b.Where(sq.Eq{"p.jerarquia": *f.Jerarquia})
	}
	return b
}

func (r *personaRepository) GetAll(ctx context.Context, filter PersonaFilter, page types.PageRequest) ([]PersonaListItem, int64, error) {
	total, err := scanCount(ctx, r.storage, applyPersonaFilter(psql.Select("COUNT(*)").From(personaTable+" p"), filter))
	if err != nil {
		return nil, 0, mapError(err, "count personas")
	}
	if total == 0 {
		return []PersonaListItem{}, 0, nil
	}

	query, args, err := applyPersonaFilter(
		psql.Select(personaFields, "o.numero", "o.departamento",
			"(SELECT COUNT(*) FROM materiales m WHERE m.persona_asignada_id = p.id) AS materiales_asignados",
		).
			From(personaTable+" p").
			LeftJoin("oficinas o ON o.id = p.oficina_id"),
		filter,
	).
		OrderBy("p.apellido ASC", "p.nombre ASC", "p.id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, "select personas")
	}
	defer rows.Close()

	items := make([]PersonaListItem, 0, page.PageSize)
	for rows.Next() {
		var (
			item       PersonaListItem
			materiales int64
		)
		if err := rows.Scan(
			&item.ID, &item.Nombre, &item.Apellido, &item.Jerarquia, &item.NombreUsuario, &item.Rol,
			&item.OficinaID, &item.CreatedAt, &item.UpdatedAt,
			&item.OficinaNumero, &item.OficinaDepartamento, &materiales,
		); err != nil {
			r.logger.Error("Error scanning persona", zap.Error(err))
			return nil, 0, mapError(err, "scan personas")
		}
		item.MaterialesAsignados = int(materiales)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "iterate personas")
	}
	return items, total, nil
}

func (r *personaRepository) Create(ctx context.Context, tx pgx.Tx, persona entities.Persona) (uint64, error) {
	query, args, err := psql.Insert(personaTable).
		Columns("nombre", "apellido", "jerarquia", "nombre_usuario", "rol", "oficina_id").
		Values(persona.Nombre, persona.Apellido, persona.Jerarquia, persona.NombreUsuario, persona.Rol, persona.OficinaID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapError(err, "insert persona")
	}
	return id, nil
}

func (r *personaRepository) Update(ctx context.Context, tx pgx.Tx, persona entities.Persona) error {
	query, args, err := psql.Update(personaTable).
		SetMap(map[string]interface{}{
			"nombre":         persona.Nombre,
			"apellido":       persona.Apellido,
			"jerarquia":      persona.Jerarquia,
			"nombre_usuario": persona.NombreUsuario,
			"rol":            persona.Rol,
			"oficina_id":     persona.OficinaID,
			"updated_at":     sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": persona.ID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "update persona")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *personaRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(personaTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	result, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "delete persona")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *personaRepository) CountAssignedMaterials(ctx context.Context, tx pgx.Tx, id uint64) (int64, error) {
	return countWhere(ctx, pick(r.storage, tx), "materiales", sq.Eq{"persona_asignada_id": id})
}

// CountRegisteredHistory counts history rows the person registered. Rows
// where the person was only the assignee keep their data through
// fk_historial_persona ON DELETE SET NULL.
func (r *personaRepository) CountRegisteredHistory(ctx context.Context, tx pgx.Tx, id uint64) (int64, error) {
	return countWhere(ctx, pick(r.storage, tx), "asignaciones_historial", sq.Eq{"usuario_registro_id": id})
}

func (r *personaRepository) LastAssignmentDate(ctx context.Context, id uint64) (*time.Time, error) {
	query, args, err := psql.Select("MAX(fecha_asignacion)").
		From("asignaciones_historial").
		Where(sq.Eq{"persona_id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var last *time.Time
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&last); err != nil {
		return nil, mapError(err, "select ultima asignacion")
	}
	return last, nil
}

func (r *personaRepository) Stats(ctx context.Context) (*PersonaStats, error) {
	stats := &PersonaStats{
		PorRol:       make(map[constants.RolUsuario]int64),
		PorJerarquia: make(map[constants.Jerarquia]int64),
		PorOficina:   make(map[int]int64),
	}

	var err error
	if stats.Total, err = countWhere(ctx, r.storage, personaTable, nil); err != nil {
		return nil, mapError(err, "count personas")
	}
	if stats.SinOficina, err = countWhere(ctx, r.storage, personaTable, sq.Eq{"oficina_id": nil}); err != nil {
		return nil, mapError(err, "count personas sin oficina")
	}

	if err := r.groupCount(ctx, psql.Select("rol", "COUNT(*)").From(personaTable).GroupBy("rol"),
		func(rows pgx.Rows) error {
			var (
				rol   constants.RolUsuario
				count int64
			)
			if err := rows.Scan(&rol, &count); err != nil {
				return err
			}
			stats.PorRol[rol] = count
			return nil
		}); err != nil {
		return nil, mapError(err, "count personas por rol")
	}

	if err := r.groupCount(ctx, psql.Select("jerarquia", "COUNT(*)").From(personaTable).GroupBy("jerarquia"),
		func(rows pgx.Rows) error {
			var (
				jerarquia constants.Jerarquia
				count     int64
			)
			if err := rows.Scan(&jerarquia, &count); err != nil {
				return err
			}
			stats.PorJerarquia[jerarquia] = count
			return nil
		}); err != nil {
		return nil, mapError(err, "count personas por jerarquia")
	}

	if err := r.groupCount(ctx,
		psql.Select("o.numero", "COUNT(*)").
			From(personaTable+" p").
			Join("oficinas o ON o.id = p.oficina_id").
			GroupBy("o.numero"),
		func(rows pgx.Rows) error {
			var numero int
			var count int64
			if err := rows.Scan(&numero, &count); err != nil {
				return err
			}
			stats.PorOficina[numero] = count
			return nil
		}); err != nil {
		return nil, mapError(err, "count personas por oficina")
	}

	return stats, nil
}

func (r *personaRepository) groupCount(ctx context.Context, builder sq.SelectBuilder, scan func(pgx.Rows) error) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
