package repositories

import (
	"context"
	"strings"

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
	officeTable  = "oficinas"
	officeFields = "o.id, o.numero, o.departamento, o.created_at, o.updated_at"

	ConstraintOfficeNumero = "ux_oficinas_numero"

	personasInOfficeSubquery   = "SELECT 1 FROM personas p WHERE p.oficina_id = o.id"
	materialesInOfficeSubquery = "SELECT 1 FROM materiales m WHERE m.oficina_id = o.id"
)

type OfficeFilter struct {
	SearchTerm    string
	HasPersonas   *bool
	HasMateriales *bool
}

// OfficeListItem is an office row with its dependent counts.
type OfficeListItem struct {
	entities.Office
	CantidadPersonas   int
	CantidadMateriales int
}

type OfficeStats struct {
	Total           int64
	PorDepartamento map[string]int64
	ConPersonas     int64
	SinPersonas     int64
	ConMateriales   int64
	SinMateriales   int64
}

type OfficeRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Office, error)
	FindByIDWithPersonas(ctx context.Context, id uint64) (*entities.Office, error)
	FindByNumero(ctx context.Context, numero int) (*entities.Office, error)
	Exists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	ExistsNumero(ctx context.Context, tx pgx.Tx, numero int, excludeID *uint64) (bool, error)
	GetAll(ctx context.Context, filter OfficeFilter, page types.PageRequest) ([]OfficeListItem, int64, error)
	Create(ctx context.Context, tx pgx.Tx, office entities.Office) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, office entities.Office) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error

	CountPersonas(ctx context.Context, tx pgx.Tx, id uint64) (int64, error)
	CountMateriales(ctx context.Context, tx pgx.Tx, id uint64) (int64, error)
	CountHistorial(ctx context.Context, tx pgx.Tx, id uint64) (int64, error)
	Stats(ctx context.Context) (*OfficeStats, error)
}

type officeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOfficeRepository(storage *pgxpool.Pool, logger *zap.Logger) OfficeRepositoryInterface {
	return &officeRepository{storage: storage, logger: logger}
}

func (r *officeRepository) scanOffice(row pgx.Row) (*entities.Office, error) {
	var o entities.Office
	if err := row.Scan(&o.ID, &o.Numero, &o.Departamento, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, mapError(err, "scan oficina")
	}
	return &o, nil
}

func (r *officeRepository) findOne(ctx context.Context, q Querier, where sq.Sqlizer) (*entities.Office, error) {
	query, args, err := psql.Select(officeFields).From(officeTable + " o").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanOffice(q.QueryRow(ctx, query, args...))
}

func (r *officeRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Office, error) {
	return r.findOne(ctx, pick(r.storage, tx), sq.Eq{"o.id": id})
}

func (r *officeRepository) FindByNumero(ctx context.Context, numero int) (*entities.Office, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"o.numero": numero})
}

// FindByIDWithPersonas loads the office and its persons in one query. Every
// person carries the number of materials currently assigned to them.
func (r *officeRepository) FindByIDWithPersonas(ctx context.Context, id uint64) (*entities.Office, error) {
	query, args, err := psql.
		Select(officeFields,
			"p.id", "p.nombre", "p.apellido", "p.jerarquia", "p.nombre_usuario", "p.rol", "p.oficina_id",
			"(SELECT COUNT(*) FROM materiales m WHERE m.persona_asignada_id = p.id) AS materiales_asignados",
		).
		From(officeTable + " o").
		LeftJoin("personas p ON p.oficina_id = o.id").
		Where(sq.Eq{"o.id": id}).
		OrderBy("p.apellido ASC", "p.nombre ASC", "p.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query oficina con personas")
	}
	defer rows.Close()

	var office *entities.Office
	for rows.Next() {
		var (
			o             entities.Office
			personaID     *uint64
			nombre        *string
			apellido      *string
			jerarquia     *constants.Jerarquia
			nombreUsuario *string
			rol           *constants.RolUsuario
			oficinaID     *uint64
			materiales    int64
		)
		if err := rows.Scan(
			&o.ID, &o.Numero, &o.Departamento, &o.CreatedAt, &o.UpdatedAt,
			&personaID, &nombre, &apellido, &jerarquia, &nombreUsuario, &rol, &oficinaID,
			&materiales,
		); err != nil {
			return nil, mapError(err, "scan oficina con personas")
		}
		if office == nil {
			o.Personas = make([]entities.PersonaWithCount, 0)
			office = &o
		}
		if personaID == nil {
			continue
		}
		office.Personas = append(office.Personas, entities.PersonaWithCount{
			Persona: entities.Persona{
				ID:            *personaID,
				Nombre:        *nombre,
				Apellido:      *apellido,
				Jerarquia:     *jerarquia,
				NombreUsuario: *nombreUsuario,
				Rol:           *rol,
				OficinaID:     oficinaID,
			},
			MaterialesAsignados: int(materiales),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate oficina con personas")
	}
	if office == nil {
		return nil, apperrors.ErrNotFound
	}
	return office, nil
}

func (r *officeRepository) Exists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	return exists(ctx, pick(r.storage, tx), psql.Select("1").From(officeTable).Where(sq.Eq{"id": id}))
}

func (r *officeRepository) ExistsNumero(ctx context.Context, tx pgx.Tx, numero int, excludeID *uint64) (bool, error) {
	builder := psql.Select("1").From(officeTable).Where(sq.Eq{"numero": numero})
	if excludeID != nil {
		builder = builder.Where(sq.NotEq{"id": *excludeID})
	}
	return exists(ctx, pick(r.storage, tx), builder)
}

func applyOfficeFilter(b sq.SelectBuilder, f OfficeFilter) sq.SelectBuilder {
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		pattern := likePattern(term)
		b = b.Where(sq.Or{
			sq.Expr("CAST(o.numero AS TEXT) ILIKE ?", pattern),
			sq.ILike{"o.departamento": pattern},
		})
	}
	if f.HasPersonas != nil {
		b = b.Where(existsClause(*f.HasPersonas, personasInOfficeSubquery))
	}
	if f.HasMateriales != nil {
		b = b.Where(existsClause(*f.HasMateriales, materialesInOfficeSubquery))
	}
	return b
}

func (r *officeRepository) GetAll(ctx context.Context, filter OfficeFilter, page types.PageRequest) ([]OfficeListItem, int64, error) {
	total, err := scanCount(ctx, r.storage, applyOfficeFilter(psql.Select("COUNT(*)").From(officeTable+" o"), filter))
	if err != nil {
		return nil, 0, mapError(err, "count oficinas")
	}
	if total == 0 {
		return []OfficeListItem{}, 0, nil
	}

	query, args, err := applyOfficeFilter(
		psql.Select(officeFields,
			"(SELECT COUNT(*) FROM personas p WHERE p.oficina_id = o.id) AS cantidad_personas",
			"(SELECT COUNT(*) FROM materiales m WHERE m.oficina_id = o.id) AS cantidad_materiales",
		).From(officeTable+" o"),
		filter,
	).
		OrderBy("o.numero ASC", "o.id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, "select oficinas")
	}
	defer rows.Close()

	items := make([]OfficeListItem, 0, page.PageSize)
	for rows.Next() {
		var (
			item                 OfficeListItem
			personas, materiales int64
		)
		if err := rows.Scan(
			&item.ID, &item.Numero, &item.Departamento, &item.CreatedAt, &item.UpdatedAt,
			&personas, &materiales,
		); err != nil {
			r.logger.Error("Error scanning oficina", zap.Error(err))
			return nil, 0, mapError(err, "scan oficinas")
		}
		item.CantidadPersonas = int(personas)
		item.CantidadMateriales = int(materiales)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "iterate oficinas")
	}
	return items, total, nil
}

func (r *officeRepository) Create(ctx context.Context, tx pgx.Tx, office entities.Office) (uint64, error) {
	query, args, err := psql.Insert(officeTable).
		Columns("numero", "departamento").
		Values(office.Numero, office.Departamento).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapError(err, "insert oficina")
	}
	return id, nil
}

func (r *officeRepository) Update(ctx context.Context, tx pgx.Tx, office entities.Office) error {
	query, args, err := psql.Update(officeTable).
		Set("numero", office.Numero).
		Set("departamento", office.Departamento).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": office.ID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "update oficina")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *officeRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(officeTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	result, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "delete oficina")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *officeRepository) CountPersonas(ctx context.Context, tx pgx.Tx, id uint64) (int64, error) {
	return countWhere(ctx, pick(r.storage, tx), "personas", sq.Eq{"oficina_id": id})
}

func (r *officeRepository) CountMateriales(ctx context.Context, tx pgx.Tx, id uint64) (int64, error) {
	return countWhere(ctx, pick(r.storage, tx), "materiales", sq.Eq{"oficina_id": id})
}

func (r *officeRepository) CountHistorial(ctx context.Context, tx pgx.Tx, id uint64) (int64, error) {
	return countWhere(ctx, pick(r.storage, tx), "asignaciones_historial", sq.Eq{"oficina_id": id})
}

func (r *officeRepository) Stats(ctx context.Context) (*OfficeStats, error) {
	stats := &OfficeStats{PorDepartamento: make(map[string]int64)}

	var err error
	if stats.Total, err = countWhere(ctx, r.storage, officeTable, nil); err != nil {
		return nil, mapError(err, "count oficinas")
	}
	if stats.ConPersonas, err = scanCount(ctx, r.storage,
		psql.Select("COUNT(*)").From(officeTable+" o").Where(existsClause(true, personasInOfficeSubquery))); err != nil {
		return nil, mapError(err, "count oficinas con personas")
	}
	if stats.ConMateriales, err = scanCount(ctx, r.storage,
		psql.Select("COUNT(*)").From(officeTable+" o").Where(existsClause(true, materialesInOfficeSubquery))); err != nil {
		return nil, mapError(err, "count oficinas con materiales")
	}
	stats.SinPersonas = stats.Total - stats.ConPersonas
	stats.SinMateriales = stats.Total - stats.ConMateriales

	query, args, err := psql.Select("COALESCE(departamento, '')", "COUNT(*)").
		From(officeTable).
		GroupBy("departamento").
		OrderBy("departamento").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "count oficinas por departamento")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			dep   string
			count int64
		)
		if err := rows.Scan(&dep, &count); err != nil {
			return nil, mapError(err, "scan oficinas por departamento")
		}
		stats.PorDepartamento[dep] += count
	}
	return stats, mapError(rows.Err(), "iterate oficinas por departamento")
}

func existsClause(want bool, subquery string) sq.Sqlizer {
	if want {
		return sq.Expr("EXISTS (" + subquery + ")")
	}
	return sq.Expr("NOT EXISTS (" + subquery + ")")
}

func exists(ctx context.Context, q Querier, inner sq.SelectBuilder) (bool, error) {
	query, args, err := inner.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}
	var found bool
	if err := q.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, mapError(err, "exists")
	}
	return found, nil
}

func countWhere(ctx context.Context, q Querier, table string, where sq.Sqlizer) (int64, error) {
	builder := psql.Select("COUNT(*)").From(table)
	if where != nil {
		builder = builder.Where(where)
	}
	return scanCount(ctx, q, builder)
}
