package repositories

import (
	"context"
	"errors"
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
	materialTable = "materiales"

	ConstraintMaterialCategoria = "fk_materiales_categoria"
	ConstraintMaterialOficina   = "fk_materiales_oficina"
	ConstraintMaterialPersona   = "fk_materiales_persona"
)

var materialColumns = []string{
	"m.id", "m.nombre", "m.modelo", "m.numero_serie", "m.descripcion", "m.marca",
	"m.categoria_id", "m.estado", "m.fecha_registro_sistema", "m.fecha_asignacion",
	"m.persona_asignada_id", "m.oficina_id", "m.observaciones", "m.fecha_modificacion",
	"c.nombre", "o.numero", "o.departamento", "p.nombre", "p.apellido",
}

var errTxRequired = errors.New("material lock requires a transaction")

type MaterialFilter struct {
	SearchTerm  string
	CategoriaID *uint64
	OficinaID   *uint64
	PersonaID   *uint64
	Estado      *constants.EstadoMaterial
}

type MaterialRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Material, error)
	// LockByID reads the material row with FOR UPDATE. It requires a transaction.
	LockByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Material, error)
	GetAll(ctx context.Context, filter MaterialFilter, page types.PageRequest) ([]entities.Material, int64, error)
	ListByOffice(ctx context.Context, oficinaID uint64) ([]entities.Material, error)
	ListForExport(ctx context.Context, filter MaterialFilter) ([]entities.Material, error)
	Create(ctx context.Context, tx pgx.Tx, material entities.Material) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, material entities.Material) error
	UpdateAssignment(ctx context.Context, tx pgx.Tx, id uint64, personaID *uint64, fecha *time.Time, estado constants.EstadoMaterial) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
}

type materialRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMaterialRepository(storage *pgxpool.Pool, logger *zap.Logger) MaterialRepositoryInterface {
	return &materialRepository{storage: storage, logger: logger}
}

func baseMaterialSelect() sq.SelectBuilder {
	return psql.Select(materialColumns...).
		From(materialTable + " m").
		Join("categorias_material c ON c.id = m.categoria_id").
		Join("oficinas o ON o.id = m.oficina_id").
		LeftJoin("personas p ON p.id = m.persona_asignada_id")
}

func scanMaterial(row pgx.Row) (*entities.Material, error) {
	var m entities.Material
	err := row.Scan(
		&m.ID, &m.Nombre, &m.Modelo, &m.NumeroSerie, &m.Descripcion, &m.Marca,
		&m.CategoriaID, &m.Estado, &m.FechaRegistroSistema, &m.FechaAsignacion,
		&m.PersonaAsignadaID, &m.OficinaID, &m.Observaciones, &m.FechaModificacion,
		&m.CategoriaNombre, &m.OficinaNumero, &m.OficinaDepartamento,
		&m.PersonaAsignadaNombre, &m.PersonaAsignadaApellido,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Material, error) {
	query, args, err := baseMaterialSelect().Where(sq.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	m, err := scanMaterial(pick(r.storage, tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "select material")
	}
	return m, nil
}

func (r *materialRepository) LockByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Material, error) {
	if tx == nil {
		return nil, errTxRequired
	}
	query, args, err := baseMaterialSelect().Where(sq.Eq{"m.id": id}).Suffix("FOR UPDATE OF m").ToSql()
	if err != nil {
		return nil, err
	}
	m, err := scanMaterial(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "lock material")
	}
	return m, nil
}

func applyMaterialFilter(b sq.SelectBuilder, f MaterialFilter) sq.SelectBuilder {
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		pattern := likePattern(term)
		b = b.Where(sq.Or{
			sq.ILike{"m.nombre": pattern},
			sq.ILike{"m.modelo": pattern},
			sq.ILike{"m.numero_serie": pattern},
			sq.ILike{"m.marca": pattern},
		})
	}
	if f.CategoriaID != nil {
		b = b.Where(sq.Eq{"m.categoria_id": *f.CategoriaID})
	}
	if f.OficinaID != nil {
		b = b.Where(sq.Eq{"m.oficina_id": *f.OficinaID})
	}
	if f.PersonaID != nil {
		b = b.Where(sq.Eq{"m.persona_asignada_id": *f.PersonaID})
	}
	if f.Estado != nil {
		b = b.Where(sq.Eq{"m.estado": *f.Estado})
	}
	return b
}

func (r *materialRepository) GetAll(ctx context.Context, filter MaterialFilter, page types.PageRequest) ([]entities.Material, int64, error) {
	total, err := scanCount(ctx, r.storage, applyMaterialFilter(psql.Select("COUNT(*)").From(materialTable+" m"), filter))
	if err != nil {
		return nil, 0, mapError(err, "count materiales")
	}
	if total == 0 {
		return []entities.Material{}, 0, nil
	}

	items, err := r.list(ctx, applyMaterialFilter(baseMaterialSelect(), filter).
		OrderBy("m.nombre ASC", "m.id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *materialRepository) ListByOffice(ctx context.Context, oficinaID uint64) ([]entities.Material, error) {
	return r.list(ctx, baseMaterialSelect().Where(sq.Eq{"m.oficina_id": oficinaID}).OrderBy("m.nombre ASC", "m.id ASC"))
}

// ListForExport returns every material matching the filter ordered by
// office number and name.
func (r *materialRepository) ListForExport(ctx context.Context, filter MaterialFilter) ([]entities.Material, error) {
	return r.list(ctx, applyMaterialFilter(baseMaterialSelect(), filter).OrderBy("o.numero ASC", "m.nombre ASC", "m.id ASC"))
}

func (r *materialRepository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Material, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "select materiales")
	}
	defer rows.Close()

	items := make([]entities.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			r.logger.Error("Error scanning material", zap.Error(err))
			return nil, mapError(err, "scan materiales")
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate materiales")
	}
	return items, nil
}

func (r *materialRepository) Create(ctx context.Context, tx pgx.Tx, material entities.Material) (uint64, error) {
	query, args, err := psql.Insert(materialTable).
		Columns("nombre", "modelo", "numero_serie", "descripcion", "marca",
			"categoria_id", "estado", "oficina_id", "observaciones").
		Values(material.Nombre, material.Modelo, material.NumeroSerie, material.Descripcion, material.Marca,
			material.CategoriaID, material.Estado, material.OficinaID, material.Observaciones).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapError(err, "insert material")
	}
	return id, nil
}

// Update writes the descriptive columns and the state. Assignment columns are
// owned by UpdateAssignment.
func (r *materialRepository) Update(ctx context.Context, tx pgx.Tx, material entities.Material) error {
	query, args, err := psql.Update(materialTable).
		SetMap(map[string]interface{}{
			"nombre":             material.Nombre,
			"modelo":             material.Modelo,
			"numero_serie":       material.NumeroSerie,
			"descripcion":        material.Descripcion,
			"marca":              material.Marca,
			"categoria_id":       material.CategoriaID,
			"estado":             material.Estado,
			"oficina_id":         material.OficinaID,
			"observaciones":      material.Observaciones,
			"fecha_modificacion": sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": material.ID}).
		ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, tx, query, args, "update material")
}

func (r *materialRepository) UpdateAssignment(ctx context.Context, tx pgx.Tx, id uint64, personaID *uint64, fecha *time.Time, estado constants.EstadoMaterial) error {
	query, args, err := psql.Update(materialTable).
		Set("persona_asignada_id", personaID).
		Set("fecha_asignacion", fecha).
		Set("estado", estado).
		Set("fecha_modificacion", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, tx, query, args, "update asignacion material")
}

func (r *materialRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(materialTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, tx, query, args, "delete material")
}

func (r *materialRepository) execOne(ctx context.Context, tx pgx.Tx, query string, args []interface{}, op string) error {
	result, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, op)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
