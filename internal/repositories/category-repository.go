package repositories

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const (
	categoryTable  = "categorias_material"
	categoryFields = "c.id, c.nombre, c.fecha_creacion, c.fecha_modificacion"

	ConstraintCategoryNombre = "ux_categorias_material_nombre"
)

type CategoryListItem struct {
	entities.Category
	CantidadMateriales int
}

type CategoryRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Category, error)
	Exists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	ExistsName(ctx context.Context, tx pgx.Tx, nombre string, excludeID *uint64) (bool, error)
	GetAll(ctx context.Context, searchTerm string, page types.PageRequest) ([]CategoryListItem, int64, error)
	Create(ctx context.Context, tx pgx.Tx, category entities.Category) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, category entities.Category) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	CountMateriales(ctx context.Context, tx pgx.Tx, id uint64) (int64, error)
}

type categoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCategoryRepository(storage *pgxpool.Pool, logger *zap.Logger) CategoryRepositoryInterface {
	return &categoryRepository{storage: storage, logger: logger}
}

func (r *categoryRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Category, error) {
	query, args, err := psql.Select(categoryFields).From(categoryTable + " c").Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var c entities.Category
	err = pick(r.storage, tx).QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.Nombre, &c.FechaCreacion, &c.FechaModificacion)
	if err != nil {
		return nil, mapError(err, "select categoria")
	}
	return &c, nil
}

func (r *categoryRepository) Exists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	return exists(ctx, pick(r.storage, tx), psql.Select("1").From(categoryTable).Where(sq.Eq{"id": id}))
}

func (r *categoryRepository) ExistsName(ctx context.Context, tx pgx.Tx, nombre string, excludeID *uint64) (bool, error) {
	builder := psql.Select("1").From(categoryTable).
		Where(sq.Expr("LOWER(nombre) = LOWER(?)", strings.TrimSpace(nombre)))
	if excludeID != nil {
		builder = builder.Where(sq.NotEq{"id": *excludeID})
	}
	return exists(ctx, pick(r.storage, tx), builder)
}

func applyCategorySearch(b sq.SelectBuilder, term string) sq.SelectBuilder {
	if term = strings.TrimSpace(term); term != "" {
		b = b.Where(sq.ILike{"c.nombre": likePattern(term)})
	}
	return b
}

func (r *categoryRepository) GetAll(ctx context.Context, searchTerm string, page types.PageRequest) ([]CategoryListItem, int64, error) {
	total, err := scanCount(ctx, r.storage, applyCategorySearch(psql.Select("COUNT(*)").From(categoryTable+" c"), searchTerm))
	if err != nil {
		return nil, 0, mapError(err, "count categorias")
	}
	if total == 0 {
		return []CategoryListItem{}, 0, nil
	}

	query, args, err := applyCategorySearch(
		psql.Select(categoryFields,
			"(SELECT COUNT(*) FROM materiales m WHERE m.categoria_id = c.id) AS cantidad_materiales",
		).From(categoryTable+" c"),
		searchTerm,
	).
		OrderBy("c.nombre ASC", "c.id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, "select categorias")
	}
	defer rows.Close()

	items := make([]CategoryListItem, 0, page.PageSize)
	for rows.Next() {
		var (
			item       CategoryListItem
			materiales int64
		)
		if err := rows.Scan(&item.ID, &item.Nombre, &item.FechaCreacion, &item.FechaModificacion, &materiales); err != nil {
			r.logger.Error("Error scanning categoria", zap.Error(err))
			return nil, 0, mapError(err, "scan categorias")
		}
		item.CantidadMateriales = int(materiales)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "iterate categorias")
	}
	return items, total, nil
}

func (r *categoryRepository) Create(ctx context.Context, tx pgx.Tx, category entities.Category) (uint64, error) {
	query, args, err := psql.Insert(categoryTable).
		Columns("nombre").
		Values(category.Nombre).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapError(err, "insert categoria")
	}
	return id, nil
}

func (r *categoryRepository) Update(ctx context.Context, tx pgx.Tx, category entities.Category) error {
	query, args, err := psql.Update(categoryTable).
		Set("nombre", category.Nombre).
		Set("fecha_modificacion", sq.Expr("NOW()")).
		Where(sq.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "update categoria")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(categoryTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	result, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "delete categoria")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) CountMateriales(ctx context.Context, tx pgx.Tx, id uint64) (int64, error) {
	return countWhere(ctx, pick(r.storage, tx), "materiales", sq.Eq{"categoria_id": id})
}
