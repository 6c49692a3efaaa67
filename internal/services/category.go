package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

type CategoryServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.CategoriaDTO, error)
	GetAll(ctx context.Context, searchTerm string, page types.PageRequest) (types.PagedResult[dto.CategoriaDTO], error)
	Create(ctx context.Context, payload dto.CreateCategoriaDTO) (*dto.CategoriaDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateCategoriaDTO) (*dto.CategoriaDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type CategoryService struct {
	categoryRepository repositories.CategoryRepositoryInterface
	txManager          repositories.TxManagerInterface
	logger             *zap.Logger
}

func NewCategoryService(
	categoryRepository repositories.CategoryRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) CategoryServiceInterface {
	return &CategoryService{
		categoryRepository: categoryRepository,
		txManager:          txManager,
		logger:             logger,
	}
}

func categoryNotFound(id uint64) error {
	return apperrors.NewNotFoundError("Categoría con ID %d no encontrada", id)
}

func (s *CategoryService) GetByID(ctx context.Context, id uint64) (*dto.CategoriaDTO, error) {
	category, err := s.categoryRepository.FindByID(ctx, nil, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, categoryNotFound(id)
		}
		return nil, err
	}
	materiales, err := s.categoryRepository.CountMateriales(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return toCategoriaDTO(category, int(materiales)), nil
}

func (s *CategoryService) GetAll(ctx context.Context, searchTerm string, page types.PageRequest) (types.PagedResult[dto.CategoriaDTO], error) {
	page = page.Normalize()
	items, total, err := s.categoryRepository.GetAll(ctx, searchTerm, page)
	if err != nil {
		s.logger.Error("Error listing categories", zap.Error(err))
		return types.PagedResult[dto.CategoriaDTO]{}, err
	}

	list := make([]dto.CategoriaDTO, 0, len(items))
	for i := range items {
		list = append(list, *toCategoriaDTO(&items[i].Category, items[i].CantidadMateriales))
	}
	return types.NewPagedResult(page, list, total), nil
}

func (s *CategoryService) Create(ctx context.Context, payload dto.CreateCategoriaDTO) (*dto.CategoriaDTO, error) {
	nombre := strings.TrimSpace(payload.Nombre)

	var newID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		taken, err := s.categoryRepository.ExistsName(ctx, tx, nombre, nil)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflictError("Ya existe una categoría con el nombre '%s'", nombre)
		}
		newID, err = s.categoryRepository.Create(ctx, tx, entities.Category{Nombre: nombre})
		return translate(err)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category created", zap.Uint64("id", newID), zap.String("nombre", nombre))
	return s.GetByID(ctx, newID)
}

func (s *CategoryService) Update(ctx context.Context, id uint64, payload dto.UpdateCategoriaDTO) (*dto.CategoriaDTO, error) {
	nombre := strings.TrimSpace(payload.Nombre)

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.categoryRepository.FindByID(ctx, tx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return categoryNotFound(id)
			}
			return err
		}

		taken, err := s.categoryRepository.ExistsName(ctx, tx, nombre, &id)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflictError("Ya existe otra categoría con el nombre '%s'", nombre)
		}

		current.Nombre = nombre
		return translate(s.categoryRepository.Update(ctx, tx, *current))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category updated", zap.Uint64("id", id))
	return s.GetByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		found, err := s.categoryRepository.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return categoryNotFound(id)
		}

		materiales, err := s.categoryRepository.CountMateriales(ctx, tx, id)
		if err != nil {
			return err
		}
		if materiales > 0 {
			return apperrors.NewConflictError("No se puede eliminar la categoría porque tiene %d material(es)", materiales)
		}
		return translate(s.categoryRepository.Delete(ctx, tx, id))
	})
	if err != nil {
		return err
	}

	s.logger.Info("Category deleted", zap.Uint64("id", id))
	return nil
}
