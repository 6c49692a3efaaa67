package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

type OfficeServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.OficinaDTO, error)
	GetAll(ctx context.Context, filter dto.OficinaFilterDTO, page types.PageRequest) (types.PagedResult[dto.OficinaListDTO], error)
	Create(ctx context.Context, payload dto.CreateOficinaDTO) (*dto.OficinaDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateOficinaDTO) (*dto.OficinaDTO, error)
	Delete(ctx context.Context, id uint64) error
	NumeroDisponible(ctx context.Context, numero int, excludeID *uint64) (bool, error)
	Estadisticas(ctx context.Context) (*dto.OficinaEstadisticasDTO, error)
}

type OfficeService struct {
	officeRepository   repositories.OfficeRepositoryInterface
	materialRepository repositories.MaterialRepositoryInterface
	txManager          repositories.TxManagerInterface
	logger             *zap.Logger
}

func NewOfficeService(
	officeRepository repositories.OfficeRepositoryInterface,
	materialRepository repositories.MaterialRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) OfficeServiceInterface {
	return &OfficeService{
		officeRepository:   officeRepository,
		materialRepository: materialRepository,
		txManager:          txManager,
		logger:             logger,
	}
}

func officeNotFound(id uint64) error {
	return apperrors.NewNotFoundError("Oficina con ID %d no encontrada", id)
}

func (s *OfficeService) GetByID(ctx context.Context, id uint64) (*dto.OficinaDTO, error) {
	office, err := s.officeRepository.FindByIDWithPersonas(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, officeNotFound(id)
		}
		s.logger.Error("Error loading office", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	materiales, err := s.materialRepository.ListByOffice(ctx, id)
	if err != nil {
		s.logger.Error("Error loading office materials", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return toOficinaDTO(office, materiales), nil
}

func (s *OfficeService) GetAll(ctx context.Context, filter dto.OficinaFilterDTO, page types.PageRequest) (types.PagedResult[dto.OficinaListDTO], error) {
	page = page.Normalize()
	items, total, err := s.officeRepository.GetAll(ctx, repositories.OfficeFilter{
		SearchTerm:    filter.SearchTerm,
		HasPersonas:   filter.HasPersonas,
		HasMateriales: filter.HasMateriales,
	}, page)
	if err != nil {
		s.logger.Error("Error listing offices", zap.Error(err))
		return types.PagedResult[dto.OficinaListDTO]{}, err
	}

	list := make([]dto.OficinaListDTO, 0, len(items))
	for _, item := range items {
		list = append(list, toOficinaListDTO(item))
	}
	return types.NewPagedResult(page, list, total), nil
}

func (s *OfficeService) Create(ctx context.Context, payload dto.CreateOficinaDTO) (*dto.OficinaDTO, error) {
	var newID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		taken, err := s.officeRepository.ExistsNumero(ctx, tx, payload.Numero, nil)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflictError("Ya existe una oficina con el número %d", payload.Numero)
		}

		newID, err = s.officeRepository.Create(ctx, tx, officeFromCreate(payload))
		return translate(err)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Office created", zap.Uint64("id", newID), zap.Int("numero", payload.Numero))
	return s.GetByID(ctx, newID)
}

func (s *OfficeService) Update(ctx context.Context, id uint64, payload dto.UpdateOficinaDTO) (*dto.OficinaDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.officeRepository.FindByID(ctx, tx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return officeNotFound(id)
			}
			return err
		}

		if current.Numero != payload.Numero {
			taken, err := s.officeRepository.ExistsNumero(ctx, tx, payload.Numero, &id)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewConflictError("Ya existe otra oficina con el número %d", payload.Numero)
			}
		}

		current.Numero = payload.Numero
		current.Departamento = optional(payload.Departamento)
		return translate(s.officeRepository.Update(ctx, tx, *current))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Office updated", zap.Uint64("id", id))
	return s.GetByID(ctx, id)
}

// Delete refuses to remove an office that any person, material or history
// row still points at.
func (s *OfficeService) Delete(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		found, err := s.officeRepository.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return officeNotFound(id)
		}

		personas, err := s.officeRepository.CountPersonas(ctx, tx, id)
		if err != nil {
			return err
		}
		if personas > 0 {
			return apperrors.NewConflictError("No se puede eliminar la oficina porque tiene %d persona(s) asignada(s)", personas)
		}

		materiales, err := s.officeRepository.CountMateriales(ctx, tx, id)
		if err != nil {
			return err
		}
		if materiales > 0 {
			return apperrors.NewConflictError("No se puede eliminar la oficina porque tiene %d material(es) ubicado(s)", materiales)
		}

		historial, err := s.officeRepository.CountHistorial(ctx, tx, id)
		if err != nil {
			return err
		}
		if historial > 0 {
			return apperrors.NewConflictError("No se puede eliminar la oficina porque figura en %d registro(s) del historial de asignaciones", historial)
		}

		return translate(s.officeRepository.Delete(ctx, tx, id))
	})
	if err != nil {
		return err
	}

	s.logger.Info("Office deleted", zap.Uint64("id", id))
	return nil
}

func (s *OfficeService) NumeroDisponible(ctx context.Context, numero int, excludeID *uint64) (bool, error) {
	taken, err := s.officeRepository.ExistsNumero(ctx, nil, numero, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *OfficeService) Estadisticas(ctx context.Context) (*dto.OficinaEstadisticasDTO, error) {
	stats, err := s.officeRepository.Stats(ctx)
	if err != nil {
		s.logger.Error("Error computing office statistics", zap.Error(err))
		return nil, err
	}
	return toOficinaEstadisticasDTO(stats), nil
}
