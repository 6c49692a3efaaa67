package services

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type MaterialServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.MaterialDTO, error)
	GetAll(ctx context.Context, filter dto.MaterialFilterDTO, page types.PageRequest) (types.PagedResult[dto.MaterialDTO], error)
	Create(ctx context.Context, payload dto.CreateMaterialDTO) (*dto.MaterialDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateMaterialDTO) (*dto.MaterialDTO, error)
	Delete(ctx context.Context, id uint64) error

	Assign(ctx context.Context, id uint64, payload dto.AsignarMaterialDTO, registrantID uint64) (*dto.MaterialDTO, error)
	Unassign(ctx context.Context, id uint64, payload dto.DesasignarMaterialDTO, registrantID uint64) (*dto.MaterialDTO, error)
	Historial(ctx context.Context, id uint64) ([]dto.AsignacionHistorialDTO, error)
}

type MaterialService struct {
	materialRepository repositories.MaterialRepositoryInterface
	categoryRepository repositories.CategoryRepositoryInterface
	officeRepository   repositories.OfficeRepositoryInterface
	personaRepository  repositories.PersonaRepositoryInterface
	historyRepository  repositories.AssignmentHistoryRepositoryInterface
	txManager          repositories.TxManagerInterface
	publisher          EventPublisher
	logger             *zap.Logger
	now                func() time.Time
}

func NewMaterialService(
	materialRepository repositories.MaterialRepositoryInterface,
	categoryRepository repositories.CategoryRepositoryInterface,
	officeRepository repositories.OfficeRepositoryInterface,
	personaRepository repositories.PersonaRepositoryInterface,
	historyRepository repositories.AssignmentHistoryRepositoryInterface,
	txManager repositories.TxManagerInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) MaterialServiceInterface {
	return &MaterialService{
		materialRepository: materialRepository,
		categoryRepository: categoryRepository,
		officeRepository:   officeRepository,
		personaRepository:  personaRepository,
		historyRepository:  historyRepository,
		txManager:          txManager,
		publisher:          publisher,
		logger:             logger,
		now:                time.Now,
	}
}

func materialNotFound(id uint64) error {
	return apperrors.NewNotFoundError("Material con ID %d no encontrado", id)
}

func (s *MaterialService) GetByID(ctx context.Context, id uint64) (*dto.MaterialDTO, error) {
	material, err := s.materialRepository.FindByID(ctx, nil, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, materialNotFound(id)
		}
		s.logger.Error("Error loading material", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return toMaterialDTO(material, s.now()), nil
}

func (s *MaterialService) GetAll(ctx context.Context, filter dto.MaterialFilterDTO, page types.PageRequest) (types.PagedResult[dto.MaterialDTO], error) {
	page = page.Normalize()
	items, total, err := s.materialRepository.GetAll(ctx, repositories.MaterialFilter{
		SearchTerm:  filter.SearchTerm,
		CategoriaID: filter.CategoriaID,
		OficinaID:   filter.OficinaID,
		PersonaID:   filter.PersonaID,
		Estado:      filter.Estado,
	}, page)
	if err != nil {
		s.logger.Error("Error listing materials", zap.Error(err))
		return types.PagedResult[dto.MaterialDTO]{}, err
	}

	now := s.now()
	list := make([]dto.MaterialDTO, 0, len(items))
	for i := range items {
		list = append(list, *toMaterialDTO(&items[i], now))
	}
	return types.NewPagedResult(page, list, total), nil
}

func (s *MaterialService) Create(ctx context.Context, payload dto.CreateMaterialDTO) (*dto.MaterialDTO, error) {
	estado := estadoOrDefault(payload.Estado)
	if estado == constants.EstadoAsignado {
		return nil, apperrors.FieldError("estado", "Un material no puede crearse como Asignado, use la operación de asignación")
	}

	material := entities.Material{
		Nombre:        strings.TrimSpace(payload.Nombre),
		Modelo:        optional(payload.Modelo),
		NumeroSerie:   optional(payload.NumeroSerie),
		Descripcion:   optional(payload.Descripcion),
		Marca:         optional(payload.Marca),
		CategoriaID:   payload.CategoriaID,
		Estado:        estado,
		OficinaID:     payload.OficinaID,
		Observaciones: optional(payload.Observaciones),
	}

	var newID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.checkReferences(ctx, tx, material.CategoriaID, material.OficinaID); err != nil {
			return err
		}
		var err error
		newID, err = s.materialRepository.Create(ctx, tx, material)
		return translateMaterial(err)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Material created", zap.Uint64("id", newID), zap.String("nombre", material.Nombre))
	return s.GetByID(ctx, newID)
}

// Update edits the descriptive fields and the state. The Asignado state and
// the assigned person are owned by Assign/Unassign.
func (s *MaterialService) Update(ctx context.Context, id uint64, payload dto.UpdateMaterialDTO) (*dto.MaterialDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.materialRepository.LockByID(ctx, tx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return materialNotFound(id)
			}
			return err
		}

		if err := checkStateChange(current, payload.Estado); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, tx, payload.CategoriaID, payload.OficinaID); err != nil {
			return err
		}

		current.Nombre = strings.TrimSpace(payload.Nombre)
		current.Modelo = optional(payload.Modelo)
		current.NumeroSerie = optional(payload.NumeroSerie)
		current.Descripcion = optional(payload.Descripcion)
		current.Marca = optional(payload.Marca)
		current.CategoriaID = payload.CategoriaID
		current.OficinaID = payload.OficinaID
		current.Observaciones = optional(payload.Observaciones)
		current.Estado = payload.Estado
		return translateMaterial(s.materialRepository.Update(ctx, tx, *current))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Material updated", zap.Uint64("id", id))
	return s.GetByID(ctx, id)
}

func checkStateChange(current *entities.Material, next constants.EstadoMaterial) error {
	if next == current.Estado {
		return nil
	}
	switch {
	case next == constants.EstadoAsignado:
		return apperrors.NewConflictError("El estado Asignado solo se establece mediante la asignación del material")
	case current.EstaAsignado():
		return apperrors.NewConflictError("El material está asignado, debe desasignarse antes de pasar a %s", next)
	case current.Estado.Terminal():
		return apperrors.NewConflictError("Un material en estado %s no puede cambiar de estado", current.Estado)
	}
	return nil
}

func (s *MaterialService) checkReferences(ctx context.Context, tx pgx.Tx, categoriaID, oficinaID uint64) error {
	found, err := s.categoryRepository.Exists(ctx, tx, categoriaID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.FieldError("categoriaId", "La categoría especificada no existe")
	}

	found, err = s.officeRepository.Exists(ctx, tx, oficinaID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.FieldError("oficinaId", "La oficina especificada no existe")
	}
	return nil
}

func translateMaterial(err error) error {
	switch repositories.ViolatedConstraint(err) {
	case repositories.ConstraintMaterialCategoria:
		return apperrors.FieldError("categoriaId", "La categoría especificada no existe")
	case repositories.ConstraintMaterialOficina:
		return apperrors.FieldError("oficinaId", "La oficina especificada no existe")
	}
	return translate(err)
}

func (s *MaterialService) Delete(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.materialRepository.LockByID(ctx, tx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return materialNotFound(id)
			}
			return err
		}
		if current.EstaAsignado() {
			return apperrors.NewConflictError("No se puede eliminar el material porque está asignado")
		}
		return translate(s.materialRepository.Delete(ctx, tx, id))
	})
	if err != nil {
		return err
	}

	s.logger.Info("Material deleted", zap.Uint64("id", id))
	return nil
}

// Assign hands an available material to a person. The material row stays
// locked until the history row and the material columns are both written.
func (s *MaterialService) Assign(ctx context.Context, id uint64, payload dto.AsignarMaterialDTO, registrantID uint64) (*dto.MaterialDTO, error) {
	if err := s.checkRegistrant(ctx, registrantID); err != nil {
		return nil, err
	}

	var (
		material    *entities.Material
		historialID uint64
		now         = s.now()
	)
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		material, err = s.materialRepository.LockByID(ctx, tx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return materialNotFound(id)
			}
			return err
		}

		if !material.Estado.CanBeAssigned() || material.EstaAsignado() {
			return apperrors.NewConflictError("El material no está disponible para asignación (estado actual: %s)", material.Estado)
		}
		if _, err := s.historyRepository.FindOpenByMaterial(ctx, tx, id); err == nil {
			return apperrors.NewConflictError("El material ya tiene una asignación abierta")
		} else if !apperrors.IsNotFound(err) {
			return err
		}

		found, err := s.personaRepository.Exists(ctx, tx, payload.PersonaID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.FieldError("personaId", "La persona especificada no existe")
		}

		personaID := utils.ToPtr(payload.PersonaID)
		historialID, err = s.historyRepository.Create(ctx, tx, entities.AssignmentHistory{
			MaterialID:        id,
			PersonaID:         personaID,
			OficinaID:         material.OficinaID,
			FechaAsignacion:   now,
			Estado:            constants.EstadoAsignado,
			Motivo:            optional(payload.Motivo),
			Observaciones:     optional(payload.Observaciones),
			UsuarioRegistroID: registrantID,
		})
		if err != nil {
			return translate(err)
		}

		return translate(s.materialRepository.UpdateAssignment(ctx, tx, id, personaID, utils.ToPtr(now), constants.EstadoAsignado))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Material assigned",
		zap.Uint64("materialId", id),
		zap.Uint64("personaId", payload.PersonaID),
		zap.Uint64("usuarioRegistroId", registrantID),
	)
	s.publish(ctx, events.NewMaterialAsignado(id, historialID, payload.PersonaID, material.OficinaID, registrantID, material.Nombre, now))
	return s.GetByID(ctx, id)
}

// Unassign closes the open history row, appends a closed unassignment row
// without a person and makes the material available again.
func (s *MaterialService) Unassign(ctx context.Context, id uint64, payload dto.DesasignarMaterialDTO, registrantID uint64) (*dto.MaterialDTO, error) {
	if err := s.checkRegistrant(ctx, registrantID); err != nil {
		return nil, err
	}

	var (
		material    *entities.Material
		previous    *uint64
		historialID uint64
		now         = s.now()
	)
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		material, err = s.materialRepository.LockByID(ctx, tx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return materialNotFound(id)
			}
			return err
		}
		if !material.EstaAsignado() {
			return apperrors.NewConflictError("El material no está asignado")
		}

		open, err := s.historyRepository.FindOpenByMaterial(ctx, tx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NewConflictError("El material no tiene una asignación abierta")
			}
			return err
		}
		previous = open.PersonaID

		if err := s.historyRepository.Close(ctx, tx, open.ID, now); err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NewConflictError("La asignación ya fue cerrada")
			}
			return err
		}

		historialID, err = s.historyRepository.Create(ctx, tx, entities.AssignmentHistory{
			MaterialID:         id,
			OficinaID:          material.OficinaID,
			FechaAsignacion:    now,
			FechaDesasignacion: utils.ToPtr(now),
			Estado:             constants.EstadoDisponible,
			Motivo:             optional(payload.Motivo),
			Observaciones:      optional(payload.Observaciones),
			UsuarioRegistroID:  registrantID,
		})
		if err != nil {
			return translate(err)
		}

		return translate(s.materialRepository.UpdateAssignment(ctx, tx, id, nil, nil, constants.EstadoDisponible))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Material unassigned",
		zap.Uint64("materialId", id),
		zap.Uint64("usuarioRegistroId", registrantID),
	)
	s.publish(ctx, events.NewMaterialDesasignado(id, historialID, previous, material.OficinaID, registrantID, material.Nombre, now))
	return s.GetByID(ctx, id)
}

func (s *MaterialService) Historial(ctx context.Context, id uint64) ([]dto.AsignacionHistorialDTO, error) {
	if _, err := s.materialRepository.FindByID(ctx, nil, id); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, materialNotFound(id)
		}
		return nil, err
	}

	entries, err := s.historyRepository.FindByMaterial(ctx, id)
	if err != nil {
		s.logger.Error("Error loading assignment history", zap.Uint64("materialId", id), zap.Error(err))
		return nil, err
	}

	out := make([]dto.AsignacionHistorialDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toHistorialDTO(e))
	}
	return out, nil
}

func (s *MaterialService) checkRegistrant(ctx context.Context, registrantID uint64) error {
	if registrantID == 0 {
		return apperrors.FieldError("usuarioRegistroId", "El usuario que registra la operación es requerido")
	}
	found, err := s.personaRepository.Exists(ctx, nil, registrantID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.FieldError("usuarioRegistroId", "El usuario que registra la operación no existe")
	}
	return nil
}

func (s *MaterialService) publish(ctx context.Context, event eventbus.Event) {
	if s.publisher != nil {
		s.publisher.Publish(ctx, event)
	}
}
