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

type PersonaServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.PersonaDTO, error)
	GetAll(ctx context.Context, filter dto.PersonaFilterDTO, page types.PageRequest) (types.PagedResult[dto.PersonaListDTO], error)
	Create(ctx context.Context, payload dto.CreatePersonaDTO) (*dto.PersonaDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdatePersonaDTO) (*dto.PersonaDTO, error)
	Delete(ctx context.Context, id uint64) error
	NombreUsuarioDisponible(ctx context.Context, nombreUsuario string, excludeID *uint64) (bool, error)
	Estadisticas(ctx context.Context) (*dto.PersonaEstadisticasDTO, error)
	// FindByUsername is used to issue tokens.
	FindByUsername(ctx context.Context, nombreUsuario string) (*entities.Persona, error)
}

type PersonaService struct {
	personaRepository repositories.PersonaRepositoryInterface
	officeRepository  repositories.OfficeRepositoryInterface
	txManager         repositories.TxManagerInterface
	logger            *zap.Logger
}

func NewPersonaService(
	personaRepository repositories.PersonaRepositoryInterface,
	officeRepository repositories.OfficeRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) PersonaServiceInterface {
	return &PersonaService{
		personaRepository: personaRepository,
		officeRepository:  officeRepository,
		txManager:         txManager,
		logger:            logger,
	}
}

func personaNotFound(id uint64) error {
	return apperrors.NewNotFoundError("Persona con ID %d no encontrada", id)
}

func (s *PersonaService) GetByID(ctx context.Context, id uint64) (*dto.PersonaDTO, error) {
	persona, err := s.personaRepository.FindByID(ctx, nil, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, personaNotFound(id)
		}
		s.logger.Error("Error loading persona", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	materiales, err := s.personaRepository.CountAssignedMaterials(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	ultima, err := s.personaRepository.LastAssignmentDate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPersonaDTO(persona, materiales, ultima), nil
}

func (s *PersonaService) GetAll(ctx context.Context, filter dto.PersonaFilterDTO, page types.PageRequest) (types.PagedResult[dto.PersonaListDTO], error) {
	page = page.Normalize()
	items, total, err := s.personaRepository.GetAll(ctx, repositories.PersonaFilter{
		SearchTerm: filter.SearchTerm,
		OficinaID:  filter.OficinaID,
		Rol:        filter.Rol,
		Jerarquia:  filter.Jerarquia,
	}, page)
	if err != nil {
		s.logger.Error("Error listing personas", zap.Error(err))
		return types.PagedResult[dto.PersonaListDTO]{}, err
	}

	list := make([]dto.PersonaListDTO, 0, len(items))
	for _, item := range items {
		list = append(list, toPersonaListDTO(item))
	}
	return types.NewPagedResult(page, list, total), nil
}

func (s *PersonaService) Create(ctx context.Context, payload dto.CreatePersonaDTO) (*dto.PersonaDTO, error) {
	persona := entities.Persona{
		Nombre:        strings.TrimSpace(payload.Nombre),
		Apellido:      strings.TrimSpace(payload.Apellido),
		Jerarquia:     payload.Jerarquia,
		NombreUsuario: strings.TrimSpace(payload.NombreUsuario),
		Rol:           payload.Rol,
		OficinaID:     payload.OficinaID.Ptr(),
	}

	var newID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.checkPersona(ctx, tx, persona, nil); err != nil {
			return err
		}
		var err error
		newID, err = s.personaRepository.Create(ctx, tx, persona)
		return s.translate(err)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Persona created", zap.Uint64("id", newID), zap.String("nombreUsuario", persona.NombreUsuario))
	return s.GetByID(ctx, newID)
}

func (s *PersonaService) Update(ctx context.Context, id uint64, payload dto.UpdatePersonaDTO) (*dto.PersonaDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.personaRepository.FindByID(ctx, tx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return personaNotFound(id)
			}
			return err
		}

		current.Nombre = strings.TrimSpace(payload.Nombre)
		current.Apellido = strings.TrimSpace(payload.Apellido)
		current.Jerarquia = payload.Jerarquia
		current.NombreUsuario = strings.TrimSpace(payload.NombreUsuario)
		current.Rol = payload.Rol
		current.OficinaID = payload.OficinaID.Ptr()

		if err := s.checkPersona(ctx, tx, *current, &id); err != nil {
			return err
		}
		return s.translate(s.personaRepository.Update(ctx, tx, *current))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Persona updated", zap.Uint64("id", id))
	return s.GetByID(ctx, id)
}

// checkPersona enforces the unique username and the office reference.
// excludeID skips the person being updated.
func (s *PersonaService) checkPersona(ctx context.Context, tx pgx.Tx, p entities.Persona, excludeID *uint64) error {
	taken, err := s.personaRepository.ExistsUsername(ctx, tx, p.NombreUsuario, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewConflictError("Ya existe una persona con el nombre de usuario '%s'", p.NombreUsuario)
	}

	if p.OficinaID != nil {
		found, err := s.officeRepository.Exists(ctx, tx, *p.OficinaID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.FieldError("oficinaId", "La oficina especificada no existe")
		}
	}
	return nil
}

// translate reports a dangling office reference as a validation error, the
// same way the pre-check does.
func (s *PersonaService) translate(err error) error {
	if repositories.ViolatedConstraint(err) == repositories.ConstraintPersonaOficina {
		return apperrors.FieldError("oficinaId", "La oficina especificada no existe")
	}
	return translate(err)
}

func (s *PersonaService) Delete(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		found, err := s.personaRepository.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return personaNotFound(id)
		}

		materiales, err := s.personaRepository.CountAssignedMaterials(ctx, tx, id)
		if err != nil {
			return err
		}
		if materiales > 0 {
			return apperrors.NewConflictError("No se puede eliminar la persona porque tiene %d material(es) asignado(s)", materiales)
		}

		historial, err := s.personaRepository.CountRegisteredHistory(ctx, tx, id)
		if err != nil {
			return err
		}
		if historial > 0 {
			return apperrors.NewConflictError("No se puede eliminar la persona porque figura en %d registro(s) del historial de asignaciones", historial)
		}

		return translate(s.personaRepository.Delete(ctx, tx, id))
	})
	if err != nil {
		return err
	}

	s.logger.Info("Persona deleted", zap.Uint64("id", id))
	return nil
}

func (s *PersonaService) NombreUsuarioDisponible(ctx context.Context, nombreUsuario string, excludeID *uint64) (bool, error) {
	taken, err := s.personaRepository.ExistsUsername(ctx, nil, strings.TrimSpace(nombreUsuario), excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *PersonaService) Estadisticas(ctx context.Context) (*dto.PersonaEstadisticasDTO, error) {
	stats, err := s.personaRepository.Stats(ctx)
	if err != nil {
		s.logger.Error("Error computing persona statistics", zap.Error(err))
		return nil, err
	}
	return toPersonaEstadisticasDTO(stats), nil
}

func (s *PersonaService) FindByUsername(ctx context.Context, nombreUsuario string) (*entities.Persona, error) {
	persona, err := s.personaRepository.FindByUsername(ctx, strings.TrimSpace(nombreUsuario))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("Persona con nombre de usuario '%s' no encontrada", nombreUsuario)
		}
		return nil, err
	}
	return persona, nil
}
