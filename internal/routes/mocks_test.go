package routes

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"inventory-system/internal/dto"
	"inventory-system/pkg/types"
)

type mockOfficeService struct{ mock.Mock }

func (m *mockOfficeService) GetByID(ctx context.Context, id uint64) (*dto.OficinaDTO, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*dto.OficinaDTO)
	return out, args.Error(1)
}

func (m *mockOfficeService) GetAll(ctx context.Context, filter dto.OficinaFilterDTO, page types.PageRequest) (types.PagedResult[dto.OficinaListDTO], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(types.PagedResult[dto.OficinaListDTO]), args.Error(1)
}

func (m *mockOfficeService) Create(ctx context.Context, payload dto.CreateOficinaDTO) (*dto.OficinaDTO, error) {
	args := m.Called(ctx, payload)
	out, _ := args.Get(0).(*dto.OficinaDTO)
	return out, args.Error(1)
}

func (m *mockOfficeService) Update(ctx context.Context, id uint64, payload dto.UpdateOficinaDTO) (*dto.OficinaDTO, error) {
	args := m.Called(ctx, id, payload)
	out, _ := args.Get(0).(*dto.OficinaDTO)
	return out, args.Error(1)
}

func (m *mockOfficeService) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOfficeService) NumeroDisponible(ctx context.Context, numero int, excludeID *uint64) (bool, error) {
	args := m.Called(ctx, numero, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockOfficeService) Estadisticas(ctx context.Context) (*dto.OficinaEstadisticasDTO, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*dto.OficinaEstadisticasDTO)
	return out, args.Error(1)
}

type mockMaterialService struct{ mock.Mock }

func (m *mockMaterialService) GetByID(ctx context.Context, id uint64) (*dto.MaterialDTO, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*dto.MaterialDTO)
	return out, args.Error(1)
}

func (m *mockMaterialService) GetAll(ctx context.Context, filter dto.MaterialFilterDTO, page types.PageRequest) (types.PagedResult[dto.MaterialDTO], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(types.PagedResult[dto.MaterialDTO]), args.Error(1)
}

func (m *mockMaterialService) Create(ctx context.Context, payload dto.CreateMaterialDTO) (*dto.MaterialDTO, error) {
	args := m.Called(ctx, payload)
	out, _ := args.Get(0).(*dto.MaterialDTO)
	return out, args.Error(1)
}

func (m *mockMaterialService) Update(ctx context.Context, id uint64, payload dto.UpdateMaterialDTO) (*dto.MaterialDTO, error) {
	args := m.Called(ctx, id, payload)
	out, _ := args.Get(0).(*dto.MaterialDTO)
	return out, args.Error(1)
}

func (m *mockMaterialService) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMaterialService) Assign(ctx context.Context, id uint64, payload dto.AsignarMaterialDTO, registrantID uint64) (*dto.MaterialDTO, error) {
	args := m.Called(ctx, id, payload, registrantID)
	out, _ := args.Get(0).(*dto.MaterialDTO)
	return out, args.Error(1)
}

func (m *mockMaterialService) Unassign(ctx context.Context, id uint64, payload dto.DesasignarMaterialDTO, registrantID uint64) (*dto.MaterialDTO, error) {
	args := m.Called(ctx, id, payload, registrantID)
	out, _ := args.Get(0).(*dto.MaterialDTO)
	return out, args.Error(1)
}

func (m *mockMaterialService) Historial(ctx context.Context, id uint64) ([]dto.AsignacionHistorialDTO, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]dto.AsignacionHistorialDTO)
	return out, args.Error(1)
}

type mockReportService struct{ mock.Mock }

func (m *mockReportService) ExportMateriales(ctx context.Context, filter dto.MaterialFilterDTO) (*excelize.File, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).(*excelize.File)
	return out, args.Error(1)
}
