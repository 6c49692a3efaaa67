package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/repositories"
)

const (
	InventorySheet = "Inventario"
	dateLayout     = "2006-01-02"
)

var inventoryHeaders = []interface{}{
	"ID", "Nombre", "Categoría", "Marca", "Modelo", "Número de serie", "Estado",
	"Oficina", "Departamento", "Persona asignada", "Fecha de asignación", "Fecha de registro", "Días desde registro",
}

type ReportServiceInterface interface {
	ExportMateriales(ctx context.Context, filter dto.MaterialFilterDTO) (*excelize.File, error)
}

type ReportService struct {
	materialRepository repositories.MaterialRepositoryInterface
	logger             *zap.Logger
	now                func() time.Time
}

func NewReportService(materialRepository repositories.MaterialRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{materialRepository: materialRepository, logger: logger, now: time.Now}
}

// ExportMateriales builds a spreadsheet with one row per material matching
// the filter, ordered by office number and name.
func (s *ReportService) ExportMateriales(ctx context.Context, filter dto.MaterialFilterDTO) (*excelize.File, error) {
	materiales, err := s.materialRepository.ListForExport(ctx, repositories.MaterialFilter{
		SearchTerm:  filter.SearchTerm,
		CategoriaID: filter.CategoriaID,
		OficinaID:   filter.OficinaID,
		PersonaID:   filter.PersonaID,
		Estado:      filter.Estado,
	})
	if err != nil {
		s.logger.Error("Error loading materials for export", zap.Error(err))
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(InventorySheet, "A1", &inventoryHeaders); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(inventoryHeaders), 1)
	if err := f.SetCellStyle(InventorySheet, "A1", lastHeader, style); err != nil {
		return nil, err
	}

	now := s.now()
	for i := range materiales {
		m := toMaterialDTO(&materiales[i], now)
		row := []interface{}{
			m.ID,
			m.Nombre,
			m.CategoriaNombre,
			m.Marca.String,
			m.Modelo.String,
			m.NumeroSerie.String,
			m.EstadoDescripcion,
			m.OficinaNumero,
			m.OficinaDepartamento.String,
			m.PersonaAsignadaCompleto.String,
			formatDate(m.FechaAsignacion),
			m.FechaRegistroSistema.Format(dateLayout),
			m.DiasDesdeRegistro,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(InventorySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(InventorySheet, "B", "C", 25)
	_ = f.SetColWidth(InventorySheet, "D", "F", 18)
	_ = f.SetColWidth(InventorySheet, "I", "J", 25)
	_ = f.SetColWidth(InventorySheet, "K", "L", 18)

	s.logger.Info("Inventory exported", zap.Int("rows", len(materiales)))
	return f, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
