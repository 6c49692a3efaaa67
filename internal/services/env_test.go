package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/pkg/constants"
)

type testEnv struct {
	db        *memDB
	tx        *fakeTxManager
	published *recordingPublisher

	offices    OfficeServiceInterface
	personas   PersonaServiceInterface
	categories CategoryServiceInterface
	materials  MaterialServiceInterface
	reports    ReportServiceInterface
}

func newTestEnv() *testEnv {
	db := newMemDB()
	tx := &fakeTxManager{}
	published := &recordingPublisher{}
	logger := zap.NewNop()

	officeRepo := &fakeOfficeRepo{db: db}
	personaRepo := &fakePersonaRepo{db: db}
	categoryRepo := &fakeCategoryRepo{db: db}
	materialRepo := &fakeMaterialRepo{db: db}
	historyRepo := &fakeHistoryRepo{db: db}

	clock := func() time.Time { return db.now }

	materials := NewMaterialService(materialRepo, categoryRepo, officeRepo, personaRepo, historyRepo, tx, published, logger)
	materials.(*MaterialService).now = clock
	reports := NewReportService(materialRepo, logger)
	reports.(*ReportService).now = clock

	return &testEnv{
		db:         db,
		tx:         tx,
		published:  published,
		offices:    NewOfficeService(officeRepo, materialRepo, tx, logger),
		personas:   NewPersonaService(personaRepo, officeRepo, tx, logger),
		categories: NewCategoryService(categoryRepo, tx, logger),
		materials:  materials,
		reports:    reports,
	}
}

// advance moves the fake clock forward.
func (e *testEnv) advance(d time.Duration) {
	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	e.db.now = e.db.now.Add(d)
}

func (e *testEnv) office(t *testing.T, numero int, departamento string) *dto.OficinaDTO {
	t.Helper()
	payload := dto.CreateOficinaDTO{Numero: numero}
	if departamento != "" {
		payload.Departamento = null.StringFrom(departamento)
	}
	o, err := e.offices.Create(context.Background(), payload)
	require.NoError(t, err)
	return o
}

func (e *testEnv) persona(t *testing.T, username string, oficinaID *uint64) *dto.PersonaDTO {
	t.Helper()
	p, err := e.personas.Create(context.Background(), dto.CreatePersonaDTO{
		Nombre:        "Juan",
		Apellido:      "Pérez",
		Jerarquia:     constants.JerarquiaCaboPrimero,
		NombreUsuario: username,
		Rol:           constants.RolUsuarioOperador,
		OficinaID:     null.Uint64FromPtr(oficinaID),
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) category(t *testing.T, nombre string) *dto.CategoriaDTO {
	t.Helper()
	c, err := e.categories.Create(context.Background(), dto.CreateCategoriaDTO{Nombre: nombre})
	require.NoError(t, err)
	return c
}

func (e *testEnv) material(t *testing.T, nombre string, categoriaID, oficinaID uint64) *dto.MaterialDTO {
	t.Helper()
	m, err := e.materials.Create(context.Background(), dto.CreateMaterialDTO{
		Nombre:      nombre,
		CategoriaID: categoriaID,
		OficinaID:   oficinaID,
	})
	require.NoError(t, err)
	return m
}
