package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/database/postgresql"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

var testPool *pgxpool.Pool

// TestMain connects to TEST_DATABASE_URL and applies the migrations. Without
// it the integration tests are skipped.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		ctx := context.Background()
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			panic("connecting to test database: " + err.Error())
		}
		if err := postgresql.Migrate(ctx, pool, zap.NewNop()); err != nil {
			panic("migrating test database: " + err.Error())
		}
		testPool = pool
	}

	code := m.Run()
	if testPool != nil {
		testPool.Close()
	}
	os.Exit(code)
}

type repoSet struct {
	tx         TxManagerInterface
	offices    OfficeRepositoryInterface
	personas   PersonaRepositoryInterface
	categories CategoryRepositoryInterface
	materials  MaterialRepositoryInterface
	history    AssignmentHistoryRepositoryInterface
}

func setup(t *testing.T) repoSet {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE TABLE asignaciones_historial, materiales, categorias_material, personas, oficinas RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	logger := zap.NewNop()
	return repoSet{
		tx:         NewTxManager(testPool, logger),
		offices:    NewOfficeRepository(testPool, logger),
		personas:   NewPersonaRepository(testPool, logger),
		categories: NewCategoryRepository(testPool, logger),
		materials:  NewMaterialRepository(testPool, logger),
		history:    NewAssignmentHistoryRepository(testPool, logger),
	}
}

type fixture struct {
	oficinaID, personaID, categoriaID, materialID uint64
}

func seed(t *testing.T, r repoSet) fixture {
	t.Helper()
	ctx := context.Background()
	var f fixture
	var err error

	dep := "Informática"
	f.oficinaID, err = r.offices.Create(ctx, nil, entities.Office{Numero: 4, Departamento: &dep})
	require.NoError(t, err)
	f.personaID, err = r.personas.Create(ctx, nil, entities.Persona{
		Nombre: "Juan", Apellido: "Pérez", Jerarquia: constants.JerarquiaCaboPrimero,
		NombreUsuario: "jperez", Rol: constants.RolUsuarioOperador, OficinaID: &f.oficinaID,
	})
	require.NoError(t, err)
	f.categoriaID, err = r.categories.Create(ctx, nil, entities.Category{Nombre: "Computadoras"})
	require.NoError(t, err)
	f.materialID, err = r.materials.Create(ctx, nil, entities.Material{
		Nombre: "Notebook", CategoriaID: f.categoriaID, OficinaID: f.oficinaID, Estado: constants.EstadoDisponible,
	})
	require.NoError(t, err)
	return f
}

func TestIntegration_UniqueViolationsAreConstraintErrors(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	seed(t, r)

	_, err := r.offices.Create(ctx, nil, entities.Office{Numero: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, ConstraintOfficeNumero, ViolatedConstraint(err))

	_, err = r.categories.Create(ctx, nil, entities.Category{Nombre: "COMPUTADORAS"})
	assert.Equal(t, ConstraintCategoryNombre, ViolatedConstraint(err))

	_, err = r.personas.Create(ctx, nil, entities.Persona{Nombre: "Otro", Apellido: "Usuario", NombreUsuario: "jperez"})
	assert.Equal(t, ConstraintPersonaNombreUsuario, ViolatedConstraint(err))
}

func TestIntegration_ForeignKeyViolation(t *testing.T) {
	r := setup(t)
	f := seed(t, r)

	_, err := r.materials.Create(context.Background(), nil, entities.Material{
		Nombre: "Monitor", CategoriaID: 999, OficinaID: f.oficinaID,
	})
	require.Error(t, err)
	assert.Equal(t, ConstraintMaterialCategoria, ViolatedConstraint(err))
}

func TestIntegration_FindJoinsNames(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	f := seed(t, r)

	m, err := r.materials.FindByID(ctx, nil, f.materialID)
	require.NoError(t, err)
	assert.Equal(t, "Computadoras", m.CategoriaNombre)
	assert.Equal(t, 4, m.OficinaNumero)
	assert.False(t, m.EstaAsignado())

	_, err = r.materials.FindByID(ctx, nil, 999)
	assert.True(t, apperrors.IsNotFound(err))

	p, err := r.personas.FindByUsername(ctx, "JPEREZ")
	require.NoError(t, err)
	assert.Equal(t, f.personaID, p.ID)
}

func TestIntegration_LockRequiresTransaction(t *testing.T) {
	r := setup(t)
	f := seed(t, r)

	_, err := r.materials.LockByID(context.Background(), nil, f.materialID)
	assert.ErrorIs(t, err, errTxRequired)

	err = r.tx.RunInTransaction(context.Background(), func(tx pgx.Tx) error {
		m, err := r.materials.LockByID(context.Background(), tx, f.materialID)
		if err != nil {
			return err
		}
		assert.Equal(t, "Notebook", m.Nombre)
		return nil
	})
	require.NoError(t, err)
}

func TestIntegration_SingleOpenAssignmentIndex(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	f := seed(t, r)
	now := time.Now().UTC().Truncate(time.Microsecond)

	open := entities.AssignmentHistory{
		MaterialID:        f.materialID,
		PersonaID:         &f.personaID,
		OficinaID:         f.oficinaID,
		FechaAsignacion:   now,
		Estado:            constants.EstadoAsignado,
		UsuarioRegistroID: f.personaID,
	}
	firstID, err := r.history.Create(ctx, nil, open)
	require.NoError(t, err)

	_, err = r.history.Create(ctx, nil, open)
	require.Error(t, err)
	assert.Equal(t, ConstraintHistoryOpen, ViolatedConstraint(err))

	require.NoError(t, r.history.Close(ctx, nil, firstID, now.Add(time.Hour)))
	assert.True(t, apperrors.IsNotFound(r.history.Close(ctx, nil, firstID, now.Add(2*time.Hour))))

	open.FechaAsignacion = now.Add(2 * time.Hour)
	_, err = r.history.Create(ctx, nil, open)
	require.NoError(t, err)

	entries, err := r.history.FindByMaterial(ctx, f.materialID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, firstID, entries[0].ID)
	assert.Equal(t, "Juan Pérez", entries[0].UsuarioRegistroNombre)
	assert.Equal(t, 4, entries[1].OficinaNumero)
}

func TestIntegration_TransactionRollsBack(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := r.tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := r.offices.Create(ctx, tx, entities.Office{Numero: 50}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	taken, err := r.offices.ExistsNumero(ctx, nil, 50, nil)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestIntegration_OfficeListCounts(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	seed(t, r)
	for n := 10; n < 15; n++ {
		_, err := r.offices.Create(ctx, nil, entities.Office{Numero: n})
		require.NoError(t, err)
	}

	items, total, err := r.offices.GetAll(ctx, OfficeFilter{}, types.PageRequest{PageNumber: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, items, 2)
	assert.Equal(t, 4, items[0].Numero)
	assert.Equal(t, 1, items[0].CantidadPersonas)
	assert.Equal(t, 1, items[0].CantidadMateriales)

	yes := true
	_, total, err = r.offices.GetAll(ctx, OfficeFilter{HasMateriales: &yes}, types.PageRequest{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestIntegration_SearchTreatsWildcardsLiterally(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	seed(t, r)
	dep := "Sala_Servidores"
	_, err := r.offices.Create(ctx, nil, entities.Office{Numero: 7, Departamento: &dep})
	require.NoError(t, err)

	page := types.PageRequest{PageNumber: 1, PageSize: 10}
	items, total, err := r.offices.GetAll(ctx, OfficeFilter{SearchTerm: "_"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Numero)

	_, total, err = r.offices.GetAll(ctx, OfficeFilter{SearchTerm: "%"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
