package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/types"
)

// memDB is a shared in-memory schema behind the fake repositories, so counts
// and joins stay consistent across them.
type memDB struct {
	mu         sync.Mutex
	nextID     uint64
	now        time.Time
	offices    map[uint64]entities.Office
	personas   map[uint64]entities.Persona
	categories map[uint64]entities.Category
	materials  map[uint64]entities.Material
	history    []entities.AssignmentHistory
}

func newMemDB() *memDB {
	return &memDB{
		now:        time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		offices:    make(map[uint64]entities.Office),
		personas:   make(map[uint64]entities.Persona),
		categories: make(map[uint64]entities.Category),
		materials:  make(map[uint64]entities.Material),
	}
}

func (db *memDB) id() uint64 {
	db.nextID++
	return db.nextID
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
}

func violation(op, constraint string) error {
	return &repositories.ConstraintError{Op: op, Constraint: constraint, Code: "23505"}
}

func paginate[T any](items []T, page types.PageRequest) []T {
	start := int(page.Offset())
	if start >= len(items) {
		return nil
	}
	end := start + page.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func excluded(id uint64, excludeID *uint64) bool {
	return excludeID != nil && *excludeID == id
}

// --- TxManager ---

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

// --- Offices ---

type fakeOfficeRepo struct{ db *memDB }

func (r *fakeOfficeRepo) FindByID(_ context.Context, _ pgx.Tx, id uint64) (*entities.Office, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	o, ok := r.db.offices[id]
	if !ok {
		return nil, notFound("office FindByID")
	}
	return &o, nil
}

func (r *fakeOfficeRepo) FindByIDWithPersonas(ctx context.Context, id uint64) (*entities.Office, error) {
	o, err := r.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.personas {
		if p.OficinaID != nil && *p.OficinaID == id {
			o.Personas = append(o.Personas, entities.PersonaWithCount{
				Persona:             p,
				MaterialesAsignados: r.db.assignedTo(p.ID),
			})
		}
	}
	return o, nil
}

func (r *fakeOfficeRepo) FindByNumero(_ context.Context, numero int) (*entities.Office, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, o := range r.db.offices {
		if o.Numero == numero {
			return &o, nil
		}
	}
	return nil, notFound("office FindByNumero")
}

func (r *fakeOfficeRepo) Exists(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.offices[id]
	return ok, nil
}

func (r *fakeOfficeRepo) ExistsNumero(_ context.Context, _ pgx.Tx, numero int, excludeID *uint64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, o := range r.db.offices {
		if o.Numero == numero && !excluded(o.ID, excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOfficeRepo) GetAll(_ context.Context, filter repositories.OfficeFilter, page types.PageRequest) ([]repositories.OfficeListItem, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	term := strings.ToLower(filter.SearchTerm)
	var all []repositories.OfficeListItem
	for _, o := range r.db.offices {
		item := repositories.OfficeListItem{
			Office:             o,
			CantidadPersonas:   r.db.personasIn(o.ID),
			CantidadMateriales: r.db.materialsIn(o.ID),
		}
		if term != "" {
			dep := ""
			if o.Departamento != nil {
				dep = strings.ToLower(*o.Departamento)
			}
			if !strings.Contains(strconv.Itoa(o.Numero), term) && !strings.Contains(dep, term) {
				continue
			}
		}
		if filter.HasPersonas != nil && *filter.HasPersonas != (item.CantidadPersonas > 0) {
			continue
		}
		if filter.HasMateriales != nil && *filter.HasMateriales != (item.CantidadMateriales > 0) {
			continue
		}
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Numero < all[j].Numero })
	return paginate(all, page), int64(len(all)), nil
}

func (r *fakeOfficeRepo) Create(_ context.Context, _ pgx.Tx, office entities.Office) (uint64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, o := range r.db.offices {
		if o.Numero == office.Numero {
			return 0, violation("office Create", repositories.ConstraintOfficeNumero)
		}
	}
	office.ID = r.db.id()
	r.db.offices[office.ID] = office
	return office.ID, nil
}

func (r *fakeOfficeRepo) Update(_ context.Context, _ pgx.Tx, office entities.Office) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.offices[office.ID]; !ok {
		return notFound("office Update")
	}
	office.Personas = nil
	r.db.offices[office.ID] = office
	return nil
}

func (r *fakeOfficeRepo) Delete(_ context.Context, _ pgx.Tx, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.offices[id]; !ok {
		return notFound("office Delete")
	}
	delete(r.db.offices, id)
	return nil
}

func (r *fakeOfficeRepo) CountPersonas(_ context.Context, _ pgx.Tx, id uint64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(r.db.personasIn(id)), nil
}

func (r *fakeOfficeRepo) CountMateriales(_ context.Context, _ pgx.Tx, id uint64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(r.db.materialsIn(id)), nil
}

func (r *fakeOfficeRepo) CountHistorial(_ context.Context, _ pgx.Tx, id uint64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, h := range r.db.history {
		if h.OficinaID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeOfficeRepo) Stats(_ context.Context) (*repositories.OfficeStats, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stats := &repositories.OfficeStats{PorDepartamento: make(map[string]int64)}
	for _, o := range r.db.offices {
		stats.Total++
		dep := ""
		if o.Departamento != nil {
			dep = *o.Departamento
		}
		stats.PorDepartamento[dep]++
		if r.db.personasIn(o.ID) > 0 {
			stats.ConPersonas++
		} else {
			stats.SinPersonas++
		}
		if r.db.materialsIn(o.ID) > 0 {
			stats.ConMateriales++
		} else {
			stats.SinMateriales++
		}
	}
	return stats, nil
}

// helpers below expect db.mu to be held

func (db *memDB) personasIn(officeID uint64) int {
	n := 0
	for _, p := range db.personas {
		if p.OficinaID != nil && *p.OficinaID == officeID {
			n++
		}
	}
	return n
}

func (db *memDB) materialsIn(officeID uint64) int {
	n := 0
	for _, m := range db.materials {
		if m.OficinaID == officeID {
			n++
		}
	}
	return n
}

func (db *memDB) assignedTo(personaID uint64) int {
	n := 0
	for _, m := range db.materials {
		if m.PersonaAsignadaID != nil && *m.PersonaAsignadaID == personaID {
			n++
		}
	}
	return n
}

func (db *memDB) joinMaterial(m entities.Material) entities.Material {
	if c, ok := db.categories[m.CategoriaID]; ok {
		m.CategoriaNombre = c.Nombre
	}
	if o, ok := db.offices[m.OficinaID]; ok {
		m.OficinaNumero = o.Numero
		m.OficinaDepartamento = o.Departamento
	}
	m.PersonaAsignadaNombre, m.PersonaAsignadaApellido = nil, nil
	if m.PersonaAsignadaID != nil {
		if p, ok := db.personas[*m.PersonaAsignadaID]; ok {
			nombre, apellido := p.Nombre, p.Apellido
			m.PersonaAsignadaNombre, m.PersonaAsignadaApellido = &nombre, &apellido
		}
	}
	return m
}

// --- Personas ---

type fakePersonaRepo struct{ db *memDB }

func (r *fakePersonaRepo) FindByID(_ context.Context, _ pgx.Tx, id uint64) (*entities.Persona, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.personas[id]
	if !ok {
		return nil, notFound("persona FindByID")
	}
	if p.OficinaID != nil {
		if o, ok := r.db.offices[*p.OficinaID]; ok {
			p.Oficina = &o
		}
	}
	return &p, nil
}

func (r *fakePersonaRepo) FindByUsername(_ context.Context, nombreUsuario string) (*entities.Persona, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.personas {
		if strings.EqualFold(p.NombreUsuario, nombreUsuario) {
			return &p, nil
		}
	}
	return nil, notFound("persona FindByUsername")
}

func (r *fakePersonaRepo) Exists(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.personas[id]
	return ok, nil
}

func (r *fakePersonaRepo) ExistsUsername(_ context.Context, _ pgx.Tx, nombreUsuario string, excludeID *uint64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.personas {
		if strings.EqualFold(p.NombreUsuario, nombreUsuario) && !excluded(p.ID, excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePersonaRepo) GetAll(_ context.Context, filter repositories.PersonaFilter, page types.PageRequest) ([]repositories.PersonaListItem, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	term := strings.ToLower(filter.SearchTerm)
	var all []repositories.PersonaListItem
	for _, p := range r.db.personas {
		if term != "" && !strings.Contains(strings.ToLower(p.NombreCompleto()+" "+p.NombreUsuario), term) {
			continue
		}
		if filter.OficinaID != nil && (p.OficinaID == nil || *p.OficinaID != *filter.OficinaID) {
			continue
		}
		if filter.Rol != nil && p.Rol != *filter.Rol {
			continue
		}
		if filter.Jerarquia != nil && p.Jerarquia != *filter.Jerarquia {
			continue
		}
		item := repositories.PersonaListItem{Persona: p, MaterialesAsignados: r.db.assignedTo(p.ID)}
		if p.OficinaID != nil {
			if o, ok := r.db.offices[*p.OficinaID]; ok {
				numero := o.Numero
				item.OficinaNumero = &numero
				item.OficinaDepartamento = o.Departamento
			}
		}
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page), int64(len(all)), nil
}

func (r *fakePersonaRepo) Create(_ context.Context, _ pgx.Tx, persona entities.Persona) (uint64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.personas {
		if p.NombreUsuario == persona.NombreUsuario {
			return 0, violation("persona Create", repositories.ConstraintPersonaNombreUsuario)
		}
	}
	persona.ID = r.db.id()
	persona.Oficina = nil
	r.db.personas[persona.ID] = persona
	return persona.ID, nil
}

func (r *fakePersonaRepo) Update(_ context.Context, _ pgx.Tx, persona entities.Persona) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.personas[persona.ID]; !ok {
		return notFound("persona Update")
	}
	persona.Oficina = nil
	r.db.personas[persona.ID] = persona
	return nil
}

func (r *fakePersonaRepo) Delete(_ context.Context, _ pgx.Tx, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.personas[id]; !ok {
		return notFound("persona Delete")
	}
	delete(r.db.personas, id)
	for i, h := range r.db.history {
		if h.PersonaID != nil && *h.PersonaID == id {
			r.db.history[i].PersonaID = nil
		}
	}
	return nil
}

func (r *fakePersonaRepo) CountAssignedMaterials(_ context.Context, _ pgx.Tx, id uint64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(r.db.assignedTo(id)), nil
}

func (r *fakePersonaRepo) CountRegisteredHistory(_ context.Context, _ pgx.Tx, id uint64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, h := range r.db.history {
		if h.UsuarioRegistroID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakePersonaRepo) LastAssignmentDate(_ context.Context, id uint64) (*time.Time, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var last *time.Time
	for _, h := range r.db.history {
		if h.PersonaID != nil && *h.PersonaID == id && (last == nil || h.FechaAsignacion.After(*last)) {
			at := h.FechaAsignacion
			last = &at
		}
	}
	return last, nil
}

func (r *fakePersonaRepo) Stats(_ context.Context) (*repositories.PersonaStats, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stats := &repositories.PersonaStats{
		PorRol:       make(map[constants.RolUsuario]int64),
		PorJerarquia: make(map[constants.Jerarquia]int64),
		PorOficina:   make(map[int]int64),
	}
	for _, p := range r.db.personas {
		stats.Total++
		stats.PorRol[p.Rol]++
		stats.PorJerarquia[p.Jerarquia]++
		if p.OficinaID == nil {
			stats.SinOficina++
			continue
		}
		stats.PorOficina[r.db.offices[*p.OficinaID].Numero]++
	}
	return stats, nil
}

// --- Categories ---

type fakeCategoryRepo struct{ db *memDB }

func (r *fakeCategoryRepo) FindByID(_ context.Context, _ pgx.Tx, id uint64) (*entities.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, notFound("category FindByID")
	}
	return &c, nil
}

func (r *fakeCategoryRepo) Exists(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.categories[id]
	return ok, nil
}

func (r *fakeCategoryRepo) ExistsName(_ context.Context, _ pgx.Tx, nombre string, excludeID *uint64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.categories {
		if strings.EqualFold(c.Nombre, nombre) && !excluded(c.ID, excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) GetAll(_ context.Context, searchTerm string, page types.PageRequest) ([]repositories.CategoryListItem, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	term := strings.ToLower(searchTerm)
	var all []repositories.CategoryListItem
	for _, c := range r.db.categories {
		if term != "" && !strings.Contains(strings.ToLower(c.Nombre), term) {
			continue
		}
		n := 0
		for _, m := range r.db.materials {
			if m.CategoriaID == c.ID {
				n++
			}
		}
		all = append(all, repositories.CategoryListItem{Category: c, CantidadMateriales: n})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Nombre < all[j].Nombre })
	return paginate(all, page), int64(len(all)), nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, _ pgx.Tx, category entities.Category) (uint64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.categories {
		if strings.EqualFold(c.Nombre, category.Nombre) {
			return 0, violation("category Create", repositories.ConstraintCategoryNombre)
		}
	}
	category.ID = r.db.id()
	category.FechaCreacion = r.db.now
	r.db.categories[category.ID] = category
	return category.ID, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, _ pgx.Tx, category entities.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[category.ID]; !ok {
		return notFound("category Update")
	}
	r.db.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, _ pgx.Tx, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[id]; !ok {
		return notFound("category Delete")
	}
	delete(r.db.categories, id)
	return nil
}

func (r *fakeCategoryRepo) CountMateriales(_ context.Context, _ pgx.Tx, id uint64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, m := range r.db.materials {
		if m.CategoriaID == id {
			n++
		}
	}
	return n, nil
}

// --- Materials ---

type fakeMaterialRepo struct{ db *memDB }

func (r *fakeMaterialRepo) FindByID(_ context.Context, _ pgx.Tx, id uint64) (*entities.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.materials[id]
	if !ok {
		return nil, notFound("material FindByID")
	}
	m = r.db.joinMaterial(m)
	return &m, nil
}

func (r *fakeMaterialRepo) LockByID(ctx context.Context, _ pgx.Tx, id uint64) (*entities.Material, error) {
	return r.FindByID(ctx, nil, id)
}

func (r *fakeMaterialRepo) matching(filter repositories.MaterialFilter) []entities.Material {
	term := strings.ToLower(filter.SearchTerm)
	var all []entities.Material
	for _, m := range r.db.materials {
		if term != "" && !strings.Contains(strings.ToLower(m.Nombre), term) {
			continue
		}
		if filter.CategoriaID != nil && m.CategoriaID != *filter.CategoriaID {
			continue
		}
		if filter.OficinaID != nil && m.OficinaID != *filter.OficinaID {
			continue
		}
		if filter.PersonaID != nil && (m.PersonaAsignadaID == nil || *m.PersonaAsignadaID != *filter.PersonaID) {
			continue
		}
		if filter.Estado != nil && m.Estado != *filter.Estado {
			continue
		}
		all = append(all, r.db.joinMaterial(m))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (r *fakeMaterialRepo) GetAll(_ context.Context, filter repositories.MaterialFilter, page types.PageRequest) ([]entities.Material, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := r.matching(filter)
	return paginate(all, page), int64(len(all)), nil
}

func (r *fakeMaterialRepo) ListByOffice(_ context.Context, oficinaID uint64) ([]entities.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.matching(repositories.MaterialFilter{OficinaID: &oficinaID}), nil
}

func (r *fakeMaterialRepo) ListForExport(_ context.Context, filter repositories.MaterialFilter) ([]entities.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.matching(filter), nil
}

func (r *fakeMaterialRepo) Create(_ context.Context, _ pgx.Tx, material entities.Material) (uint64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	material.ID = r.db.id()
	material.FechaRegistroSistema = r.db.now
	r.db.materials[material.ID] = material
	return material.ID, nil
}

func (r *fakeMaterialRepo) Update(_ context.Context, _ pgx.Tx, material entities.Material) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.materials[material.ID]
	if !ok {
		return notFound("material Update")
	}
	material.PersonaAsignadaID = current.PersonaAsignadaID
	material.FechaAsignacion = current.FechaAsignacion
	r.db.materials[material.ID] = material
	return nil
}

func (r *fakeMaterialRepo) UpdateAssignment(_ context.Context, _ pgx.Tx, id uint64, personaID *uint64, fecha *time.Time, estado constants.EstadoMaterial) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.materials[id]
	if !ok {
		return notFound("material UpdateAssignment")
	}
	m.PersonaAsignadaID = personaID
	m.FechaAsignacion = fecha
	m.Estado = estado
	r.db.materials[id] = m
	return nil
}

func (r *fakeMaterialRepo) Delete(_ context.Context, _ pgx.Tx, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.materials[id]; !ok {
		return notFound("material Delete")
	}
	delete(r.db.materials, id)
	kept := r.db.history[:0]
	for _, h := range r.db.history {
		if h.MaterialID != id {
			kept = append(kept, h)
		}
	}
	r.db.history = kept
	return nil
}

// --- Assignment history ---

type fakeHistoryRepo struct{ db *memDB }

func (r *fakeHistoryRepo) Create(_ context.Context, _ pgx.Tx, row entities.AssignmentHistory) (uint64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if row.Open() {
		for _, h := range r.db.history {
			if h.MaterialID == row.MaterialID && h.Open() {
				return 0, violation("history Create", repositories.ConstraintHistoryOpen)
			}
		}
	}
	row.ID = r.db.id()
	row.FechaRegistro = r.db.now
	r.db.history = append(r.db.history, row)
	return row.ID, nil
}

func (r *fakeHistoryRepo) FindOpenByMaterial(_ context.Context, _ pgx.Tx, materialID uint64) (*entities.AssignmentHistory, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, h := range r.db.history {
		if h.MaterialID == materialID && h.Open() {
			return &h, nil
		}
	}
	return nil, notFound("history FindOpenByMaterial")
}

func (r *fakeHistoryRepo) Close(_ context.Context, _ pgx.Tx, id uint64, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, h := range r.db.history {
		if h.ID == id && h.Open() {
			closedAt := at
			r.db.history[i].FechaDesasignacion = &closedAt
			return nil
		}
	}
	return notFound("history Close")
}

func (r *fakeHistoryRepo) FindByMaterial(_ context.Context, materialID uint64) ([]repositories.HistoryEntry, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []repositories.HistoryEntry
	for _, h := range r.db.history {
		if h.MaterialID != materialID {
			continue
		}
		entry := repositories.HistoryEntry{AssignmentHistory: h}
		if h.PersonaID != nil {
			if p, ok := r.db.personas[*h.PersonaID]; ok {
				nombre, apellido := p.Nombre, p.Apellido
				entry.PersonaNombre, entry.PersonaApellido = &nombre, &apellido
			}
		}
		entry.OficinaNumero = r.db.offices[h.OficinaID].Numero
		if reg, ok := r.db.personas[h.UsuarioRegistroID]; ok {
			entry.UsuarioRegistroNombre = reg.NombreCompleto()
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].FechaAsignacion.Equal(out[j].FechaAsignacion) {
			return out[i].FechaAsignacion.Before(out[j].FechaAsignacion)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// openRows counts open history rows of a material.
func (db *memDB) openRows(materialID uint64) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, h := range db.history {
		if h.MaterialID == materialID && h.Open() {
			n++
		}
	}
	return n
}

// --- Events ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name())
	}
	return out
}

// --- Assertions ---

func requireHTTPCode(t *testing.T, err error, code int) *apperrors.HttpError {
	t.Helper()
	require.Error(t, err)
	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr), "expected *HttpError, got %T: %v", err, err)
	require.Equal(t, code, httpErr.Code, httpErr.Message)
	return httpErr
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	httpErr := requireHTTPCode(t, err, http.StatusBadRequest)
	details, ok := httpErr.Details.(map[string]string)
	require.True(t, ok)
	require.Contains(t, details, field)
}
