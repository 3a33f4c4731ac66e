package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Gestion-Solicitudes/models"
)

type fakeStore struct {
	mu        sync.Mutex
	byID      map[string]*models.Solicitud
	updates   []bson.M
	findErr   error
	updateErr error

	// si no es nil, UpdateByID espera a que el canal se cierre
	blockUpdate chan struct{}
}

func newFakeStore(solicitudes ...*models.Solicitud) *fakeStore {
	f := &fakeStore{byID: make(map[string]*models.Solicitud)}
	for _, s := range solicitudes {
		f.byID[s.ID.Hex()] = s
	}
	return f
}

func (f *fakeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Solicitud, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.byID[id.Hex()]
	if !ok {
		return nil, nil
	}
	copia := *s
	return &copia, nil
}

func (f *fakeStore) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error) {
	if f.blockUpdate != nil {
		<-f.blockUpdate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates = append(f.updates, fields)
	if s, ok := f.byID[id.Hex()]; ok {
		s.IsPending = fields["is_pending"].(bool)
		s.Aproved = fields["aproved"].(bool)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeStore) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

type fakeLookup struct {
	byID map[string]models.Solicitud
}

func (f *fakeLookup) Lookup(id string) (models.Solicitud, bool) {
	s, ok := f.byID[id]
	return s, ok
}

func pendiente() *models.Solicitud {
	return &models.Solicitud{
		ID:          primitive.NewObjectID(),
		Username:    "Carlos López",
		Section:     "Ventas",
		TipoPermiso: "Permiso Médico",
		IsPending:   true,
	}
}

func TestApproveEscribeValoresAbsolutos(t *testing.T) {
	s := pendiente()
	store := newFakeStore(s)
	coord := New(store, nil)

	err := coord.Approve(context.Background(), s.ID)

	require.NoError(t, err)
	require.Len(t, store.updates, 1)
	require.Equal(t, bson.M{"is_pending": false, "aproved": true}, store.updates[0])
}

func TestRejectEscribeValoresAbsolutos(t *testing.T) {
	s := pendiente()
	store := newFakeStore(s)
	coord := New(store, nil)

	err := coord.Reject(context.Background(), s.ID, func() bool { return true })

	require.NoError(t, err)
	require.Len(t, store.updates, 1)
	require.Equal(t, bson.M{"is_pending": false, "aproved": false}, store.updates[0])
}

func TestRejectSinConfirmacionNoEscribe(t *testing.T) {
	s := pendiente()
	store := newFakeStore(s)
	coord := New(store, nil)

	err := coord.Reject(context.Background(), s.ID, func() bool { return false })
	require.ErrorIs(t, err, ErrNoConfirmado)

	err = coord.Reject(context.Background(), s.ID, nil)
	require.ErrorIs(t, err, ErrNoConfirmado)

	require.Empty(t, store.updates)
	require.False(t, coord.EnProceso(s.ID))
}

// Una segunda decisión sobre el mismo id mientras la primera sigue en vuelo
// se rechaza en la admisión, sin encolar.
func TestDecisionConcurrenteSobreElMismoID(t *testing.T) {
	s := pendiente()
	store := newFakeStore(s)
	store.blockUpdate = make(chan struct{})
	coord := New(store, nil)

	primero := make(chan error, 1)
	go func() {
		primero <- coord.Approve(context.Background(), s.ID)
	}()

	// espera a que la primera decisión quede en vuelo
	for !coord.EnProceso(s.ID) {
		time.Sleep(time.Millisecond)
	}

	err := coord.Approve(context.Background(), s.ID)
	require.ErrorIs(t, err, ErrEnProceso)

	close(store.blockUpdate)
	require.NoError(t, <-primero)
	require.Equal(t, 1, store.updateCount())
	require.False(t, coord.EnProceso(s.ID))
}

// Ids distintos no se bloquean entre sí.
func TestDecisionesSobreIDsDistintos(t *testing.T) {
	s1 := pendiente()
	s2 := pendiente()
	store := newFakeStore(s1, s2)
	store.blockUpdate = make(chan struct{})
	coord := New(store, nil)

	primero := make(chan error, 1)
	go func() {
		primero <- coord.Approve(context.Background(), s1.ID)
	}()
	for !coord.EnProceso(s1.ID) {
		time.Sleep(time.Millisecond)
	}

	require.False(t, coord.EnProceso(s2.ID))

	close(store.blockUpdate)
	require.NoError(t, <-primero)
	require.NoError(t, coord.Approve(context.Background(), s2.ID))
}

func TestApproveNoEncontrada(t *testing.T) {
	store := newFakeStore()
	coord := New(store, nil)

	err := coord.Approve(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrNoEncontrada)
}

func TestApproveYaResuelta(t *testing.T) {
	s := pendiente()
	s.IsPending = false
	s.Aproved = true
	store := newFakeStore(s)
	coord := New(store, nil)

	err := coord.Approve(context.Background(), s.ID)
	require.ErrorIs(t, err, ErrNoPendiente)
	require.Empty(t, store.updates)
}

// La copia cacheada resuelve el caso "ya no pendiente" sin tocar el almacén.
func TestLookupEnCacheEvitaLeerElAlmacen(t *testing.T) {
	s := pendiente()
	store := newFakeStore(s)
	store.findErr = errors.New("no debería leerse el almacén")

	cached := *s
	cached.IsPending = false
	lookup := &fakeLookup{byID: map[string]models.Solicitud{s.ID.Hex(): cached}}

	coord := New(store, lookup)

	err := coord.Approve(context.Background(), s.ID)
	require.ErrorIs(t, err, ErrNoPendiente)
	require.Empty(t, store.updates)
}

// Tras un write fallido el marcador se libera y el caller puede reintentar.
func TestMarcadorSeLiberaTrasFallo(t *testing.T) {
	s := pendiente()
	store := newFakeStore(s)
	store.updateErr = errors.New("conexión perdida")
	coord := New(store, nil)

	err := coord.Approve(context.Background(), s.ID)
	require.Error(t, err)
	require.False(t, coord.EnProceso(s.ID))

	store.mu.Lock()
	store.updateErr = nil
	store.mu.Unlock()

	require.NoError(t, coord.Approve(context.Background(), s.ID))
}
