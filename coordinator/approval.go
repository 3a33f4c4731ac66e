// Package coordinator serializa las decisiones de aprobación: a lo sumo una
// decisión en vuelo por id de solicitud.
package coordinator

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Gestion-Solicitudes/models"
)

var (
	// ErrEnProceso: el id ya tiene una decisión en vuelo. Se rechaza la
	// admisión en lugar de encolar, para que un doble click no genere
	// writes duplicados.
	ErrEnProceso    = errors.New("la solicitud ya está siendo procesada")
	ErrNoPendiente  = errors.New("la solicitud ya no está pendiente")
	ErrNoConfirmado = errors.New("el rechazo no fue confirmado")
	ErrNoEncontrada = errors.New("solicitud no encontrada")
)

// Store es la porción del adaptador del almacén que el coordinador usa.
type Store interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Solicitud, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error)
}

// Lookup es la vista local (caché) consultada antes de leer el almacén.
type Lookup interface {
	Lookup(id string) (models.Solicitud, bool)
}

// ApprovalCoordinator transiciona una solicitud de pendiente a su decisión
// terminal. No muta la caché: el feed en vivo refleja el cambio cuando el
// backend lo devuelve, así un write fallido no deja estado divergente.
type ApprovalCoordinator struct {
	store Store
	cache Lookup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func New(store Store, cache Lookup) *ApprovalCoordinator {
	return &ApprovalCoordinator{
		store:    store,
		cache:    cache,
		inFlight: make(map[string]struct{}),
	}
}

// Approve marca la solicitud como aprobada: is_pending=false, aproved=true.
func (a *ApprovalCoordinator) Approve(ctx context.Context, id primitive.ObjectID) error {
	return a.decide(ctx, id, true)
}

// Reject exige confirmación explícita antes de emitir el write; sin ella
// aborta sin tocar estado alguno.
func (a *ApprovalCoordinator) Reject(ctx context.Context, id primitive.ObjectID, confirm func() bool) error {
	if confirm == nil || !confirm() {
		return ErrNoConfirmado
	}
	return a.decide(ctx, id, false)
}

// EnProceso informa si el id tiene una decisión en vuelo; las vistas lo usan
// para deshabilitar la acción.
func (a *ApprovalCoordinator) EnProceso(id primitive.ObjectID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.inFlight[id.Hex()]
	return ok
}

func (a *ApprovalCoordinator) decide(ctx context.Context, id primitive.ObjectID, aproved bool) error {
	key := id.Hex()
	if !a.begin(key) {
		return ErrEnProceso
	}
	// el marcador cubre todo el write, incluidos los caminos de error
	defer a.end(key)

	if a.cache != nil {
		if cached, ok := a.cache.Lookup(key); ok && !cached.IsPending {
			return ErrNoPendiente
		}
	}

	solicitud, err := a.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if solicitud == nil {
		return ErrNoEncontrada
	}
	if !solicitud.IsPending {
		return ErrNoPendiente
	}

	// valores absolutos: un write repetido es idempotente en el almacén
	_, err = a.store.UpdateByID(ctx, id, bson.M{
		"is_pending": false,
		"aproved":    aproved,
	})
	return err
}

func (a *ApprovalCoordinator) begin(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.inFlight[key]; ok {
		return false
	}
	a.inFlight[key] = struct{}{}
	return true
}

func (a *ApprovalCoordinator) end(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.inFlight, key)
}
