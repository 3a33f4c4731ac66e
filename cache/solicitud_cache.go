// Package cache mantiene la colección en vivo de solicitudes que refleja el
// almacén. Es una réplica de lectura alimentada por suscripción, no la fuente
// de verdad: el estado de aprobación autoritativo vive en el backend.
package cache

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Gestion-Solicitudes/models"
)

var ErrScopeVacio = errors.New("el alcance de la suscripción debe indicar sección o usuario")

// Scope delimita el feed: todas las solicitudes de una sección (vista admin)
// o todas las del usuario actual (vista empleado). Exactamente uno aplica.
type Scope struct {
	Section string
	UserID  primitive.ObjectID
}

// Feed es la porción del adaptador del almacén que la caché consume.
type Feed interface {
	SubscribeBySection(ctx context.Context, section string, onChange func([]models.Solicitud)) (func(), error)
	SubscribeByUserID(ctx context.Context, userID primitive.ObjectID, onChange func([]models.Solicitud)) (func(), error)
}

// SolicitudCache conserva las solicitudes en el orden entregado por el feed,
// deduplicadas por id con last-write-wins. Las vistas derivadas (conteos,
// filtros) son funciones puras sobre el contenido.
type SolicitudCache struct {
	feed Feed

	mu        sync.RWMutex
	order     []string
	byID      map[string]models.Solicitud
	closed    bool
	listeners []func()
}

func NewSolicitudCache(feed Feed) *SolicitudCache {
	return &SolicitudCache{
		feed: feed,
		byID: make(map[string]models.Solicitud),
	}
}

// Subscription es el handle de cancelación de un feed en vivo.
type Subscription struct {
	cache  *SolicitudCache
	cancel func()
	once   sync.Once
}

// Cancel detiene el feed. Al retornar no ocurren más mutaciones sobre la
// caché. Es idempotente.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.cache.mu.Lock()
		s.cache.closed = true
		s.cache.mu.Unlock()
		s.cancel()
	})
}

// Subscribe establece el feed continuo para el alcance dado. Cada cambio del
// backend que cumple el filtro actualiza la colección y dispara los listeners
// registrados con OnUpdate.
func (c *SolicitudCache) Subscribe(ctx context.Context, scope Scope) (*Subscription, error) {
	c.mu.Lock()
	c.closed = false
	c.mu.Unlock()

	var cancel func()
	var err error
	switch {
	case scope.Section != "":
		cancel, err = c.feed.SubscribeBySection(ctx, scope.Section, c.apply)
	case scope.UserID != primitive.NilObjectID:
		cancel, err = c.feed.SubscribeByUserID(ctx, scope.UserID, c.apply)
	default:
		return nil, ErrScopeVacio
	}
	if err != nil {
		return nil, err
	}
	return &Subscription{cache: c, cancel: cancel}, nil
}

// apply reemplaza el contenido con el snapshot recibido del feed, en orden de
// llegada y con last-write-wins por id. Los snapshots se aplican en el orden
// en que el backend los entrega; no se reordena ni se coalescen.
func (c *SolicitudCache) apply(snapshot []models.Solicitud) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	order := make([]string, 0, len(snapshot))
	byID := make(map[string]models.Solicitud, len(snapshot))
	for _, s := range snapshot {
		id := s.ID.Hex()
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = s
	}
	c.order = order
	c.byID = byID

	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnUpdate registra un listener que corre tras cada snapshot aplicado, para
// que las vistas dependientes se recalculen.
func (c *SolicitudCache) OnUpdate(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// All devuelve las solicitudes en el orden del feed.
func (c *SolicitudCache) All() []models.Solicitud {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Solicitud, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *SolicitudCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *SolicitudCache) PendingCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, s := range c.byID {
		if s.IsPending {
			n++
		}
	}
	return n
}

func (c *SolicitudCache) ApprovedCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, s := range c.byID {
		if !s.IsPending {
			n++
		}
	}
	return n
}

// PendingForSection devuelve, en orden del feed, las solicitudes pendientes
// de la sección dada.
func (c *SolicitudCache) PendingForSection(section string) []models.Solicitud {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Solicitud
	for _, id := range c.order {
		s := c.byID[id]
		if s.IsPending && s.Section == section {
			out = append(out, s)
		}
	}
	return out
}

// Lookup devuelve la copia cacheada de la solicitud, si está en el alcance.
func (c *SolicitudCache) Lookup(id string) (models.Solicitud, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byID[id]
	return s, ok
}
