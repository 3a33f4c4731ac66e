package cache

import (
	"context"
	"sync"

	"Gestion-Solicitudes/models"
)

// Manager mantiene una caché viva por sección, creada de forma perezosa la
// primera vez que un admin de esa sección la necesita. Se construye una sola
// vez por proceso y su handle se pasa a quien dependa de él.
type Manager struct {
	feed Feed

	mu     sync.Mutex
	caches map[string]*SolicitudCache
	subs   map[string]*Subscription
}

func NewManager(feed Feed) *Manager {
	return &Manager{
		feed:   feed,
		caches: make(map[string]*SolicitudCache),
		subs:   make(map[string]*Subscription),
	}
}

// ForSection devuelve la caché viva de la sección, suscribiéndola si aún no
// existe.
func (m *Manager) ForSection(ctx context.Context, section string) (*SolicitudCache, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.caches[section]; ok {
		return c, nil
	}

	c := NewSolicitudCache(m.feed)
	sub, err := c.Subscribe(ctx, Scope{Section: section})
	if err != nil {
		return nil, err
	}
	m.caches[section] = c
	m.subs[section] = sub
	return c, nil
}

// Lookup busca la solicitud en todas las cachés vivas. Implementa la vista
// local que el coordinador consulta antes de tocar el almacén.
func (m *Manager) Lookup(id string) (models.Solicitud, bool) {
	m.mu.Lock()
	caches := make([]*SolicitudCache, 0, len(m.caches))
	for _, c := range m.caches {
		caches = append(caches, c)
	}
	m.mu.Unlock()

	for _, c := range caches {
		if s, ok := c.Lookup(id); ok {
			return s, true
		}
	}
	return models.Solicitud{}, false
}

// Close cancela todas las suscripciones vivas.
func (m *Manager) Close() {
	m.mu.Lock()
	subs := m.subs
	m.subs = make(map[string]*Subscription)
	m.caches = make(map[string]*SolicitudCache)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}
