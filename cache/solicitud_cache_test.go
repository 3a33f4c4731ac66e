package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Gestion-Solicitudes/models"
)

// fakeFeed entrega snapshots a mano, como lo haría el change stream.
type fakeFeed struct {
	onChange func([]models.Solicitud)
	canceled bool
}

func (f *fakeFeed) SubscribeBySection(ctx context.Context, section string, onChange func([]models.Solicitud)) (func(), error) {
	f.onChange = onChange
	return func() { f.canceled = true }, nil
}

func (f *fakeFeed) SubscribeByUserID(ctx context.Context, userID primitive.ObjectID, onChange func([]models.Solicitud)) (func(), error) {
	f.onChange = onChange
	return func() { f.canceled = true }, nil
}

func solicitud(section string, pending, aproved bool) models.Solicitud {
	return models.Solicitud{
		ID:          primitive.NewObjectID(),
		Username:    "Ana Pérez",
		Section:     section,
		TipoPermiso: "Vacaciones",
		IsPending:   pending,
		Aproved:     aproved,
		CreatedAt:   time.Now(),
	}
}

func suscrita(t *testing.T) (*SolicitudCache, *fakeFeed, *Subscription) {
	t.Helper()
	feed := &fakeFeed{}
	c := NewSolicitudCache(feed)
	sub, err := c.Subscribe(context.Background(), Scope{Section: "Ventas"})
	require.NoError(t, err)
	return c, feed, sub
}

func TestSubscribeScopeVacio(t *testing.T) {
	c := NewSolicitudCache(&fakeFeed{})
	_, err := c.Subscribe(context.Background(), Scope{})
	require.ErrorIs(t, err, ErrScopeVacio)
}

func TestSnapshotConservaElOrdenDelFeed(t *testing.T) {
	c, feed, _ := suscrita(t)

	a := solicitud("Ventas", true, false)
	b := solicitud("Ventas", false, true)
	feed.onChange([]models.Solicitud{a, b})

	all := c.All()
	require.Len(t, all, 2)
	require.Equal(t, a.ID, all[0].ID)
	require.Equal(t, b.ID, all[1].ID)
}

// Ids duplicados dentro de un snapshot: gana la última aparición, la posición
// es la de la primera.
func TestDedupPorIDLastWriteWins(t *testing.T) {
	c, feed, _ := suscrita(t)

	a := solicitud("Ventas", true, false)
	b := solicitud("Ventas", true, false)
	aActualizada := a
	aActualizada.IsPending = false
	aActualizada.Aproved = true

	feed.onChange([]models.Solicitud{a, b, aActualizada})

	require.Equal(t, 2, c.Len())
	all := c.All()
	require.Equal(t, a.ID, all[0].ID)
	require.False(t, all[0].IsPending)
	require.True(t, all[0].Aproved)
}

func TestConteosDerivados(t *testing.T) {
	c, feed, _ := suscrita(t)

	feed.onChange([]models.Solicitud{
		solicitud("Ventas", true, false),
		solicitud("Ventas", true, false),
		solicitud("Ventas", false, true),
		solicitud("Ventas", false, false),
	})

	require.Equal(t, 2, c.PendingCount())
	require.Equal(t, 2, c.ApprovedCount())
}

func TestPendingForSection(t *testing.T) {
	c, feed, _ := suscrita(t)

	ventas := solicitud("Ventas", true, false)
	otra := solicitud("Logística", true, false)
	resuelta := solicitud("Ventas", false, true)
	feed.onChange([]models.Solicitud{ventas, otra, resuelta})

	pendientes := c.PendingForSection("Ventas")
	require.Len(t, pendientes, 1)
	require.Equal(t, ventas.ID, pendientes[0].ID)
}

// Una solicitud que deja de estar pendiente desaparece de la vista de
// pendientes con el siguiente snapshot, sin mutación optimista.
func TestAprobadaSaleDePendientes(t *testing.T) {
	c, feed, _ := suscrita(t)

	s := solicitud("Ventas", true, false)
	feed.onChange([]models.Solicitud{s})
	require.Len(t, c.PendingForSection("Ventas"), 1)

	s.IsPending = false
	s.Aproved = true
	feed.onChange([]models.Solicitud{s})
	require.Empty(t, c.PendingForSection("Ventas"))
	require.Equal(t, 1, c.Len())
}

func TestCancelDetieneLasMutaciones(t *testing.T) {
	c, feed, sub := suscrita(t)

	feed.onChange([]models.Solicitud{solicitud("Ventas", true, false)})
	require.Equal(t, 1, c.Len())

	sub.Cancel()
	require.True(t, feed.canceled)

	// un snapshot tardío ya no toca la colección
	feed.onChange([]models.Solicitud{})
	require.Equal(t, 1, c.Len())
}

func TestCancelEsIdempotente(t *testing.T) {
	_, _, sub := suscrita(t)

	sub.Cancel()
	require.NotPanics(t, func() {
		sub.Cancel()
		sub.Cancel()
	})
}

func TestOnUpdateCorreTrasCadaSnapshot(t *testing.T) {
	c, feed, _ := suscrita(t)

	llamadas := 0
	c.OnUpdate(func() { llamadas++ })

	feed.onChange([]models.Solicitud{solicitud("Ventas", true, false)})
	feed.onChange([]models.Solicitud{})

	require.Equal(t, 2, llamadas)
}

func TestLookup(t *testing.T) {
	c, feed, _ := suscrita(t)

	s := solicitud("Ventas", true, false)
	feed.onChange([]models.Solicitud{s})

	got, ok := c.Lookup(s.ID.Hex())
	require.True(t, ok)
	require.Equal(t, s.ID, got.ID)

	_, ok = c.Lookup(primitive.NewObjectID().Hex())
	require.False(t, ok)
}
