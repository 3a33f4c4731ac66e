package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Gestion-Solicitudes/models"
)

type fakeStore struct {
	created []*models.Solicitud
	err     error
}

func (f *fakeStore) Create(ctx context.Context, s *models.Solicitud) (*mongo.InsertOneResult, error) {
	if f.err != nil {
		f.created = append(f.created, s)
		return nil, f.err
	}
	f.created = append(f.created, s)
	return &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}, nil
}

func identidad() Identity {
	return Identity{
		UserID:   primitive.NewObjectID(),
		Username: "María García",
		Section:  "Tecnología",
	}
}

func entradaValida() SubmitInput {
	return SubmitInput{
		TipoPermiso: "Vacaciones",
		Motivo:      "Viaje familiar",
		FechaInicio: "2024-05-06",
		FechaFin:    "2024-05-10",
	}
}

func TestSubmitFechasFaltantes(t *testing.T) {
	store := &fakeStore{}
	w := New(store)

	in := entradaValida()
	in.FechaInicio = ""

	_, err := w.Submit(context.Background(), identidad(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "fechas", verr.Field)
	require.Empty(t, store.created)
}

func TestSubmitRangoInvertido(t *testing.T) {
	store := &fakeStore{}
	w := New(store)

	in := entradaValida()
	in.FechaInicio = "2024-05-10"
	in.FechaFin = "2024-05-06"

	_, err := w.Submit(context.Background(), identidad(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "rango_fechas", verr.Field)
	require.Empty(t, store.created)
}

func TestSubmitMotivoSoloEspacios(t *testing.T) {
	store := &fakeStore{}
	w := New(store)

	in := entradaValida()
	in.Motivo = "   \t  "

	_, err := w.Submit(context.Background(), identidad(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "motivo", verr.Field)
	require.Empty(t, store.created)
}

// El orden de validación es fijo: ante fechas ausentes y motivo vacío a la
// vez, gana el error de fechas.
func TestSubmitOrdenDeValidacion(t *testing.T) {
	store := &fakeStore{}
	w := New(store)

	in := SubmitInput{TipoPermiso: "Vacaciones"}

	_, err := w.Submit(context.Background(), identidad(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "fechas", verr.Field)
}

func TestSubmitTipoPermisoDesconocido(t *testing.T) {
	store := &fakeStore{}
	w := New(store)

	in := entradaValida()
	in.TipoPermiso = "Sabático"

	_, err := w.Submit(context.Background(), identidad(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "tipo_permiso", verr.Field)
	require.Empty(t, store.created)
}

func TestSubmitAdjuntoSinURL(t *testing.T) {
	store := &fakeStore{}
	w := New(store)

	in := entradaValida()
	in.Adjunto = &UploadResult{FileName: "certificado.pdf"}

	_, err := w.Submit(context.Background(), identidad(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "documento", verr.Field)
	require.Empty(t, store.created)
}

func TestSubmitCreaPendienteSinAdjunto(t *testing.T) {
	store := &fakeStore{}
	w := New(store)
	who := identidad()

	s, err := w.Submit(context.Background(), who, entradaValida())

	require.NoError(t, err)
	require.Len(t, store.created, 1)
	require.True(t, s.IsPending)
	require.False(t, s.Aproved)
	require.Equal(t, who.UserID, s.UserID)
	require.Equal(t, who.Section, s.Section)
	require.Equal(t, 5, s.DiasHabiles)
	require.Nil(t, s.Documento)
	require.Nil(t, s.DocumentoNombre)
}

func TestSubmitConAdjunto(t *testing.T) {
	store := &fakeStore{}
	w := New(store)

	in := entradaValida()
	in.Adjunto = &UploadResult{
		URL:      "/uploads/solicitudes/abc.pdf",
		FileName: "certificado.pdf",
	}

	s, err := w.Submit(context.Background(), identidad(), in)

	require.NoError(t, err)
	require.NotNil(t, s.Documento)
	require.Equal(t, "/uploads/solicitudes/abc.pdf", *s.Documento)
	require.NotNil(t, s.DocumentoNombre)
	require.Equal(t, "certificado.pdf", *s.DocumentoNombre)
}

// Un fallo del almacén se devuelve tal cual y no se reintenta.
func TestSubmitErrorDelAlmacenSinReintentos(t *testing.T) {
	storeErr := errors.New("write concern timeout")
	store := &fakeStore{err: storeErr}
	w := New(store)

	s, err := w.Submit(context.Background(), identidad(), entradaValida())

	require.Nil(t, s)
	require.ErrorIs(t, err, storeErr)
	require.Len(t, store.created, 1)
}
