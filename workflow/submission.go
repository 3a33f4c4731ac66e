// Package workflow valida y crea solicitudes nuevas, con adjunto opcional.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Gestion-Solicitudes/models"
	util "Gestion-Solicitudes/pkg/utils"
)

const fechaLayout = "2006-01-02"

// ValidationError señala la primera precondición violada, por campo. Nunca se
// escribe al almacén cuando la validación falla.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// UploadResult es el resultado terminal del colaborador de subida de
// archivos: sólo existe cuando la transferencia llegó a "uploaded" con URL
// resuelta.
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

// Identity es el contexto de identidad del emisor; la solicitud hereda su
// sección al crearse y no cambia después.
type Identity struct {
	UserID   primitive.ObjectID
	Username string
	Section  string
}

type SubmitInput struct {
	TipoPermiso string
	Motivo      string
	FechaInicio string
	FechaFin    string
	Adjunto     *UploadResult
}

// Store es la porción del adaptador del almacén que el workflow usa.
type Store interface {
	Create(ctx context.Context, solicitud *models.Solicitud) (*mongo.InsertOneResult, error)
}

type SubmissionWorkflow struct {
	store Store
}

func New(store Store) *SubmissionWorkflow {
	return &SubmissionWorkflow{store: store}
}

// Submit valida la entrada en orden fijo (fechas faltantes, orden del rango,
// motivo vacío) y crea la solicitud pendiente. Un fallo del create se
// devuelve tal cual, sin reintentos, para que el caller conserve su estado y
// pueda reenviar.
func (w *SubmissionWorkflow) Submit(ctx context.Context, who Identity, in SubmitInput) (*models.Solicitud, error) {
	if in.FechaInicio == "" || in.FechaFin == "" {
		return nil, &ValidationError{Field: "fechas", Msg: "selecciona las fechas de inicio y fin"}
	}

	inicio, err := time.Parse(fechaLayout, in.FechaInicio)
	if err != nil {
		return nil, &ValidationError{Field: "fecha_inicio", Msg: "formato de fecha inválido"}
	}
	fin, err := time.Parse(fechaLayout, in.FechaFin)
	if err != nil {
		return nil, &ValidationError{Field: "fecha_fin", Msg: "formato de fecha inválido"}
	}
	if inicio.After(fin) {
		return nil, &ValidationError{Field: "rango_fechas", Msg: "la fecha de inicio no puede ser mayor a la fecha de fin"}
	}

	if strings.TrimSpace(in.Motivo) == "" {
		return nil, &ValidationError{Field: "motivo", Msg: "describe el motivo de tu solicitud"}
	}

	if !models.EsTipoPermisoValido(in.TipoPermiso) {
		return nil, &ValidationError{Field: "tipo_permiso", Msg: "tipo de permiso desconocido"}
	}

	// un adjunto sin URL resuelta significa que la subida no terminó;
	// nunca se incluye en silencio
	if in.Adjunto != nil && in.Adjunto.URL == "" {
		return nil, &ValidationError{Field: "documento", Msg: "el documento aún no termina de subirse"}
	}

	dias, err := util.DiasHabiles(inicio, fin)
	if err != nil {
		return nil, &ValidationError{Field: "rango_fechas", Msg: "no se pudo calcular los días hábiles"}
	}

	solicitud := &models.Solicitud{
		UserID:      who.UserID,
		Username:    who.Username,
		Section:     who.Section,
		TipoPermiso: in.TipoPermiso,
		Motivo:      in.Motivo,
		FechaInicio: in.FechaInicio,
		FechaFin:    in.FechaFin,
		DiasHabiles: dias,
		IsPending:   true,
	}
	if in.Adjunto != nil {
		solicitud.Documento = &in.Adjunto.URL
		solicitud.DocumentoNombre = &in.Adjunto.FileName
	}

	if _, err := w.store.Create(ctx, solicitud); err != nil {
		return nil, err
	}
	return solicitud, nil
}
