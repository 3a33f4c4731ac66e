package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TiposPermiso es el catálogo fijo de categorías de permiso.
var TiposPermiso = []string{
	"Vacaciones",
	"Permiso Médico",
	"Permiso Personal",
	"Licencia por Maternidad",
	"Licencia por Paternidad",
	"Permiso por Fallecimiento",
	"Permiso por Estudio",
	"Otro",
}

func EsTipoPermisoValido(tipo string) bool {
	for _, t := range TiposPermiso {
		if t == tipo {
			return true
		}
	}
	return false
}

// Solicitud es una solicitud de permiso o licencia de un empleado.
// Una vez creada queda pendiente; el coordinador de aprobación la muta
// exactamente una vez (is_pending=false + aproved). Nunca se elimina.
type Solicitud struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id,omitempty"`
	Username        string             `json:"username" bson:"username,omitempty"`
	Section         string             `json:"section" bson:"section,omitempty"`
	TipoPermiso     string             `json:"tipo_permiso" bson:"tipo_permiso,omitempty"`
	Motivo          string             `json:"motivo" bson:"motivo,omitempty"`
	FechaInicio     string             `json:"fecha_inicio" bson:"fecha_inicio,omitempty"`
	FechaFin        string             `json:"fecha_fin" bson:"fecha_fin,omitempty"`
	Documento       *string            `json:"documento" bson:"documento,omitempty"`
	DocumentoNombre *string            `json:"documento_nombre" bson:"documento_nombre,omitempty"`
	DiasHabiles     int                `json:"dias_habiles" bson:"dias_habiles,omitempty"`
	IsPending       bool               `json:"is_pending" bson:"is_pending"`
	Aproved         bool               `json:"aproved" bson:"aproved"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at,omitempty"`
}

// Estado devuelve el estado legible de la solicitud.
func (s *Solicitud) Estado() string {
	switch {
	case s.IsPending:
		return "pendiente"
	case s.Aproved:
		return "aprobada"
	default:
		return "rechazada"
	}
}

type SolicitudCreatePayload struct {
	TipoPermiso     string `json:"tipo_permiso" validate:"required,tipopermiso"`
	Motivo          string `json:"motivo"`
	FechaInicio     string `json:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin        string `json:"fecha_fin" validate:"omitempty,datetime=2006-01-02"`
	Documento       string `json:"documento"`
	DocumentoNombre string `json:"documento_nombre"`
}

type SolicitudRechazarPayload struct {
	Confirmar bool `json:"confirmar"`
}
