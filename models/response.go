package models

type LoginSuccessResponse struct {
	Message string `json:"message" example:"Login exitoso"`
	Token   string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	UserID  string `json:"user_id" example:"507f1f77bcf86cd799439011"`
	Role    string `json:"role" example:"empleado"`
	Section string `json:"section" example:"Tecnología"`
}

type SolicitudCreadaResponse struct {
	Message   string    `json:"message" example:"Tu solicitud ha sido enviada con éxito"`
	Solicitud Solicitud `json:"solicitud"`
}

type MisSolicitudesResponse struct {
	Solicitudes []Solicitud `json:"solicitudes"`
	Pendientes  int         `json:"pendientes" example:"2"`
	Aprobados   int         `json:"aprobados" example:"5"`
}

type SolicitudesPendientesResponse struct {
	Solicitudes []Solicitud `json:"solicitudes"`
	Total       int         `json:"total" example:"3"`
}

type AdjuntoSubidoResponse struct {
	Message  string `json:"message" example:"Archivo subido correctamente"`
	URL      string `json:"url" example:"/uploads/solicitudes/9f3a....pdf"`
	FileName string `json:"file_name" example:"certificado.pdf"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Payload inválido"`
	Details string `json:"details,omitempty"`
}

type ValidationErrorResponse struct {
	Error string `json:"error" example:"Validación fallida"`
	Field string `json:"field" example:"motivo"`
}
