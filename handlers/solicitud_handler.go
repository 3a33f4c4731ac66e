package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Gestion-Solicitudes/cache"
	"Gestion-Solicitudes/coordinator"
	"Gestion-Solicitudes/models"
	util "Gestion-Solicitudes/pkg/utils"
	"Gestion-Solicitudes/repository"
	"Gestion-Solicitudes/workflow"
)

const statsCacheTTL = 30 * time.Second

type SolicitudHandler struct {
	solicitudRepo repository.SolicitudRepository
	caches        *cache.Manager
	coord         *coordinator.ApprovalCoordinator
	submission    *workflow.SubmissionWorkflow
	redisClient   *redis.Client
}

func NewSolicitudHandler(
	solicitudRepo repository.SolicitudRepository,
	caches *cache.Manager,
	coord *coordinator.ApprovalCoordinator,
	submission *workflow.SubmissionWorkflow,
	redisClient *redis.Client,
) *SolicitudHandler {
	return &SolicitudHandler{
		solicitudRepo: solicitudRepo,
		caches:        caches,
		coord:         coord,
		submission:    submission,
		redisClient:   redisClient,
	}
}

// CrearSolicitud godoc
// @Summary Crear Solicitud
// @Description Valida y crea una solicitud de permiso; el adjunto es opcional y debe haber terminado de subirse
// @Tags Solicitudes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param solicitud body models.SolicitudCreatePayload true "Datos de la solicitud"
// @Success 201 {object} models.SolicitudCreadaResponse "Solicitud creada"
// @Failure 400 {object} models.ValidationErrorResponse "Precondición violada"
// @Failure 500 {object} models.ErrorResponse "Fallo al escribir en el almacén"
// @Router /solicitudes [post]
func (h *SolicitudHandler) CrearSolicitud(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autenticado o sesión corrupta"})
	}

	var payload models.SolicitudCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload inválido"})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	input := workflow.SubmitInput{
		TipoPermiso: payload.TipoPermiso,
		Motivo:      payload.Motivo,
		FechaInicio: payload.FechaInicio,
		FechaFin:    payload.FechaFin,
	}
	if payload.Documento != "" || payload.DocumentoNombre != "" {
		input.Adjunto = &workflow.UploadResult{
			URL:      payload.Documento,
			FileName: payload.DocumentoNombre,
		}
	}

	who := workflow.Identity{
		UserID:   claims.UserID,
		Username: claims.Name,
		Section:  claims.Section,
	}

	solicitud, err := h.submission.Submit(c.Context(), who, input)
	if err != nil {
		var vErr *workflow.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Msg, "field": vErr.Field})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Hubo un error al enviar tu solicitud. Intenta nuevamente."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Tu solicitud ha sido enviada con éxito",
		"solicitud": solicitud,
	})
}

// MisSolicitudes godoc
// @Summary Mis Solicitudes
// @Description Historial de solicitudes del usuario autenticado, con conteos de pendientes y aprobados
// @Tags Solicitudes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MisSolicitudesResponse "Historial"
// @Router /solicitudes/mias [get]
func (h *SolicitudHandler) MisSolicitudes(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autenticado o sesión corrupta"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	solicitudes, err := h.solicitudRepo.FindByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudieron cargar tus solicitudes"})
	}

	pendientes := 0
	aprobados := 0
	for _, s := range solicitudes {
		if s.IsPending {
			pendientes++
		} else {
			aprobados++
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"solicitudes": solicitudes,
		"pendientes":  pendientes,
		"aprobados":   aprobados,
	})
}

// SolicitudesPendientes godoc
// @Summary Solicitudes Pendientes
// @Description Solicitudes pendientes de la sección del admin, servidas desde la caché en vivo
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SolicitudesPendientesResponse "Pendientes de la sección"
// @Router /admin/solicitudes/pendientes [get]
func (h *SolicitudHandler) SolicitudesPendientes(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autenticado o sesión corrupta"})
	}

	sectionCache, err := h.caches.ForSection(context.Background(), claims.Section)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "No se pudo establecer el feed de la sección. Intenta nuevamente."})
	}

	pendientes := sectionCache.PendingForSection(claims.Section)
	if pendientes == nil {
		pendientes = []models.Solicitud{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"solicitudes": pendientes,
		"total":       len(pendientes),
	})
}

// Aprobar godoc
// @Summary Aprobar Solicitud
// @Description Aprueba una solicitud pendiente de la sección del admin; una decisión en vuelo por id
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la solicitud"
// @Success 200 {object} object{message=string} "Solicitud aprobada"
// @Failure 404 {object} models.ErrorResponse "Solicitud no encontrada"
// @Failure 409 {object} models.ErrorResponse "Ya en proceso o ya resuelta"
// @Failure 500 {object} models.ErrorResponse "Fallo al escribir en el almacén"
// @Router /admin/solicitudes/{id}/aprobar [put]
func (h *SolicitudHandler) Aprobar(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de solicitud inválido"})
	}

	if err := h.coord.Approve(c.Context(), id); err != nil {
		return h.decisionError(c, err, "aprobar")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "La solicitud ha sido aprobada exitosamente"})
}

// Rechazar godoc
// @Summary Rechazar Solicitud
// @Description Rechaza una solicitud pendiente; requiere confirmación explícita en el body
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la solicitud"
// @Param confirmacion body models.SolicitudRechazarPayload true "Confirmación del rechazo"
// @Success 200 {object} object{message=string} "Solicitud rechazada"
// @Failure 400 {object} models.ErrorResponse "Rechazo no confirmado"
// @Failure 409 {object} models.ErrorResponse "Ya en proceso o ya resuelta"
// @Router /admin/solicitudes/{id}/rechazar [put]
func (h *SolicitudHandler) Rechazar(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de solicitud inválido"})
	}

	var payload models.SolicitudRechazarPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload inválido"})
	}

	err = h.coord.Reject(c.Context(), id, func() bool { return payload.Confirmar })
	if err != nil {
		if errors.Is(err, coordinator.ErrNoConfirmado) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El rechazo requiere confirmación explícita"})
		}
		return h.decisionError(c, err, "rechazar")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "La solicitud ha sido rechazada"})
}

func (h *SolicitudHandler) decisionError(c *fiber.Ctx, err error, accion string) error {
	switch {
	case errors.Is(err, coordinator.ErrEnProceso):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "La solicitud ya está siendo procesada"})
	case errors.Is(err, coordinator.ErrNoPendiente):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "La solicitud ya no está pendiente"})
	case errors.Is(err, coordinator.ErrNoEncontrada):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Solicitud no encontrada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("Hubo un problema al %s la solicitud. Intenta nuevamente.", accion)})
	}
}

// DashboardStats godoc
// @Summary Dashboard Stats
// @Description Conteo de solicitudes pendientes de la sección del admin, con caché corta en Redis
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{section=string,solicitudes_pendientes=int} "Estadísticas"
// @Router /admin/dashboard-stats [get]
func (h *SolicitudHandler) DashboardStats(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autenticado o sesión corrupta"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	cacheKey := "solicitudes:pendientes:" + claims.Section
	if h.redisClient != nil {
		if cached, err := h.redisClient.Get(ctx, cacheKey).Int64(); err == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"section":                claims.Section,
				"solicitudes_pendientes": cached,
			})
		}
	}

	count, err := h.solicitudRepo.CountPendingBySection(ctx, claims.Section)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudieron calcular las estadísticas"})
	}

	if h.redisClient != nil {
		h.redisClient.Set(ctx, cacheKey, count, statsCacheTTL)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"section":                claims.Section,
		"solicitudes_pendientes": count,
	})
}

// Comprobante godoc
// @Summary Comprobante QR
// @Description Genera un código QR con el id y estado de la solicitud, usable como comprobante impreso
// @Tags Solicitudes
// @Produce png
// @Security BearerAuth
// @Param id path string true "ID de la solicitud"
// @Success 200 {file} file "PNG del comprobante"
// @Failure 404 {object} models.ErrorResponse "Solicitud no encontrada"
// @Router /solicitudes/{id}/comprobante [get]
func (h *SolicitudHandler) Comprobante(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de solicitud inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	solicitud, err := h.solicitudRepo.FindByID(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo buscar la solicitud"})
	}
	if solicitud == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Solicitud no encontrada"})
	}

	contenido := fmt.Sprintf("solicitud:%s|%s|%s", solicitud.ID.Hex(), solicitud.TipoPermiso, solicitud.Estado())
	png, err := qrcode.Encode(contenido, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo generar el comprobante"})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
