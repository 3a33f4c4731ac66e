package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// extensiones aceptadas para documentos e imágenes adjuntas
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

type UploadHandler struct {
	uploadDir string
}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{
		uploadDir: "./uploads/solicitudes",
	}
}

// SubirAdjunto godoc
// @Summary Subir Adjunto
// @Description Sube un documento o imagen y devuelve el resultado terminal {url, file_name}; la URL sólo existe cuando la transferencia terminó
// @Tags Solicitudes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param archivo formData file true "Documento (PDF, Word) o imagen (JPG, PNG)"
// @Success 200 {object} models.AdjuntoSubidoResponse "Archivo subido"
// @Failure 400 {object} models.ErrorResponse "Archivo ausente o tipo no permitido"
// @Router /solicitudes/adjunto [post]
func (h *UploadHandler) SubirAdjunto(c *fiber.Ctx) error {
	file, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No se encontró el archivo"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tipo de archivo no permitido"})
	}

	uniqueName := uuid.New().String() + ext
	filePath := fmt.Sprintf("%s/%s", h.uploadDir, uniqueName)

	if err := c.SaveFile(file, filePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo guardar el archivo"})
	}

	// respuesta sólo tras completar la transferencia: es el resultado
	// terminal que una solicitud puede adjuntar
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Archivo subido correctamente",
		"url":       fmt.Sprintf("/uploads/solicitudes/%s", uniqueName),
		"file_name": file.Filename,
	})
}
