package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"Gestion-Solicitudes/models"
	util "Gestion-Solicitudes/pkg/utils"
	"Gestion-Solicitudes/repository"
)

type SectionHandler struct {
	sectionRepo repository.SectionRepository
}

func NewSectionHandler(sectionRepo repository.SectionRepository) *SectionHandler {
	return &SectionHandler{
		sectionRepo: sectionRepo,
	}
}

// CreateSection godoc
// @Summary Create Section
// @Description Agrega una sección nueva al catálogo (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section body models.Section true "Sección nueva"
// @Success 201 {object} object{message=string,id=string} "Sección creada"
// @Failure 409 {object} models.ErrorResponse "La sección ya existe"
// @Router /admin/sections [post]
func (h *SectionHandler) CreateSection(c *fiber.Ctx) error {
	var newSection models.Section
	if err := c.BodyParser(&newSection); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload inválido"})
	}

	if errors := util.ValidateStruct(newSection); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.sectionRepo.FindSectionByName(ctx, newSection.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo verificar la sección"})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "La sección ya existe"})
	}

	result, err := h.sectionRepo.CreateSection(ctx, &newSection)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo crear la sección"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Sección creada correctamente",
		"id":      result.InsertedID,
	})
}

// GetAllSections godoc
// @Summary Get All Sections
// @Description Lista el catálogo de secciones
// @Tags Sections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{sections=[]models.Section} "Secciones"
// @Router /sections [get]
func (h *SectionHandler) GetAllSections(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	sections, err := h.sectionRepo.GetAllSections(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudieron listar las secciones"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"sections": sections})
}
