package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Gestion-Solicitudes/models"
	"Gestion-Solicitudes/repository"
)

type UserHandler struct {
	userRepo *repository.UserRepository
}

func NewUserHandler(userRepo *repository.UserRepository) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
	}
}

// GetUserByID godoc
// @Summary Get User By ID
// @Description Devuelve un usuario por su ID (colaborador de identidad)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del usuario"
// @Success 200 {object} object{user=models.User} "Usuario encontrado"
// @Failure 404 {object} models.ErrorResponse "Usuario no encontrado"
// @Router /users/{id} [get]
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuario inválido"})
	}

	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autenticado o sesión corrupta"})
	}
	if claims.Role != "admin" && claims.UserID != id {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Sólo puedes consultar tu propio usuario"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo buscar el usuario"})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuario no encontrado"})
	}

	user.Password = ""
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}

// GetAllUsers godoc
// @Summary Get All Users
// @Description Lista usuarios con paginación, filtrables por sección (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param section query string false "Filtrar por sección"
// @Param page query int false "Página" default(1)
// @Param limit query int false "Tamaño de página" default(20)
// @Success 200 {object} object{users=[]models.User,total=int} "Usuarios listados"
// @Router /admin/users [get]
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 20))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if section := c.Query("section"); section != "" {
		filter["section"] = section
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.userRepo.GetAllUsers(ctx, filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudieron listar los usuarios"})
	}

	for i := range users {
		users[i].Password = ""
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users": users,
		"total": total,
	})
}
