package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"Gestion-Solicitudes/models"
	"Gestion-Solicitudes/pkg/paseto"
	"Gestion-Solicitudes/pkg/password"
	util "Gestion-Solicitudes/pkg/utils"
	"Gestion-Solicitudes/repository"
)

type AuthHandler struct {
	userRepo *repository.UserRepository
}

func NewAuthHandler(userRepo *repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
	}
}

// Register godoc
// @Summary Register User
// @Description Registra un usuario nuevo con su sección (admin only)
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.UserRegisterPayload true "Datos de registro"
// @Success 201 {object} object{message=string,user_id=string} "Usuario registrado"
// @Failure 400 {object} object{error=string,errors=array} "Payload inválido o error de validación"
// @Failure 500 {object} models.ErrorResponse "Error interno"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload models.UserRegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload inválido", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	hashedPassword, err := password.HashPassword(payload.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo procesar la contraseña"})
	}

	newUser := &models.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hashedPassword,
		Role:     payload.Role,
		Position: payload.Position,
		Section:  payload.Section,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("No se pudo registrar el usuario: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Usuario registrado correctamente",
		"user_id": result.InsertedID,
	})
}

// Login godoc
// @Summary Login User
// @Description Valida credenciales y devuelve un token PASETO con la identidad y sección del usuario
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Credenciales"
// @Success 200 {object} models.LoginSuccessResponse "Login exitoso"
// @Failure 401 {object} models.ErrorResponse "Credenciales incorrectas"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload inválido", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Combinación de email y contraseña incorrecta"})
	}

	if !password.CheckPasswordHash(payload.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Combinación de email y contraseña incorrecta"})
	}

	token, err := paseto.GenerateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo generar el token"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login exitoso",
		"token":   token,
		"user_id": user.ID.Hex(),
		"role":    user.Role,
		"section": user.Section,
	})
}

// ChangePassword godoc
// @Summary Change Password
// @Description Cambia la contraseña del usuario autenticado
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param password body models.ChangePasswordPayload true "Contraseña vieja y nueva"
// @Success 200 {object} object{message=string} "Contraseña actualizada"
// @Failure 401 {object} models.ErrorResponse "No autenticado o contraseña vieja incorrecta"
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autenticado o sesión corrupta"})
	}

	var payload models.ChangePasswordPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload inválido"})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Usuario no encontrado"})
	}

	if !password.CheckPasswordHash(payload.OldPassword, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "La contraseña actual no coincide"})
	}

	if payload.NewPassword == payload.OldPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "La contraseña nueva no puede ser igual a la actual"})
	}

	newHashedPassword, err := password.HashPassword(payload.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo procesar la contraseña nueva"})
	}

	updateData := bson.M{
		"password":     newHashedPassword,
		"isFirstLogin": false,
	}

	if _, err = h.userRepo.UpdateUser(ctx, claims.UserID, updateData); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("No se pudo actualizar la contraseña: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Contraseña actualizada correctamente."})
}

// Logout godoc
// @Summary Logout User
// @Description El token es stateless; el logout consiste en que el cliente lo descarte
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string} "Logout exitoso"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autenticado"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logout exitoso. Elimina el token en el cliente.",
	})
}
