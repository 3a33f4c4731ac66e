package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"Gestion-Solicitudes/config"
	"Gestion-Solicitudes/repository"
	"Gestion-Solicitudes/router"
	"Gestion-Solicitudes/seeder"

	_ "Gestion-Solicitudes/docs"
	_ "time/tzdata"
)

// @title Gestión de Solicitudes API
// @version 1.0
// @description API para la gestión de solicitudes de permisos: envío con adjunto opcional, caché en vivo por sección y aprobación/rechazo coordinados
//
// @contact.name API Support
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
//
// @tag.name Auth
// @tag.description Autenticación
//
// @tag.name Users
// @tag.description Usuarios
//
// @tag.name Sections
// @tag.description Catálogo de secciones
//
// @tag.name Solicitudes
// @tag.description Solicitudes de permiso
//
// @tag.name Admin
// @tag.description Endpoints de administración por sección
func main() {

	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: archivo .env no encontrado, se usan las variables del sistema")
	}

	cfg := config.LoadConfig()

	config.MongoConnect()
	defer config.DisconnectDB()

	config.ConnectRedis()
	defer config.CloseRedis()

	if os.Getenv("SEED") == "true" {
		sectionRepo := repository.NewSectionRepository()
		userRepo := repository.NewUserRepository()
		seeder.SeedSections(sectionRepo)
		seeder.SeedUsers(userRepo, sectionRepo)
	}

	app := fiber.New()

	config.SetupCORS(app)

	app.Use(logger.New())

	router.SetupRoutes(app)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
