package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"Gestion-Solicitudes/cache"
	"Gestion-Solicitudes/config"
	"Gestion-Solicitudes/config/middleware"
	"Gestion-Solicitudes/coordinator"
	_ "Gestion-Solicitudes/docs"
	"Gestion-Solicitudes/handlers"
	"Gestion-Solicitudes/repository"
	"Gestion-Solicitudes/workflow"
)

func SetupRoutes(app *fiber.App) {
	log.Println("Registrando rutas de la aplicación...")

	// Repositorios
	userRepo := repository.NewUserRepository()
	sectionRepo := repository.NewSectionRepository()
	solicitudRepo := repository.NewSolicitudRepository()

	// Núcleo: caché viva por sección, coordinador de aprobación y workflow
	// de envío. Una instancia de cada uno por proceso.
	caches := cache.NewManager(solicitudRepo)
	coord := coordinator.New(solicitudRepo, caches)
	submission := workflow.New(solicitudRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo)
	userHandler := handlers.NewUserHandler(userRepo)
	sectionHandler := handlers.NewSectionHandler(sectionRepo)
	uploadHandler := handlers.NewUploadHandler()
	solicitudHandler := handlers.NewSolicitudHandler(solicitudRepo, caches, coord, submission, config.GetRedisClient())

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Gestión de Solicitudes API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)
	app.Static("/uploads", "./uploads")

	// API v1 group
	api := app.Group("/api/v1")

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", middleware.AuthMiddleware(), authHandler.Logout)
	authGroup.Post("/register", middleware.AuthMiddleware(), middleware.AdminMiddleware(), authHandler.Register)

	// Users
	protectedUserGroup := api.Group("/users", middleware.AuthMiddleware())
	protectedUserGroup.Post("/change-password", authHandler.ChangePassword)
	protectedUserGroup.Get("/:id", userHandler.GetUserByID)

	// Secciones
	api.Get("/sections", middleware.AuthMiddleware(), sectionHandler.GetAllSections)

	// Solicitudes (empleado)
	solicitudGroup := api.Group("/solicitudes", middleware.AuthMiddleware())
	solicitudGroup.Post("/", solicitudHandler.CrearSolicitud)
	solicitudGroup.Get("/mias", solicitudHandler.MisSolicitudes)
	solicitudGroup.Post("/adjunto", uploadHandler.SubirAdjunto)
	solicitudGroup.Get("/:id/comprobante", solicitudHandler.Comprobante)

	// Admin (alcance por sección del admin autenticado)
	adminGroup := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	adminGroup.Get("/users", userHandler.GetAllUsers)
	adminGroup.Post("/sections", sectionHandler.CreateSection)
	adminGroup.Get("/dashboard-stats", solicitudHandler.DashboardStats)
	adminGroup.Get("/solicitudes/pendientes", solicitudHandler.SolicitudesPendientes)
	adminGroup.Put("/solicitudes/:id/aprobar", solicitudHandler.Aprobar)
	adminGroup.Put("/solicitudes/:id/rechazar", solicitudHandler.Rechazar)

	log.Println("Rutas registradas:")
	log.Println("- POST /api/v1/auth/login")
	log.Println("- POST /api/v1/auth/register (admin only)")
	log.Println("- POST /api/v1/solicitudes (protected)")
	log.Println("- GET  /api/v1/solicitudes/mias (protected)")
	log.Println("- POST /api/v1/solicitudes/adjunto (protected)")
	log.Println("- GET  /api/v1/solicitudes/:id/comprobante (protected)")
	log.Println("- GET  /api/v1/admin/solicitudes/pendientes (admin only)")
	log.Println("- PUT  /api/v1/admin/solicitudes/:id/aprobar (admin only)")
	log.Println("- PUT  /api/v1/admin/solicitudes/:id/rechazar (admin only)")
	log.Println("- GET  /api/v1/admin/dashboard-stats (admin only)")
	log.Println("Documentación Swagger disponible en: /docs/index.html")
}
