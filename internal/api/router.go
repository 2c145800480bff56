package api

import (
	"enroll-docs/docs"
	"enroll-docs/internal/api/handlers"
	"enroll-docs/pkg/auth"
	"enroll-docs/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	trackHandler *handlers.TrackHandler,
	subHandler *handlers.SubmissionHandler,
	adminHandler *handlers.AdminHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 256 << 20, // document size ceilings are enforced per slot
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger
	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Get("/profile", authHandler.GetProfile)
	protected.Put("/profile", authHandler.UpdateProfile)

	tracks := protected.Group("/tracks")
	tracks.Get("", trackHandler.ListTracks)
	tracks.Get("/:id/requirements", trackHandler.GetRequirements)

	submission := protected.Group("/submission")
	submission.Put("/track", subHandler.SelectTrack)
	submission.Post("/documents", subHandler.AttachDocument)
	submission.Get("/documents", subHandler.ListDocuments)
	submission.Delete("/documents/:type", subHandler.DetachDocument)
	submission.Get("", subHandler.GetChecklist)
	submission.Post("/submit", subHandler.Submit)
	submission.Get("/receipt", subHandler.GetReceipt)

	// Admin routes
	admin := protected.Group("/admin", middleware.AdminOnly(appLogger))
	admin.Get("/applicants", adminHandler.ListApplicants)
	admin.Get("/applicants/:id/documents", adminHandler.ListApplicantDocuments)
	admin.Get("/documents/:id/download", adminHandler.DownloadDocument)
	admin.Get("/audit", adminHandler.ListAuditEvents)

	return app
}
