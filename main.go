package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"templatehub/api-gateway/config"
	"templatehub/api-gateway/handlers"
	"templatehub/api-gateway/internal/webhook"
	"templatehub/api-gateway/metrics"
	"templatehub/api-gateway/middleware"
	"templatehub/api-gateway/services"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	godotenv.Load()

	cfg := config.Load()
	log := config.NewLogger(cfg)

	supabase, err := config.NewSupabaseClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	templateService := services.NewTemplateService(supabase, log)
	submissionService := services.NewSubmissionService(supabase, templateService, cfg.PlaceholderImageURL, log)
	requestService := services.NewRequestService(supabase, webhook.NewClient(cfg.AccessWebhookURL), log)
	authService := services.NewAuthService(
		services.NewGotrueAuthenticator(supabase.Auth),
		services.AllowedEmails(cfg.AdminEmails...),
		log,
	)

	h := handlers.NewApplicationHandler(templateService, submissionService, requestService, authService, log)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(log))
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiV1 := app.Group("/api/v1")

	// Public catalog surface
	apiV1.Get("/templates", h.ListPublishedTemplates)
	apiV1.Get("/templates/:id", h.GetTemplate)
	apiV1.Post("/templates/:id/requests", h.RequestTemplateAccess)
	apiV1.Post("/submissions", h.SubmitTemplate)

	// Auth
	apiV1.Post("/auth/login", h.Login)
	apiV1.Post("/auth/logout", h.Logout)
	apiV1.Get("/auth/me", h.Me)

	// Admin surface, gated by the allow-list
	admin := apiV1.Group("/admin", middleware.RequireAdmin(authService))
	admin.Get("/templates", h.ListAllTemplates)
	admin.Post("/templates", h.CreateTemplate)
	admin.Put("/templates/:id", h.UpdateTemplate)
	admin.Delete("/templates/:id", h.DeleteTemplate)
	admin.Patch("/templates/:id/publish", h.SetTemplatePublishState)
	admin.Get("/templates/:id/requests", h.ListTemplateRequests)

	log.Infof("Starting API Gateway on %s", cfg.ServerAddr)
	log.Fatal(app.Listen(cfg.ServerAddr))
}
