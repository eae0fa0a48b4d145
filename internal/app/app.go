// Package app assembles the fiber application serving the API.
package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/celestiaorg/intakeflow/internal/api/v1/handlers"
	"github.com/celestiaorg/intakeflow/internal/api/v1/middleware"
	"github.com/celestiaorg/intakeflow/internal/api/v1/routes"
	"github.com/celestiaorg/intakeflow/internal/constants"
	"github.com/celestiaorg/intakeflow/internal/db/repos"
	"github.com/celestiaorg/intakeflow/internal/services"
)

// Options configures the application
type Options struct {
	APIKey       string
	APIKeyHeader string
	CORSOrigins  string
}

// NewApp wires repositories, services, handlers and middleware into a fiber app
func NewApp(db *gorm.DB, opts Options) *fiber.App {
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}
	if opts.APIKeyHeader == "" {
		opts.APIKeyHeader = constants.DefaultAPIKeyHeader
	}

	app := fiber.New(fiber.Config{
		AppName:      "IntakeFlow",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  opts.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, " + opts.APIKeyHeader + ", " + middleware.RequestIDHeader,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		ExposeHeaders: "Location, " + middleware.RequestIDHeader,
	}))

	projectRepo := repos.NewProjectRepository(db)
	projectService := services.NewProjectService(projectRepo)
	apiHandler := handlers.NewAPIHandler(projectService)

	routes.RegisterRoutes(app, handlers.NewProjectHandler(apiHandler), middleware.APIKey(middleware.APIKeyConfig{
		Header: opts.APIKeyHeader,
		Key:    opts.APIKey,
	}))
	routes.RegisterSwaggerRoutes(app)

	return app
}
