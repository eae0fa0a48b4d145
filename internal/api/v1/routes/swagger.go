package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	_ "github.com/celestiaorg/intakeflow/internal/api/v1/docs" // registers the OpenAPI document
)

// SwaggerDoc is the route name of the OpenAPI document
const SwaggerDoc = "SwaggerDoc"

// RegisterSwaggerRoutes serves the OpenAPI document
func RegisterSwaggerRoutes(app *fiber.App) {
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		return c.Type("json").Send([]byte(doc))
	}).Name(SwaggerDoc)
}
