package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wayplan/wayplan/pkg/api/routes"
	"github.com/wayplan/wayplan/pkg/planner"
)

func SetupServer(listen string, trip *planner.Planner, outputDir string) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PlannerRouter(group.Group("/planner"), trip, outputDir)
	routes.ItinerariesRouter(group.Group("/itineraries"))

	return webApp.Listen(listen)
}
