package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/wayplan/wayplan/pkg/database"
	"github.com/wayplan/wayplan/pkg/output"
	"github.com/wayplan/wayplan/pkg/planner"
	"github.com/wayplan/wayplan/pkg/travel"
)

func PlannerRouter(router fiber.Router, trip *planner.Planner, outputDir string) {
	router.Post("/plan", func(c *fiber.Ctx) error {
		return calculateItinerary(c, trip, outputDir)
	})
}

func calculateItinerary(c *fiber.Ctx, trip *planner.Planner, outputDir string) error {
	var request planner.Request
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Could not parse itinerary request",
		})
	}

	result, err := trip.Plan(c.Context(), request)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, travel.ErrInfeasible) {
			status = fiber.StatusUnprocessableEntity
		}

		c.SendStatus(status)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if _, err := output.SaveJSON(outputDir, result.Itinerary); err != nil {
		log.Error().Err(err).Msg("Failed to save itinerary JSON")
	}
	if _, err := output.SavePretty(outputDir, result.Itinerary); err != nil {
		log.Error().Err(err).Msg("Failed to save pretty itinerary")
	}

	if database.Connected() {
		if err := database.SaveItinerary(c.Context(), result.Itinerary); err != nil {
			log.Error().Err(err).Msg("Failed to store itinerary")
		}
	}

	itineraryReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, result.Itinerary)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Itinerary",
		})
	}

	return c.JSON(itineraryReduced)
}
