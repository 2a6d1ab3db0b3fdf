package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wayplan/wayplan/pkg/database"
)

func ItinerariesRouter(router fiber.Router) {
	router.Get("/:identifier", getItinerary)
}

func getItinerary(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	itinerary, err := database.GetItinerary(c.Context(), identifier)
	if errors.Is(err, database.ErrNotConnected) {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": "Itinerary storage is not configured",
		})
	} else if errors.Is(err, database.ErrItineraryNotFound) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Itinerary matching Itinerary Identifier",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(itinerary)
}
