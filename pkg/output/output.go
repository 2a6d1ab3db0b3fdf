// Package output writes finished itineraries to the output directory, as
// machine-readable JSON and as a human-readable text rendering.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/wayplan/wayplan/pkg/travel"
)

func SaveJSON(outputDir string, itinerary *travel.Itinerary) (string, error) {
	directory := filepath.Join(outputDir, "itineraries", "json")
	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(directory, fmt.Sprintf("bookable_itinerary_%s.json", itinerary.ID))

	data, err := json.MarshalIndent(itinerary, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	log.Info().Str("path", path).Msg("Itinerary saved")

	return path, nil
}

func SavePretty(outputDir string, itinerary *travel.Itinerary) (string, error) {
	directory := filepath.Join(outputDir, "itineraries", "pretty")
	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(directory, fmt.Sprintf("pretty_itinerary_%s.txt", itinerary.ID))

	if err := os.WriteFile(path, []byte(Render(itinerary)), 0644); err != nil {
		return "", err
	}

	return path, nil
}
