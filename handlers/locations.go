package handlers

import (
	"net/http"
	"voyago/locations"

	"github.com/gin-gonic/gin"
)

// AirportsHandler handles GET /api/airports: the static catalogue of
// departure airports and searchable destinations.
func AirportsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"departure_airports": locations.DepartureAirports(),
		"destinations":       locations.Destinations(),
	})
}

type themeEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ThemesHandler handles GET /api/themes.
func ThemesHandler(c *gin.Context) {
	themes := make([]themeEntry, 0, len(locations.ThemeLabels))
	for _, id := range []string{"couple", "party", "beach", "nature", "mountain", "city_trip"} {
		themes = append(themes, themeEntry{ID: id, Name: locations.ThemeLabels[id]})
	}
	c.JSON(http.StatusOK, gin.H{"themes": themes})
}
