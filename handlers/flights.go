package handlers

import (
	"net/http"
	"os"
	"strconv"
	"time"
	"voyago/locations"
	"voyago/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FlightsResponse is the envelope for flight searches. HasLive is false when
// every offer is synthetic fallback data.
type FlightsResponse struct {
	Success  bool                   `json:"success"`
	SearchID string                 `json:"search_id"`
	Flights  []services.FlightOffer `json:"flights"`
	Total    int                    `json:"total"`
	HasLive  bool                   `json:"has_live"`
}

// FlightsHandler handles GET /api/flights: a single-destination search.
func FlightsHandler(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Destination parameter is required"})
		return
	}

	origin := c.DefaultQuery("origin", defaultOrigin())

	originCode := locations.CityCode(origin)
	if originCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown origin: " + origin})
		return
	}
	destinationCode := locations.CityCode(destination)
	if destinationCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown destination: " + destination})
		return
	}

	departureDateFrom := c.Query("departure_date_from")
	if !validOptionalDate(departureDateFrom) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid departure_date_from format. Use YYYY-MM-DD"})
		return
	}
	if to := c.Query("departure_date_to"); !validOptionalDate(to) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid departure_date_to format. Use YYYY-MM-DD"})
		return
	}

	minStay, err := strconv.Atoi(c.DefaultQuery("min_stay", "4"))
	if err != nil || minStay <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "min_stay must be a positive integer"})
		return
	}

	svc := services.NewFlightService(flightSearcher())
	result := svc.Search(c.Request.Context(), services.FlightRequest{
		Origin:            originCode,
		Destination:       destinationCode,
		DepartureDateFrom: departureDateFrom,
		MinStayDays:       minStay,
	})

	c.JSON(http.StatusOK, FlightsResponse{
		Success:  true,
		SearchID: uuid.New().String(),
		Flights:  result.Flights,
		Total:    len(result.Flights),
		HasLive:  result.HasLive,
	})
}

// ExploreRequest is the body of POST /api/flights/explore: a criteria-driven
// fan-out search over the destination catalogue.
type ExploreRequest struct {
	Origin        string   `json:"origin"`
	Themes        []string `json:"themes"`
	Coastal       *bool    `json:"coastal"`
	Countries     []string `json:"countries"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date"`
	MinStay       int      `json:"min_stay"`
	MaxResults    int      `json:"max_results"`
}

// ExploreHandler handles POST /api/flights/explore.
func ExploreHandler(c *gin.Context) {
	var req ExploreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}

	origin := req.Origin
	if origin == "" {
		origin = defaultOrigin()
	}
	originCode := locations.CityCode(origin)
	if originCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown origin: " + origin})
		return
	}

	if !validOptionalDate(req.DepartureDate) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid departure_date format. Use YYYY-MM-DD"})
		return
	}
	if !validOptionalDate(req.ReturnDate) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid return_date format. Use YYYY-MM-DD"})
		return
	}

	svc := services.NewFlightService(flightSearcher())
	result := svc.Search(c.Request.Context(), services.FlightRequest{
		Origin: originCode,
		Criteria: &locations.Criteria{
			Themes:    req.Themes,
			Coastal:   req.Coastal,
			Countries: req.Countries,
		},
		DepartureDateFrom: req.DepartureDate,
		ReturnDate:        req.ReturnDate,
		MinStayDays:       req.MinStay,
		MaxResults:        req.MaxResults,
	})

	c.JSON(http.StatusOK, FlightsResponse{
		Success:  true,
		SearchID: uuid.New().String(),
		Flights:  result.Flights,
		Total:    len(result.Flights),
		HasLive:  result.HasLive,
	})
}

// flightSearcher returns the live upstream client, or nil when no API key is
// configured so the pipeline goes straight to fallback data.
func flightSearcher() services.FlightSearcher {
	if sc := services.GetSerpClient(); sc.Configured() {
		return sc
	}
	return nil
}

func defaultOrigin() string {
	if o := os.Getenv("DEFAULT_ORIGIN"); o != "" {
		return o
	}
	return "CDG"
}

func validOptionalDate(date string) bool {
	if date == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
