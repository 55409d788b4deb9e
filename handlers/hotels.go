package handlers

import (
	"net/http"
	"strconv"
	"voyago/locations"
	"voyago/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HotelsResponse is the envelope for hotel searches.
type HotelsResponse struct {
	Success  bool                  `json:"success"`
	SearchID string                `json:"search_id"`
	Hotels   []services.HotelOffer `json:"hotels"`
	Total    int                   `json:"total"`
	HasLive  bool                  `json:"has_live"`
}

// HotelsHandler handles GET /api/hotels: a single-destination hotel search
// with widening toward the target result count.
func HotelsHandler(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Destination parameter is required"})
		return
	}

	// Accept city names and IATA codes alike; unknown names are passed
	// through as-is, the provider resolves free text itself.
	if code := locations.CityCode(destination); code != "" {
		destination = code
	}

	checkin := c.Query("checkin_date")
	if !validOptionalDate(checkin) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid checkin_date format. Use YYYY-MM-DD"})
		return
	}
	checkout := c.Query("checkout_date")
	if !validOptionalDate(checkout) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid checkout_date format. Use YYYY-MM-DD"})
		return
	}

	adults, err := strconv.Atoi(c.DefaultQuery("adults", "2"))
	if err != nil || adults <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "adults must be a positive integer"})
		return
	}

	svc := services.NewHotelService(hotelSearcher())
	result := svc.Search(c.Request.Context(), services.HotelRequest{
		Destination:  destination,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Adults:       adults,
	})

	c.JSON(http.StatusOK, HotelsResponse{
		Success:  true,
		SearchID: uuid.New().String(),
		Hotels:   result.Hotels,
		Total:    len(result.Hotels),
		HasLive:  result.HasLive,
	})
}

func hotelSearcher() services.HotelSearcher {
	if sc := services.GetSerpClient(); sc.Configured() {
		return sc
	}
	return nil
}
