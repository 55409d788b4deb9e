package handlers

import (
	"net/http"
	"time"
	"voyago/services"

	"github.com/gin-gonic/gin"
)

// ExportRequest carries one chosen flight/hotel pair for the PDF offer
// sheet. The sheet is rendered from the request body; nothing is stored.
type ExportRequest struct {
	TravelerName  string               `json:"traveler_name"`
	Origin        string               `json:"origin" binding:"required"`
	Destination   string               `json:"destination" binding:"required"`
	DepartureDate string               `json:"departure_date" binding:"required"`
	ReturnDate    string               `json:"return_date" binding:"required"`
	Flight        services.FlightOffer `json:"flight"`
	Hotel         services.HotelOffer  `json:"hotel"`
}

// ExportHandler handles POST /api/export.
func ExportHandler(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}

	depDate, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid departure date format. Use YYYY-MM-DD"})
		return
	}
	retDate, err := time.Parse("2006-01-02", req.ReturnDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid return date format. Use YYYY-MM-DD"})
		return
	}
	if !retDate.After(depDate) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Return date must be after departure date"})
		return
	}

	pdfBytes, err := services.GenerateOfferSheet(services.OfferSheetData{
		TravelerName:  req.TravelerName,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Flight:        req.Flight,
		Hotel:         req.Hotel,
		NumNights:     int(retDate.Sub(depDate).Hours() / 24),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=voyago-selection.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
