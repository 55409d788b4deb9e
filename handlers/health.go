package handlers

import (
	"net/http"
	"voyago/services"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /api/health.
func HealthHandler(c *gin.Context) {
	searchStatus := "configured"
	if !services.GetSerpClient().Configured() {
		searchStatus = "fallback only (no API key)"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "Voyago API",
		"search":  searchStatus,
	})
}
