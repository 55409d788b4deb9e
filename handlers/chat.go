package handlers

import (
	"net/http"
	"voyago/services"

	"github.com/gin-gonic/gin"
)

type ConverseRequest struct {
	Message string `json:"message"`
}

// ConverseHandler handles POST /api/converse: the keyword-based travel
// assistant.
func ConverseHandler(c *gin.Context) {
	var req ConverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, services.Converse(req.Message))
}
