package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotbook/services/booking"
	"slotbook/utils"
)

// DirectoryHandler serves the cached derived views directly, for front-ends
// that render menus before a session exists.
type DirectoryHandler struct {
	Engine booking.BookingService
}

func NewDirectoryHandler(engine booking.BookingService) *DirectoryHandler {
	return &DirectoryHandler{Engine: engine}
}

// GetDirectoryHandler returns the location to provider mapping.
func (h *DirectoryHandler) GetDirectoryHandler(c *gin.Context) {
	dir, err := h.Engine.GetDirectory(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load directory", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": dir})
}

// AvailabilityHandler returns the open dates for a location and optional
// provider without touching any session.
func (h *DirectoryHandler) AvailabilityHandler(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return
	}
	provider := c.Query("provider")

	days, err := h.Engine.AvailableDays(c.Request.Context(), location, provider)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to scan availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availableDays": days})
}

// HealthHandler reports the latest health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
