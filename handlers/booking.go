package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotbook/services/booking"
	"slotbook/utils"
)

// BookingHandler translates front-end intents into session operations. The
// front-end supplies the per-client identity string used as the slot
// occupant; this service does no authentication of its own.
type BookingHandler struct {
	Sessions *booking.DefaultSessionService
	Logger   *zap.Logger
}

func NewBookingHandler(sessions *booking.DefaultSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Sessions: sessions, Logger: logger}
}

// ChooseLocationHandler starts or restarts a client's booking flow.
func (h *BookingHandler) ChooseLocationHandler(c *gin.Context) {
	clientID := c.Param("clientID")
	var input struct {
		Location string `json:"location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Sessions.ChooseLocation(c.Request.Context(), clientID, input.Location)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ChooseProviderHandler records the provider preference ("any" or empty for
// no preference) and returns the dates with open slots.
func (h *BookingHandler) ChooseProviderHandler(c *gin.Context) {
	clientID := c.Param("clientID")
	var input struct {
		Provider string `json:"provider"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	days, err := h.Sessions.ChooseProvider(c.Request.Context(), clientID, input.Provider)
	if err != nil {
		if errors.Is(err, booking.ErrIncompleteSelection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "choose a location first"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to scan availability", err.Error())
		return
	}
	// An empty list is an ordinary outcome: "no dates, try another provider".
	c.JSON(http.StatusOK, gin.H{"availableDays": days})
}

// ChooseDateHandler records the date and returns its open times.
func (h *BookingHandler) ChooseDateHandler(c *gin.Context) {
	clientID := c.Param("clientID")
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	times, err := h.Sessions.ChooseDate(c.Request.Context(), clientID, input.Date)
	if err != nil {
		if errors.Is(err, booking.ErrIncompleteSelection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "choose a location first"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to list free times", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"times": times})
}

// ChooseTimeHandler records the time and echoes the full selection for the
// confirmation prompt.
func (h *BookingHandler) ChooseTimeHandler(c *gin.Context) {
	clientID := c.Param("clientID")
	var input struct {
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Sessions.ChooseTime(c.Request.Context(), clientID, input.Time)
	if err != nil {
		if errors.Is(err, booking.ErrIncompleteSelection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "choose a location and date first"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ConfirmHandler attempts the reservation. A lost race is an ordinary
// negative result, not an error: booked=false means "try another slot".
func (h *BookingHandler) ConfirmHandler(c *gin.Context) {
	clientID := c.Param("clientID")
	var input struct {
		Identity string `json:"identity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booked, err := h.Sessions.Confirm(c.Request.Context(), clientID, input.Identity)
	if err != nil {
		if errors.Is(err, booking.ErrIncompleteSelection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "selection is incomplete"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to confirm booking", err.Error())
		return
	}
	h.Logger.Info("booking confirmation handled",
		zap.String("clientID", clientID), zap.Bool("booked", booked))
	c.JSON(http.StatusOK, gin.H{"booked": booked})
}

// MyBookingsHandler lists the client's upcoming reservations.
func (h *BookingHandler) MyBookingsHandler(c *gin.Context) {
	clientID := c.Param("clientID")
	identity := c.Query("identity")
	if identity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity is required"})
		return
	}

	records, err := h.Sessions.MyBookings(c.Request.Context(), clientID, identity)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": records})
}

// CancelBookingHandler cancels one of the client's listed bookings by index.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	clientID := c.Param("clientID")
	var input struct {
		Identity string `json:"identity" binding:"required"`
		Index    *int   `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cancelled, err := h.Sessions.CancelBooking(c.Request.Context(), clientID, input.Identity, *input.Index)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
		return
	}
	h.Logger.Info("booking cancellation handled",
		zap.String("clientID", clientID), zap.Bool("cancelled", cancelled))
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}
