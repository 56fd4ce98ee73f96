package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	services ServiceStore
	bookings BookingStore
}

func NewServiceHandler(services ServiceStore, bookings BookingStore) *ServiceHandler {
	return &ServiceHandler{
		services: services,
		bookings: bookings,
	}
}

func (h *ServiceHandler) GetServices(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		respondFailure(c, "ServiceHandler", http.StatusInternalServerError, "Failed to fetch services", err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetServiceNames(c *gin.Context) {
	names, err := h.services.ListNames(c.Request.Context())
	if err != nil {
		respondFailure(c, "ServiceHandler", http.StatusInternalServerError, "Failed to fetch service names", err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// GetAvailable lists every service with the slots still open on ?date=.
func (h *ServiceHandler) GetAvailable(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		respondError(c, http.StatusBadRequest, "date is required")
		return
	}

	ctx := c.Request.Context()
	services, err := h.services.List(ctx)
	if err != nil {
		respondFailure(c, "ServiceHandler", http.StatusInternalServerError, "Failed to fetch services", err)
		return
	}
	bookings, err := h.bookings.ListByDate(ctx, date)
	if err != nil {
		respondFailure(c, "ServiceHandler", http.StatusInternalServerError, "Failed to fetch bookings", err)
		return
	}

	c.JSON(http.StatusOK, ComputeAvailability(services, bookings))
}
