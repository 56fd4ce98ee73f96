package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sittawut/doctors-portal/metrics"
	"github.com/sittawut/doctors-portal/middleware"
	"github.com/sittawut/doctors-portal/models"
	"github.com/sittawut/doctors-portal/store"
)

type BookingHandler struct {
	bookings BookingStore
	payments PaymentStore
}

func NewBookingHandler(bookings BookingStore, payments PaymentStore) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		payments: payments,
	}
}

// CreateBooking books a slot unless the patient already has this treatment
// on that date, in which case the existing booking is echoed back with
// success=false.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var booking models.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	saved, created, err := h.bookings.Create(c.Request.Context(), booking)
	if err != nil {
		respondFailure(c, "BookingHandler", http.StatusInternalServerError, "Failed to create booking", err)
		return
	}

	if created {
		metrics.IncBookingCreated("created")
	} else {
		metrics.IncBookingCreated("duplicate")
	}
	c.JSON(http.StatusOK, models.CreateBookingResponse{
		Success: created,
		Booking: saved,
	})
}

func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	booking, err := h.bookings.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Booking not found")
			return
		}
		respondFailure(c, "BookingHandler", http.StatusInternalServerError, "Failed to fetch booking", err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetMyAppointments lists the bookings of ?email=, which must be exactly the
// token subject.
func (h *BookingHandler) GetMyAppointments(c *gin.Context) {
	email := c.Query("email")
	if email == "" || email != middleware.DecodedEmail(c) {
		metrics.IncAuthDenied("foreign_email")
		c.JSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: "Forbidden",
		})
		return
	}

	bookings, err := h.bookings.ListByEmail(c.Request.Context(), email)
	if err != nil {
		respondFailure(c, "BookingHandler", http.StatusInternalServerError, "Failed to fetch bookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// PayBooking marks a booking paid with the client reported transaction and
// appends a payment record. The transaction is taken on trust; it is not
// looked up at the payment gateway.
func (h *BookingHandler) PayBooking(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req models.PayBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	ctx := c.Request.Context()
	result, err := h.bookings.MarkPaid(ctx, id, req.Transaction(), req.Amount)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Booking not found")
			return
		}
		respondFailure(c, "BookingHandler", http.StatusInternalServerError, "Failed to update booking", err)
		return
	}

	payment := models.Payment{
		BookingID:     id,
		Paid:          true,
		TransactionID: req.Transaction(),
		Amount:        req.Amount,
	}
	if _, err := h.payments.Insert(ctx, payment); err != nil {
		log.Printf("[BookingHandler] %s: booking %s marked paid but payment record failed", middleware.RequestID(c), id.Hex())
		respondFailure(c, "BookingHandler", http.StatusInternalServerError, "Failed to record payment", err)
		return
	}

	metrics.IncBookingPaid()
	c.JSON(http.StatusOK, result)
}
