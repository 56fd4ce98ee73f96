package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sittawut/doctors-portal/models"
)

type DoctorHandler struct {
	doctors DoctorStore
}

func NewDoctorHandler(doctors DoctorStore) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	result, err := h.doctors.Create(c.Request.Context(), doctor)
	if err != nil {
		respondFailure(c, "DoctorHandler", http.StatusInternalServerError, "Failed to create doctor", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.doctors.List(c.Request.Context())
	if err != nil {
		respondFailure(c, "DoctorHandler", http.StatusInternalServerError, "Failed to fetch doctors", err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	result, err := h.doctors.DeleteByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondFailure(c, "DoctorHandler", http.StatusInternalServerError, "Failed to delete doctor", err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, http.StatusNotFound, "Doctor not found")
		return
	}
	c.JSON(http.StatusOK, result)
}
