package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sittawut/doctors-portal/middleware"
	"github.com/sittawut/doctors-portal/models"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.Response{
		Success: false,
		Error:   message,
	})
}

// respondFailure logs err with the request id and answers with message only.
func respondFailure(c *gin.Context, tag string, status int, message string, err error) {
	log.Printf("[%s] %s: %s: %v", tag, middleware.RequestID(c), message, err)
	respondError(c, status, message)
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
