package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Payment struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	BookingID     primitive.ObjectID `json:"bookingId" bson:"bookingId"`
	Paid          bool               `json:"paid" bson:"paid"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	Amount        float64            `json:"amount" bson:"amount"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
