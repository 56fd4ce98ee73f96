package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Booking struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	TreatmentName string             `json:"treatmentName" bson:"treatmentName" binding:"required"`
	Date          string             `json:"date" bson:"date" binding:"required"`
	Slot          string             `json:"slot" bson:"slot"`
	Patient       string             `json:"patient" bson:"patient" binding:"required"`
	PatientName   string             `json:"patientName,omitempty" bson:"patientName,omitempty"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Price         float64            `json:"price,omitempty" bson:"price,omitempty"`
	Paid          bool               `json:"paid,omitempty" bson:"paid,omitempty"`
	TransactionID string             `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	Amount        float64            `json:"amount,omitempty" bson:"amount,omitempty"`
}

// BookingKey is the (treatmentName, date, patient) triple a booking is unique on.
type BookingKey struct {
	TreatmentName string
	Date          string
	Patient       string
}

func (b Booking) Key() BookingKey {
	return BookingKey{TreatmentName: b.TreatmentName, Date: b.Date, Patient: b.Patient}
}

type CreateBookingResponse struct {
	Success bool     `json:"success"`
	Booking *Booking `json:"booking"`
}

type PayBookingRequest struct {
	TransactionID string  `json:"transactionId"`
	// Older clients send the misspelled field.
	TransectionID string  `json:"transectionId"`
	Amount        float64 `json:"amount"`
}

func (r PayBookingRequest) Transaction() string {
	if r.TransactionID != "" {
		return r.TransactionID
	}
	return r.TransectionID
}
