package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sittawut/doctors-portal/models"
)

// The interfaces below are the slices of the store each handler needs. The
// store package's repositories satisfy them; tests substitute fakes.

type ServiceStore interface {
	List(ctx context.Context) ([]models.Service, error)
	ListNames(ctx context.Context) ([]models.ServiceName, error)
}

type BookingStore interface {
	Create(ctx context.Context, booking models.Booking) (*models.Booking, bool, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string, amount float64) (models.WriteResult, error)
}

type UserStore interface {
	Upsert(ctx context.Context, email string, req models.UpsertUserRequest) (models.WriteResult, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	MakeAdmin(ctx context.Context, email string) (models.WriteResult, error)
	List(ctx context.Context) ([]models.User, error)
}

type DoctorStore interface {
	Create(ctx context.Context, doctor models.Doctor) (models.WriteResult, error)
	List(ctx context.Context) ([]models.Doctor, error)
	DeleteByEmail(ctx context.Context, email string) (models.WriteResult, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error)
}

type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
}

type TokenSigner interface {
	Sign(email string) (string, error)
}
