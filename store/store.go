// Package store holds the MongoDB repositories for the doctors portal
// collections. A Store is created once at startup and shared by every
// handler; the underlying driver client is safe for concurrent use.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sittawut/doctors-portal/models"
)

const (
	ServicesCollection = "services"
	BookingsCollection = "bookings"
	UsersCollection    = "users"
	DoctorsCollection  = "doctors"
	PaymentsCollection = "payments"
	ProjectsCollection = "projects"
)

// ErrNotFound is returned when a lookup or targeted update matches no document.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateData is returned by EnsureIndexes when existing documents
// violate a unique index.
var ErrDuplicateData = errors.New("existing documents violate a unique index")

type Store struct {
	client *mongo.Client
	db     *mongo.Database

	Services *ServiceRepository
	Bookings *BookingRepository
	Users    *UserRepository
	Doctors  *DoctorRepository
	Payments *PaymentRepository
	Projects *ProjectRepository
}

func New(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:   client,
		db:       db,
		Services: &ServiceRepository{coll: db.Collection(ServicesCollection)},
		Bookings: &BookingRepository{coll: db.Collection(BookingsCollection)},
		Users:    &UserRepository{coll: db.Collection(UsersCollection)},
		Doctors:  &DoctorRepository{coll: db.Collection(DoctorsCollection)},
		Payments: &PaymentRepository{coll: db.Collection(PaymentsCollection)},
		Projects: &ProjectRepository{coll: db.Collection(ProjectsCollection)},
	}
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// booking index is what makes booking creation race free.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		BookingsCollection: {
			{
				Keys:    bson.D{{Key: "treatmentName", Value: 1}, {Key: "date", Value: 1}, {Key: "patient", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("booking_key_unique"),
			},
			{Keys: bson.D{{Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ServicesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		DoctorsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("create indexes on %s: %w: %w", name, ErrDuplicateData, err)
			}
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func updateResult(res *mongo.UpdateResult) models.WriteResult {
	if res == nil {
		return models.WriteResult{}
	}
	return models.WriteResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	var item T
	if err := coll.FindOne(ctx, filter).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
