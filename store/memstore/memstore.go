// Package memstore is an in-memory stand-in for the MongoDB repositories,
// used by handler and route tests. It keeps the same contracts: booking
// uniqueness on (treatmentName, date, patient), email keyed users and
// store.ErrNotFound for missing documents.
package memstore

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sittawut/doctors-portal/models"
	"github.com/sittawut/doctors-portal/store"
)

type Store struct {
	Services *Services
	Bookings *Bookings
	Users    *Users
	Doctors  *Doctors
	Payments *Payments
	Projects *Projects
}

func New() *Store {
	return &Store{
		Services: &Services{},
		Bookings: &Bookings{},
		Users:    &Users{},
		Doctors:  &Doctors{},
		Payments: &Payments{},
		Projects: &Projects{},
	}
}

type Services struct {
	mu    sync.Mutex
	items []models.Service
}

func (s *Services) Add(services ...models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, svc := range services {
		if svc.ID.IsZero() {
			svc.ID = primitive.NewObjectID()
		}
		s.items = append(s.items, svc)
	}
}

func (s *Services) List(ctx context.Context) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Service, len(s.items))
	for i, svc := range s.items {
		svc.Slots = append([]string(nil), svc.Slots...)
		out[i] = svc
	}
	return out, nil
}

func (s *Services) ListNames(ctx context.Context) ([]models.ServiceName, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ServiceName, 0, len(s.items))
	for _, svc := range s.items {
		out = append(out, models.ServiceName{ID: svc.ID, Name: svc.Name})
	}
	return out, nil
}

type Bookings struct {
	mu    sync.Mutex
	items []models.Booking
}

func (b *Bookings) Create(ctx context.Context, booking models.Booking) (*models.Booking, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.items {
		if existing.Key() == booking.Key() {
			found := existing
			return &found, false, nil
		}
	}
	booking.ID = primitive.NewObjectID()
	b.items = append(b.items, booking)
	return &booking, true, nil
}

func (b *Bookings) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.items {
		if existing.ID == id {
			found := existing
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (b *Bookings) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return b.filter(func(bk models.Booking) bool { return bk.Date == date }), nil
}

func (b *Bookings) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return b.filter(func(bk models.Booking) bool { return bk.Email == email }), nil
}

func (b *Bookings) filter(keep func(models.Booking) bool) []models.Booking {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Booking{}
	for _, bk := range b.items {
		if keep(bk) {
			out = append(out, bk)
		}
	}
	return out
}

func (b *Bookings) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string, amount float64) (models.WriteResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Paid = true
			b.items[i].TransactionID = transactionID
			b.items[i].Amount = amount
			return models.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return models.WriteResult{Acknowledged: true}, store.ErrNotFound
}

func (b *Bookings) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

type Users struct {
	mu    sync.Mutex
	items []models.User
}

func (u *Users) Upsert(ctx context.Context, email string, req models.UpsertUserRequest) (models.WriteResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.items {
		if u.items[i].Email == email {
			if req.Name != "" {
				u.items[i].Name = req.Name
			}
			return models.WriteResult{Acknowledged: true, MatchedCount: 1}, nil
		}
	}
	id := primitive.NewObjectID()
	u.items = append(u.items, models.User{ID: id, Email: email, Name: req.Name})
	return models.WriteResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.items {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (u *Users) MakeAdmin(ctx context.Context, email string) (models.WriteResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.items {
		if u.items[i].Email == email {
			u.items[i].Role = models.RoleAdmin
			return models.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return models.WriteResult{Acknowledged: true}, store.ErrNotFound
}

func (u *Users) List(ctx context.Context) ([]models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]models.User{}, u.items...), nil
}

func (u *Users) Count(email string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, user := range u.items {
		if user.Email == email {
			n++
		}
	}
	return n
}

type Doctors struct {
	mu    sync.Mutex
	items []models.Doctor
}

func (d *Doctors) Create(ctx context.Context, doctor models.Doctor) (models.WriteResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	doctor.ID = primitive.NewObjectID()
	d.items = append(d.items, doctor)
	return models.WriteResult{Acknowledged: true, InsertedID: doctor.ID}, nil
}

func (d *Doctors) List(ctx context.Context) ([]models.Doctor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Doctor{}, d.items...), nil
}

func (d *Doctors) DeleteByEmail(ctx context.Context, email string) (models.WriteResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, doc := range d.items {
		if doc.Email == email {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return models.WriteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return models.WriteResult{Acknowledged: true}, nil
}

type Payments struct {
	mu    sync.Mutex
	items []models.Payment
}

func (p *Payments) Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	payment.ID = primitive.NewObjectID()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	p.items = append(p.items, payment)
	return payment.ID, nil
}

func (p *Payments) All() []models.Payment {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Payment{}, p.items...)
}

type Projects struct {
	mu    sync.Mutex
	items []models.Project
}

func (p *Projects) Add(projects ...models.Project) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pr := range projects {
		if pr.ID.IsZero() {
			pr.ID = primitive.NewObjectID()
		}
		p.items = append(p.items, pr)
	}
}

func (p *Projects) List(ctx context.Context) ([]models.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Project{}, p.items...), nil
}

func (p *Projects) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pr := range p.items {
		if pr.ID == id {
			found := pr
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}
