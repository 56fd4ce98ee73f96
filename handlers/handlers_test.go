package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sittawut/doctors-portal/middleware"
	"github.com/sittawut/doctors-portal/models"
	"github.com/sittawut/doctors-portal/store/memstore"
)

// MockGateway implements services.PaymentGateway for testing
type MockGateway struct {
	mu       sync.Mutex
	amounts  []int64
	currency string
	err      error
}

func (m *MockGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.amounts = append(m.amounts, amount)
	m.currency = currency
	return "pi_secret_123", nil
}

type counterSigner struct {
	n int
}

func (s *counterSigner) Sign(email string) (string, error) {
	s.n++
	return email + "#" + string(rune('0'+s.n)), nil
}

// asUser stands in for VerifyJWT.
func asUser(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.DecodedEmailKey, email)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func perform(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func newBooking() map[string]interface{} {
	return map[string]interface{}{
		"treatmentName": "Teeth Cleaning",
		"date":          "May 20, 2022",
		"slot":          "08.00 AM - 08.30 AM",
		"patient":       "patient@example.com",
		"email":         "patient@example.com",
		"price":         30,
	}
}

func TestCreateBookingDetectsDuplicate(t *testing.T) {
	st := memstore.New()
	h := NewBookingHandler(st.Bookings, st.Payments)
	router := newTestRouter()
	router.POST("/bookings", h.CreateBooking)

	w := perform(router, http.MethodPost, "/bookings", newBooking())
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[models.CreateBookingResponse](t, w)
	assert.True(t, first.Success)
	require.NotNil(t, first.Booking)
	assert.False(t, first.Booking.ID.IsZero())

	dup := newBooking()
	dup["slot"] = "10.00 AM - 10.30 AM"
	w = perform(router, http.MethodPost, "/bookings", dup)
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[models.CreateBookingResponse](t, w)
	assert.False(t, second.Success)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	assert.Equal(t, "08.00 AM - 08.30 AM", second.Booking.Slot)
	assert.Equal(t, 1, st.Bookings.Len())
}

func TestCreateBookingConcurrentRequests(t *testing.T) {
	st := memstore.New()
	h := NewBookingHandler(st.Bookings, st.Payments)
	router := newTestRouter()
	router.POST("/bookings", h.CreateBooking)

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := perform(router, http.MethodPost, "/bookings", newBooking())
			var resp models.CreateBookingResponse
			if json.Unmarshal(w.Body.Bytes(), &resp) == nil && resp.Success {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, st.Bookings.Len())
}

func TestCreateBookingValidatesKey(t *testing.T) {
	st := memstore.New()
	router := newTestRouter()
	router.POST("/bookings", NewBookingHandler(st.Bookings, st.Payments).CreateBooking)

	body := newBooking()
	delete(body, "patient")
	w := perform(router, http.MethodPost, "/bookings", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode[models.Response](t, w).Success)
	assert.Equal(t, 0, st.Bookings.Len())
}

func TestGetBookingByID(t *testing.T) {
	st := memstore.New()
	booking, _, err := st.Bookings.Create(context.Background(), models.Booking{TreatmentName: "A", Date: "d", Patient: "p"})
	require.NoError(t, err)

	router := newTestRouter()
	router.GET("/bookings/:id", NewBookingHandler(st.Bookings, st.Payments).GetBookingByID)

	w := perform(router, http.MethodGet, "/bookings/"+booking.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, booking.ID, decode[models.Booking](t, w).ID)

	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodGet, "/bookings/not-an-id", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, "/bookings/"+primitive.NewObjectID().Hex(), nil).Code)
}

func TestGetMyAppointmentsRequiresExactEmail(t *testing.T) {
	st := memstore.New()
	_, _, err := st.Bookings.Create(context.Background(), models.Booking{TreatmentName: "A", Date: "d", Patient: "p", Email: "pat@example.com"})
	require.NoError(t, err)

	h := NewBookingHandler(st.Bookings, st.Payments)
	router := newTestRouter()
	router.GET("/appoinment", asUser("pat@example.com"), h.GetMyAppointments)

	w := perform(router, http.MethodGet, "/appoinment?email=pat@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Booking](t, w), 1)

	for _, email := range []string{"Pat@example.com", "pat@example.co", "xpat@example.com", "pat", ""} {
		w := perform(router, http.MethodGet, "/appoinment?email="+email, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "email %q", email)
	}
}

func TestPayBooking(t *testing.T) {
	st := memstore.New()
	booking, _, err := st.Bookings.Create(context.Background(), models.Booking{TreatmentName: "A", Date: "d", Patient: "p"})
	require.NoError(t, err)

	router := newTestRouter()
	router.PATCH("/bookings/:id", NewBookingHandler(st.Bookings, st.Payments).PayBooking)

	t.Run("unknown booking records nothing", func(t *testing.T) {
		w := perform(router, http.MethodPatch, "/bookings/"+primitive.NewObjectID().Hex(), map[string]interface{}{"transactionId": "pi_1", "amount": 30})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, st.Payments.All())
	})

	t.Run("marks paid and appends payment", func(t *testing.T) {
		w := perform(router, http.MethodPatch, "/bookings/"+booking.ID.Hex(), map[string]interface{}{"transactionId": "pi_1", "amount": 30})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), decode[models.WriteResult](t, w).ModifiedCount)

		paid, err := st.Bookings.FindByID(context.Background(), booking.ID)
		require.NoError(t, err)
		assert.True(t, paid.Paid)
		assert.Equal(t, "pi_1", paid.TransactionID)

		payments := st.Payments.All()
		require.Len(t, payments, 1)
		assert.Equal(t, booking.ID, payments[0].BookingID)
		assert.Equal(t, float64(30), payments[0].Amount)
	})

	t.Run("accepts legacy field name", func(t *testing.T) {
		w := perform(router, http.MethodPatch, "/bookings/"+booking.ID.Hex(), map[string]interface{}{"transectionId": "pi_2", "amount": 30})
		require.Equal(t, http.StatusOK, w.Code)
		payments := st.Payments.All()
		assert.Equal(t, "pi_2", payments[len(payments)-1].TransactionID)
	})
}

// flakyPayments fails inserts until fail is cleared.
type flakyPayments struct {
	*memstore.Payments
	fail bool
}

func (f *flakyPayments) Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error) {
	if f.fail {
		return primitive.NilObjectID, errors.New("write concern timeout")
	}
	return f.Payments.Insert(ctx, payment)
}

func TestPayBookingRetryAfterPaymentRecordFailure(t *testing.T) {
	st := memstore.New()
	booking, _, err := st.Bookings.Create(context.Background(), models.Booking{TreatmentName: "A", Date: "d", Patient: "p"})
	require.NoError(t, err)

	payments := &flakyPayments{Payments: st.Payments, fail: true}
	router := newTestRouter()
	router.PATCH("/bookings/:id", NewBookingHandler(st.Bookings, payments).PayBooking)
	body := map[string]interface{}{"transactionId": "pi_1", "amount": 30}

	w := perform(router, http.MethodPatch, "/bookings/"+booking.ID.Hex(), body)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	paid, err := st.Bookings.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	assert.Empty(t, st.Payments.All())

	payments.fail = false
	w = perform(router, http.MethodPatch, "/bookings/"+booking.ID.Hex(), body)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, st.Payments.All(), 1)
	assert.Equal(t, "pi_1", st.Payments.All()[0].TransactionID)
}

func TestGetAvailable(t *testing.T) {
	st := memstore.New()
	st.Services.Add(models.Service{Name: "Teeth Cleaning", Price: 30, Slots: []string{"a", "b", "c"}})
	ctx := context.Background()
	_, _, err := st.Bookings.Create(ctx, models.Booking{TreatmentName: "Teeth Cleaning", Date: "May 20, 2022", Patient: "p1", Slot: "b"})
	require.NoError(t, err)
	_, _, err = st.Bookings.Create(ctx, models.Booking{TreatmentName: "Teeth Cleaning", Date: "May 21, 2022", Patient: "p2", Slot: "a"})
	require.NoError(t, err)

	router := newTestRouter()
	router.GET("/available", NewServiceHandler(st.Services, st.Bookings).GetAvailable)

	w := perform(router, http.MethodGet, "/available?date=May%2020,%202022", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]models.ServiceAvailability](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a", "c"}, got[0].Available)
	assert.Equal(t, []string{"a", "b", "c"}, got[0].Slots)

	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodGet, "/available", nil).Code)
}

func TestGetServiceNames(t *testing.T) {
	st := memstore.New()
	st.Services.Add(models.Service{Name: "Teeth Cleaning", Price: 30, Slots: []string{"a"}})

	router := newTestRouter()
	h := NewServiceHandler(st.Services, st.Bookings)
	router.GET("/services", h.GetServices)
	router.GET("/servicesname", h.GetServiceNames)

	w := perform(router, http.MethodGet, "/servicesname", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var names []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &names))
	require.Len(t, names, 1)
	assert.Equal(t, "Teeth Cleaning", names[0]["name"])
	assert.NotContains(t, names[0], "slots")

	w = perform(router, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Service](t, w), 1)
}

func TestUpsertUser(t *testing.T) {
	st := memstore.New()
	signer := &counterSigner{}
	router := newTestRouter()
	router.PUT("/users/:email", NewUserHandler(st.Users, signer).UpsertUser)

	body := map[string]interface{}{"name": "Pat", "role": "admin"}
	first := decode[models.UpsertUserResponse](t, perform(router, http.MethodPut, "/users/pat@example.com", body))
	second := decode[models.UpsertUserResponse](t, perform(router, http.MethodPut, "/users/pat@example.com", body))

	assert.Equal(t, 1, st.Users.Count("pat@example.com"))
	assert.NotEmpty(t, first.Token)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, int64(1), first.Result.UpsertedCount)
	assert.Equal(t, int64(1), second.Result.MatchedCount)

	user, err := st.Users.FindByEmail(context.Background(), "pat@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin(), "login body must not grant a role")

	w := perform(router, http.MethodPut, "/users/empty@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	_, err := st.Users.Upsert(ctx, "pat@example.com", models.UpsertUserRequest{})
	require.NoError(t, err)

	h := NewUserHandler(st.Users, &counterSigner{})
	router := newTestRouter()
	router.GET("/admin/:email", h.GetAdminStatus)
	router.PUT("/users/admin/:email", h.MakeAdmin)
	router.GET("/users", h.GetUsers)

	status := decode[models.AdminStatusResponse](t, perform(router, http.MethodGet, "/admin/ghost@example.com", nil))
	assert.False(t, status.Admin)
	status = decode[models.AdminStatusResponse](t, perform(router, http.MethodGet, "/admin/pat@example.com", nil))
	assert.False(t, status.Admin)

	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodPut, "/users/admin/ghost@example.com", nil).Code)
	assert.Equal(t, http.StatusOK, perform(router, http.MethodPut, "/users/admin/pat@example.com", nil).Code)

	status = decode[models.AdminStatusResponse](t, perform(router, http.MethodGet, "/admin/pat@example.com", nil))
	assert.True(t, status.Admin)

	users := decode[[]models.User](t, perform(router, http.MethodGet, "/users", nil))
	assert.Len(t, users, 1)
}

func TestDoctors(t *testing.T) {
	st := memstore.New()
	h := NewDoctorHandler(st.Doctors)
	router := newTestRouter()
	router.POST("/doctors", h.CreateDoctor)
	router.GET("/doctors", h.GetDoctors)
	router.DELETE("/doctors/:email", h.DeleteDoctor)

	w := perform(router, http.MethodPost, "/doctors", map[string]interface{}{"name": "Dr. R", "email": "r@example.com", "specialty": "Oral Surgery"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decode[models.WriteResult](t, w).InsertedID)

	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodPost, "/doctors", map[string]interface{}{"name": "No Email"}).Code)

	assert.Len(t, decode[[]models.Doctor](t, perform(router, http.MethodGet, "/doctors", nil)), 1)

	w = perform(router, http.MethodDelete, "/doctors/r@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[models.WriteResult](t, w).DeletedCount)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodDelete, "/doctors/r@example.com", nil).Code)
}

func TestCreateDoctorKeepsExtraFields(t *testing.T) {
	st := memstore.New()
	h := NewDoctorHandler(st.Doctors)
	router := newTestRouter()
	router.POST("/doctors", h.CreateDoctor)
	router.GET("/doctors", h.GetDoctors)

	body := map[string]interface{}{"name": "Dr", "email": "d@example.com", "phone": "123", "degree": "MBBS"}
	require.Equal(t, http.StatusOK, perform(router, http.MethodPost, "/doctors", body).Code)

	doctors := decode[[]map[string]interface{}](t, perform(router, http.MethodGet, "/doctors", nil))
	require.Len(t, doctors, 1)
	assert.Equal(t, "d@example.com", doctors[0]["email"])
	assert.Equal(t, "123", doctors[0]["phone"])
	assert.Equal(t, "MBBS", doctors[0]["degree"])
}

func TestCreatePaymentIntent(t *testing.T) {
	gateway := &MockGateway{}
	router := newTestRouter()
	router.POST("/payment-intent", NewPaymentHandler(gateway).CreatePaymentIntent)

	w := perform(router, http.MethodPost, "/payment-intent", map[string]interface{}{"price": 50.00})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pi_secret_123", decode[models.PaymentIntentResponse](t, w).ClientSecret)
	assert.Equal(t, []int64{5000}, gateway.amounts)
	assert.Equal(t, "usd", gateway.currency)

	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodPost, "/payment-intent", map[string]interface{}{"price": 0}).Code)
	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodPost, "/payment-intent", map[string]interface{}{"price": "fifty"}).Code)
	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodPost, "/payment-intent", map[string]interface{}{"price": 1e30}).Code)
	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodPost, "/payment-intent", map[string]interface{}{"price": 1000000}).Code)
	assert.Equal(t, []int64{5000}, gateway.amounts)

	gateway.err = errors.New("card_error")
	assert.Equal(t, http.StatusBadGateway, perform(router, http.MethodPost, "/payment-intent", map[string]interface{}{"price": 10}).Code)
}

func TestCreatePaymentIntentWithoutGateway(t *testing.T) {
	router := newTestRouter()
	router.POST("/payment-intent", NewPaymentHandler(nil).CreatePaymentIntent)

	w := perform(router, http.MethodPost, "/payment-intent", map[string]interface{}{"price": 50})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProjects(t *testing.T) {
	st := memstore.New()
	st.Projects.Add(models.Project{Name: "Doctors Portal"})
	projects, err := st.Projects.List(context.Background())
	require.NoError(t, err)

	h := NewProjectHandler(st.Projects)
	router := newTestRouter()
	router.GET("/projects", h.GetProjects)
	router.GET("/project/:id", h.GetProjectByID)

	assert.Len(t, decode[[]models.Project](t, perform(router, http.MethodGet, "/projects", nil)), 1)

	w := perform(router, http.MethodGet, "/project/"+projects[0].ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Doctors Portal", decode[models.Project](t, w).Name)

	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodGet, "/project/xyz", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, "/project/"+primitive.NewObjectID().Hex(), nil).Code)
}
