package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sittawut/doctors-portal/config"
	"github.com/sittawut/doctors-portal/handlers"
	"github.com/sittawut/doctors-portal/metrics"
	"github.com/sittawut/doctors-portal/middleware"
	"github.com/sittawut/doctors-portal/models"
	"github.com/sittawut/doctors-portal/services"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies is everything the routes need, built once in main.
type Dependencies struct {
	Config   *config.Config
	Tokens   *middleware.TokenIssuer
	Health   Pinger
	Services handlers.ServiceStore
	Bookings handlers.BookingStore
	Users    handlers.UserStore
	Doctors  handlers.DoctorStore
	Payments handlers.PaymentStore
	Projects handlers.ProjectStore
	// Gateway may be nil when no payment processor is configured.
	Gateway services.PaymentGateway
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// Initialize handlers
	serviceHandler := handlers.NewServiceHandler(deps.Services, deps.Bookings)
	bookingHandler := handlers.NewBookingHandler(deps.Bookings, deps.Payments)
	userHandler := handlers.NewUserHandler(deps.Users, deps.Tokens)
	doctorHandler := handlers.NewDoctorHandler(deps.Doctors)
	paymentHandler := handlers.NewPaymentHandler(deps.Gateway)
	projectHandler := handlers.NewProjectHandler(deps.Projects)

	verifyJWT := middleware.VerifyJWT(deps.Tokens)
	verifyAdmin := middleware.VerifyAdmin(deps.Users)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "I am ready. Let's go ....")
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Health.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, models.Response{
					Success: false,
					Error:   "Database unreachable",
				})
				return
			}
		}
		c.JSON(http.StatusOK, models.Response{
			Success: true,
			Message: "Server is running",
		})
	})
	router.GET("/metrics", metrics.Handler())

	// Portfolio
	router.GET("/projects", projectHandler.GetProjects)
	router.GET("/project/:id", projectHandler.GetProjectByID)

	// Public routes
	router.GET("/services", serviceHandler.GetServices)
	router.GET("/servicesname", serviceHandler.GetServiceNames)
	router.GET("/available", serviceHandler.GetAvailable)
	router.POST("/bookings", bookingHandler.CreateBooking)
	router.PUT("/users/:email", userHandler.UpsertUser)
	router.GET("/admin/:email", userHandler.GetAdminStatus)

	// Protected routes
	router.GET("/bookings/:id", verifyJWT, bookingHandler.GetBookingByID)
	router.PATCH("/bookings/:id", verifyJWT, bookingHandler.PayBooking)
	router.GET("/appoinment", verifyJWT, bookingHandler.GetMyAppointments)
	router.GET("/users", verifyJWT, userHandler.GetUsers)
	router.POST("/payment-intent", verifyJWT, paymentHandler.CreatePaymentIntent)

	// Admin routes
	router.PUT("/users/admin/:email", verifyJWT, verifyAdmin, userHandler.MakeAdmin)
	doctors := router.Group("/doctors", verifyJWT, verifyAdmin)
	{
		doctors.POST("", doctorHandler.CreateDoctor)
		doctors.GET("", doctorHandler.GetDoctors)
		doctors.DELETE("/:email", doctorHandler.DeleteDoctor)
	}
}

// NewRouter builds the engine with the global middleware chain and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Config != nil && deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(metrics.Middleware())
	if deps.Config != nil {
		router.Use(config.CORSMiddleware(deps.Config))
		router.Use(middleware.RequestTimeout(deps.Config.RequestTimeout))
	}

	SetupRoutes(router, deps)
	return router
}
