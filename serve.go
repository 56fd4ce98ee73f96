package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sittawut/doctors-portal/cache"
	"github.com/sittawut/doctors-portal/config"
	"github.com/sittawut/doctors-portal/handlers"
	"github.com/sittawut/doctors-portal/metrics"
	"github.com/sittawut/doctors-portal/middleware"
	"github.com/sittawut/doctors-portal/routes"
	"github.com/sittawut/doctors-portal/services"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.EnsureIndexes(ctx); err != nil {
		return withDedupeHint(err)
	}

	var catalog handlers.ServiceStore = st.Services
	rdb, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Printf("Warning: catalog cache disabled: %v", err)
	} else if rdb != nil {
		defer rdb.Close()
		catalog = cache.NewCatalog(st.Services, rdb, cfg.CatalogCacheTTL)
		log.Printf("Catalog cache enabled at %s", cfg.RedisAddr)
	}

	var gateway services.PaymentGateway
	if cfg.StripeSecretKey != "" {
		gateway = services.NewStripeClient(cfg.StripeSecretKey)
	} else {
		log.Println("Warning: DP_STRIPE_SECRET not set, payment intents are disabled")
	}

	metrics.Register()
	router := routes.NewRouter(routes.Dependencies{
		Config:   cfg,
		Tokens:   middleware.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Health:   st,
		Services: catalog,
		Bookings: st.Bookings,
		Users:    st.Users,
		Doctors:  st.Doctors,
		Payments: st.Payments,
		Projects: st.Projects,
		Gateway:  gateway,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
