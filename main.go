package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sittawut/doctors-portal/config"
	"github.com/sittawut/doctors-portal/store"
)

var Version = "dev"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	serve := serveCmd()
	rootCmd := &cobra.Command{
		Use:     "doctors-portal",
		Short:   "Doctors portal booking API",
		Version: Version,
		RunE:    serve.RunE,
	}

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(indexesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads and validates the environment configuration.
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := config.NewMongoClient(connectCtx, cfg)
	if err != nil {
		return nil, err
	}
	return store.New(client, cfg.Database), nil
}

func closeStore(st *store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := st.Close(ctx); err != nil {
		log.Printf("Failed to disconnect from MongoDB: %v", err)
	}
}

func indexesCmd() *cobra.Command {
	var dedupe bool
	cmd := &cobra.Command{
		Use:   "indexes",
		Short: "Create the collection indexes (unique booking key, user email)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore(st)

			if dedupe {
				removed, err := st.Bookings.RemoveDuplicates(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("Removed %d duplicate bookings\n", removed)
			}

			if err := st.EnsureIndexes(cmd.Context()); err != nil {
				return withDedupeHint(err)
			}
			fmt.Println("Indexes are up to date")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dedupe, "dedupe-bookings", false, "delete all but the oldest booking per (treatmentName, date, patient) first")
	return cmd
}

func withDedupeHint(err error) error {
	if errors.Is(err, store.ErrDuplicateData) {
		return fmt.Errorf("%w (run \"indexes --dedupe-bookings\" to keep the oldest of each duplicate booking)", err)
	}
	return err
}
