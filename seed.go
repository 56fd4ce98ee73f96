package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sittawut/doctors-portal/cache"
	"github.com/sittawut/doctors-portal/config"
	"github.com/sittawut/doctors-portal/store"
)

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load services, doctors and projects from a YAML file",
		Long: `Upsert catalog data into the store.

Services are matched by name, doctors by email and projects by name, so the
command can be re-run after editing the file.

Example:
  doctors-portal seed --file data/seed.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()

			data, err := store.ParseSeed(f)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(st)

			summary, err := st.Seed(ctx, data)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d services, %d doctors, %d projects\n", summary.Services, summary.Doctors, summary.Projects)

			rdb, err := config.NewRedisClient(ctx, cfg)
			if err != nil {
				log.Printf("Warning: could not reach catalog cache: %v", err)
				return nil
			}
			if rdb != nil {
				defer rdb.Close()
				if err := cache.NewCatalog(st.Services, rdb, cfg.CatalogCacheTTL).Invalidate(ctx); err != nil {
					log.Printf("Warning: could not invalidate catalog cache: %v", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "data/seed.yaml", "seed file path")
	return cmd
}
