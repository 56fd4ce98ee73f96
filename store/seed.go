package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sittawut/doctors-portal/models"
)

// SeedData is the catalog file accepted by the seed command.
type SeedData struct {
	Services []models.Service `yaml:"services"`
	Doctors  []models.Doctor  `yaml:"doctors"`
	Projects []models.Project `yaml:"projects"`
}

type SeedSummary struct {
	Services int64
	Doctors  int64
	Projects int64
}

func ParseSeed(r io.Reader) (*SeedData, error) {
	var data SeedData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (d *SeedData) Validate() error {
	seen := make(map[string]bool, len(d.Services))
	for i, s := range d.Services {
		if s.Name == "" {
			return fmt.Errorf("service %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("service %q listed twice", s.Name)
		}
		seen[s.Name] = true
		if len(s.Slots) == 0 {
			return fmt.Errorf("service %q: at least one slot is required", s.Name)
		}
	}
	for i, doc := range d.Doctors {
		if doc.Email == "" {
			return fmt.Errorf("doctor %d: email is required", i)
		}
	}
	for i, p := range d.Projects {
		if p.Name == "" {
			return fmt.Errorf("project %d: name is required", i)
		}
	}
	return nil
}

func (s *Store) Seed(ctx context.Context, data *SeedData) (SeedSummary, error) {
	var summary SeedSummary
	var err error

	if summary.Services, err = s.Services.Seed(ctx, data.Services); err != nil {
		return summary, err
	}
	if summary.Doctors, err = s.Doctors.Seed(ctx, data.Doctors); err != nil {
		return summary, err
	}
	if summary.Projects, err = s.Projects.Seed(ctx, data.Projects); err != nil {
		return summary, err
	}
	return summary, nil
}
