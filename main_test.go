package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sittawut/doctors-portal/store"
)

func TestWithDedupeHint(t *testing.T) {
	dup := fmt.Errorf("create indexes on bookings: %w", store.ErrDuplicateData)
	err := withDedupeHint(dup)
	assert.ErrorIs(t, err, store.ErrDuplicateData)
	assert.Contains(t, err.Error(), "indexes --dedupe-bookings")

	other := errors.New("connection refused")
	assert.Equal(t, other, withDedupeHint(other))
}

func TestIndexesCommandHasDedupeFlag(t *testing.T) {
	flag := indexesCmd().Flags().Lookup("dedupe-bookings")
	if assert.NotNil(t, flag) {
		assert.Equal(t, "false", flag.DefValue)
	}
}
