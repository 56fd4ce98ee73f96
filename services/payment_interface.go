package services

import (
	"context"
	"errors"
	"fmt"
	"math"
)

const (
	CurrencyUSD       = "usd"
	PaymentMethodCard = "card"

	// MaxChargeMinorUnits is the largest single card charge the gateway
	// accepts, $999,999.99.
	MaxChargeMinorUnits int64 = 99999999
)

var ErrInvalidAmount = errors.New("invalid amount")

// PaymentGateway is an interface for card payment providers
type PaymentGateway interface {
	// CreatePaymentIntent starts a card charge of amount minor units and
	// returns the client secret the browser uses to confirm it.
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// ToMinorUnits converts a price in dollars to cents. Prices that are not
// positive or do not fit in a single charge return ErrInvalidAmount.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: price must be greater than zero", ErrInvalidAmount)
	}
	cents := math.Round(price * 100)
	if cents < 1 || cents > float64(MaxChargeMinorUnits) {
		return 0, fmt.Errorf("%w: price must be between 0.01 and %.2f", ErrInvalidAmount, float64(MaxChargeMinorUnits)/100)
	}
	return int64(cents), nil
}
