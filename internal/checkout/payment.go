package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrPaymentDeclined is returned when the processor refuses the charge.
var ErrPaymentDeclined = errors.New("checkout: payment declined")

// PaymentProcessor charges the order total and returns a payment reference.
type PaymentProcessor interface {
	Process(ctx context.Context, amount float64, method string) (string, error)
}

// SimulatedProcessor approves every charge after an optional delay. A Decline
// hook lets tests and demos force failures for specific charges.
type SimulatedProcessor struct {
	Delay   time.Duration
	Decline func(amount float64, method string) bool
}

func (p *SimulatedProcessor) Process(ctx context.Context, amount float64, method string) (string, error) {
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if amount <= 0 {
		return "", fmt.Errorf("checkout: invalid charge amount %.2f", amount)
	}
	if p.Decline != nil && p.Decline(amount, method) {
		return "", ErrPaymentDeclined
	}

	return "pay-" + uuid.NewString(), nil
}
