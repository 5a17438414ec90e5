// internal/domain/payment/service.go
package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Receipt is the outcome of a processed payment
type Receipt struct {
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// Processor charges a payment. Implementations decide latency and
// failure behavior; the checkout flow only sees the seam.
type Processor interface {
	Process(ctx context.Context, amount float64, method string) (*Receipt, error)
}

// SimulatedProcessor approves every payment after a fixed delay.
// There is deliberately no failure path.
type SimulatedProcessor struct {
	delay  time.Duration
	logger *logrus.Logger
}

// NewSimulatedProcessor creates a processor with the configured delay
func NewSimulatedProcessor(delay time.Duration, logger *logrus.Logger) *SimulatedProcessor {
	return &SimulatedProcessor{
		delay:  delay,
		logger: logger,
	}
}

// Process waits out the simulated latency and returns a receipt.
// Context cancellation cuts the wait short.
func (p *SimulatedProcessor) Process(ctx context.Context, amount float64, method string) (*Receipt, error) {
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	receipt := &Receipt{
		TransactionID: uuid.New().String(),
		Amount:        amount,
		Method:        method,
		ProcessedAt:   time.Now().UTC(),
	}

	p.logger.WithFields(logrus.Fields{
		"transaction_id": receipt.TransactionID,
		"amount":         amount,
		"method":         method,
	}).Info("simulated payment processed")

	return receipt, nil
}
