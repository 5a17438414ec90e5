// internal/domain/payment/service_test.go
package payment

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestProcessAlwaysSucceeds(t *testing.T) {
	p := NewSimulatedProcessor(10*time.Millisecond, quietLogger())

	receipt, err := p.Process(context.Background(), 179.98, "upi")
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.TransactionID)
	assert.Equal(t, 179.98, receipt.Amount)
	assert.Equal(t, "upi", receipt.Method)
	assert.False(t, receipt.ProcessedAt.IsZero())
}

func TestProcessWaitsForDelay(t *testing.T) {
	delay := 50 * time.Millisecond
	p := NewSimulatedProcessor(delay, quietLogger())

	start := time.Now()
	_, err := p.Process(context.Background(), 10, "card")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestProcessHonorsCancellation(t *testing.T) {
	p := NewSimulatedProcessor(5*time.Second, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Process(ctx, 10, "card")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestReceiptsAreUnique(t *testing.T) {
	p := NewSimulatedProcessor(0, quietLogger())

	r1, err := p.Process(context.Background(), 1, "cod")
	require.NoError(t, err)
	r2, err := p.Process(context.Background(), 1, "cod")
	require.NoError(t, err)

	assert.NotEqual(t, r1.TransactionID, r2.TransactionID)
}
