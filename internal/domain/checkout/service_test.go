// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/smartshop-backend/internal/domain/cart"
	"github.com/your-org/smartshop-backend/internal/domain/payment"
	"github.com/your-org/smartshop-backend/internal/domain/prize"
	"github.com/your-org/smartshop-backend/internal/domain/product"
	"github.com/your-org/smartshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/smartshop-backend/internal/pkg/genai"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) GetJSON(ctx context.Context, key string, dest interface{}) error {
	b, ok := s.data[key]
	if !ok {
		return redis.ErrNotFound
	}
	return json.Unmarshal(b, dest)
}

func (s *memStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = b
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func (s *memStore) Increment(ctx context.Context, key string) (int64, error) {
	var n int64
	if b, ok := s.data[key]; ok {
		if err := json.Unmarshal(b, &n); err != nil {
			return 0, err
		}
	}
	n++
	s.data[key], _ = json.Marshal(n)
	return n, nil
}

type stubAI struct {
	genai.Service
	geocodeFn func(ctx context.Context, lat, lng float64) (*genai.AddressHint, error)
}

func (s *stubAI) GeocodeFromCoordinates(ctx context.Context, lat, lng float64) (*genai.AddressHint, error) {
	if s.geocodeFn == nil {
		return &genai.AddressHint{}, nil
	}
	return s.geocodeFn(ctx, lat, lng)
}

func (s *stubAI) SearchProducts(ctx context.Context, query string) ([]genai.ProductResult, error) {
	return nil, nil
}

func (s *stubAI) TranslatePrizeAmount(ctx context.Context, amount int) ([]genai.Translation, error) {
	return []genai.Translation{}, nil
}

type fixture struct {
	svc    *Service
	carts  *cart.Service
	search *product.Service
	prizes *prize.Service
	ai     *stubAI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	store := newMemStore()
	ai := &stubAI{}
	carts := cart.NewService(store, logger)
	search := product.NewService(store, ai, logger)
	prizes := prize.NewService(store, ai, logger)
	processor := payment.NewSimulatedProcessor(time.Millisecond, logger)

	return &fixture{
		svc:    NewService(store, carts, search, prizes, processor, ai, logger),
		carts:  carts,
		search: search,
		prizes: prizes,
		ai:     ai,
	}
}

func (f *fixture) fillCart(t *testing.T, sessionID string) {
	t.Helper()
	_, err := f.carts.AddItem(context.Background(), sessionID, &product.Product{
		ID: "p1", Name: "Boots", Price: 79.99, Currency: "USD",
	})
	require.NoError(t, err)
}

func validAddress() Address {
	return Address{
		FullName: "Ada Lovelace",
		Street:   "12 Analytical Way",
		City:     "London",
		State:    "LDN",
		ZipCode:  "E1 6AN",
		Phone:    "+44 20 7946 0001",
	}
}

func TestStartRequiresItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Start(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestStartDefaults(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")

	sess, err := f.svc.Start(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, StepAddress, sess.Step)
	assert.Equal(t, MethodUPI, sess.Payment.Method)
	assert.Equal(t, "gpay", sess.Payment.UPIApp)
	assert.Empty(t, sess.Errors)
}

func TestGetWithoutStart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSubmitAddressValidationOrder(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "sid")
	require.NoError(t, err)

	sess, err := f.svc.SubmitAddress(ctx, "sid", Address{City: "  "})
	require.NoError(t, err)

	assert.Equal(t, StepAddress, sess.Step, "invalid address must not advance")
	assert.Equal(t, []string{
		"Full Name is required",
		"Street Address is required",
		"City is required",
		"State is required",
		"ZIP Code is required",
		"Phone Number is required",
	}, sess.Errors)
}

func TestSubmitAddressAdvances(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "sid")
	require.NoError(t, err)

	sess, err := f.svc.SubmitAddress(ctx, "sid", validAddress())
	require.NoError(t, err)
	assert.Equal(t, StepPayment, sess.Step)
	assert.Empty(t, sess.Errors)
}

func TestCountryNotValidated(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "sid")
	require.NoError(t, err)

	addr := validAddress()
	addr.Country = ""
	sess, err := f.svc.SubmitAddress(ctx, "sid", addr)
	require.NoError(t, err)
	assert.Equal(t, StepPayment, sess.Step)
}

func TestLocateMergesOnlyReturnedFields(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()
	f.ai.geocodeFn = func(ctx context.Context, lat, lng float64) (*genai.AddressHint, error) {
		return &genai.AddressHint{City: "San Francisco", State: "CA", Country: "USA"}, nil
	}

	_, err := f.svc.Start(ctx, "sid")
	require.NoError(t, err)

	_, err = f.svc.SubmitAddress(ctx, "sid", Address{ZipCode: "11111"})
	require.NoError(t, err)

	sess, err := f.svc.Locate(ctx, "sid", 37.77, -122.42)
	require.NoError(t, err)
	assert.Equal(t, "San Francisco", sess.Address.City)
	assert.Equal(t, "CA", sess.Address.State)
	assert.Equal(t, "USA", sess.Address.Country)
	assert.Equal(t, "11111", sess.Address.ZipCode, "empty geocode field must not overwrite input")
}

func TestLocateFailureRecordsNotice(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()
	f.ai.geocodeFn = func(ctx context.Context, lat, lng float64) (*genai.AddressHint, error) {
		return nil, errors.New("no signal")
	}

	_, err := f.svc.Start(ctx, "sid")
	require.NoError(t, err)

	sess, err := f.svc.Locate(ctx, "sid", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{LocateFailedMessage}, sess.Errors)
	assert.Equal(t, StepAddress, sess.Step, "manual entry stays available")
}

func TestSelectPayment(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "sid")
	require.NoError(t, err)
	_, err = f.svc.SubmitAddress(ctx, "sid", validAddress())
	require.NoError(t, err)

	sess, err := f.svc.SelectPayment(ctx, "sid", MethodCard, "")
	require.NoError(t, err)
	assert.Equal(t, MethodCard, sess.Payment.Method)
	assert.Empty(t, sess.Payment.UPIApp)

	sess, err = f.svc.SelectPayment(ctx, "sid", MethodUPI, "paytm")
	require.NoError(t, err)
	assert.Equal(t, "paytm", sess.Payment.UPIApp)

	_, err = f.svc.SelectPayment(ctx, "sid", "CRYPTO", "")
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = f.svc.SelectPayment(ctx, "sid", MethodUPI, "venmo")
	assert.ErrorIs(t, err, ErrInvalidUPIApp)
}

func TestSelectPaymentOnlyOnPaymentStep(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "sid")
	require.NoError(t, err)

	_, err = f.svc.SelectPayment(ctx, "sid", MethodCard, "")
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestBackRetainsAddress(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "sid")
	require.NoError(t, err)
	_, err = f.svc.SubmitAddress(ctx, "sid", validAddress())
	require.NoError(t, err)

	sess, err := f.svc.Back(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, StepAddress, sess.Step)
	assert.Equal(t, "Ada Lovelace", sess.Address.FullName)
}

func TestConfirmCompletesOrder(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()

	// A search ran earlier in the session
	_, err := f.search.Search(ctx, "sid", "boots")
	require.NoError(t, err)

	_, err = f.svc.Start(ctx, "sid")
	require.NoError(t, err)
	_, err = f.svc.SubmitAddress(ctx, "sid", validAddress())
	require.NoError(t, err)

	completion, err := f.svc.Confirm(ctx, "sid")
	require.NoError(t, err)
	assert.NotEmpty(t, completion.OrderID)
	require.NotNil(t, completion.Receipt)
	assert.InDelta(t, 79.99, completion.Amount, 0.001)

	// Cart is cleared
	c, err := f.carts.Get(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// Search state is reset
	state, err := f.search.State(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, state.Query)

	// Wizard state is discarded
	_, err = f.svc.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNoSession)

	// Prize flow is entered
	prizeState, err := f.prizes.Get(ctx, "sid")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, prizeState.Amount, 50)
}

func TestConfirmRequiresPaymentStep(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "sid")
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "sid")
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, "sid")
	assert.ErrorIs(t, err, ErrWrongStep)
}
