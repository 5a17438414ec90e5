// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/smartshop-backend/internal/domain/cart"
	"github.com/your-org/smartshop-backend/internal/domain/payment"
	"github.com/your-org/smartshop-backend/internal/domain/prize"
	"github.com/your-org/smartshop-backend/internal/domain/product"
	"github.com/your-org/smartshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/smartshop-backend/internal/pkg/genai"
)

const (
	checkoutTTL = 24 * time.Hour

	// LocateFailedMessage is shown when geolocation autofill fails
	LocateFailedMessage = "Unable to retrieve your location. Please enter address manually."
)

var (
	// ErrEmptyCart is returned when checkout starts with nothing to buy
	ErrEmptyCart = errors.New("cannot start checkout with an empty cart")

	// ErrNoSession is returned when no checkout is in progress
	ErrNoSession = errors.New("no checkout session in progress")

	// ErrWrongStep is returned when an operation does not apply to the
	// session's current step
	ErrWrongStep = errors.New("operation not valid for current checkout step")

	// ErrInvalidMethod is returned for an unknown payment method
	ErrInvalidMethod = errors.New("invalid payment method")

	// ErrInvalidUPIApp is returned for an unknown UPI application
	ErrInvalidUPIApp = errors.New("invalid UPI app")
)

// Service drives the two-step checkout wizard and orchestrates order
// completion across the cart, search, prize and payment services
type Service struct {
	store     redis.Store
	carts     *cart.Service
	search    *product.Service
	prizes    *prize.Service
	processor payment.Processor
	ai        genai.Service
	logger    *logrus.Logger
}

// NewService creates a checkout service
func NewService(
	store redis.Store,
	carts *cart.Service,
	search *product.Service,
	prizes *prize.Service,
	processor payment.Processor,
	ai genai.Service,
	logger *logrus.Logger,
) *Service {
	return &Service{
		store:     store,
		carts:     carts,
		search:    search,
		prizes:    prizes,
		processor: processor,
		ai:        ai,
		logger:    logger,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("checkout:session:%s", sessionID)
}

// Start begins a fresh checkout for the session. The cart must hold at
// least one item. Any previous wizard state is replaced.
func (s *Service) Start(ctx context.Context, sessionID string) (*Session, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	sess := &Session{
		SessionID: sessionID,
		Step:      StepAddress,
		Payment: PaymentSelection{
			Method: MethodUPI,
			UPIApp: "gpay",
		},
		Errors:    []string{},
		StartedAt: time.Now().UTC(),
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the session's checkout state
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	var sess Session
	err := s.store.GetJSON(ctx, sessionKey(sessionID), &sess)
	if errors.Is(err, redis.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}
	if sess.Errors == nil {
		sess.Errors = []string{}
	}
	return &sess, nil
}

// SubmitAddress saves the address and advances to the payment step when
// every required field is present. Missing fields keep the session on
// the address step with one message per field.
func (s *Service) SubmitAddress(ctx context.Context, sessionID string, addr Address) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepAddress {
		return nil, ErrWrongStep
	}

	sess.Address = addr
	sess.Errors = addr.Validate()
	if sess.Errors == nil {
		sess.Errors = []string{}
	}
	if len(sess.Errors) == 0 {
		sess.Step = StepPayment
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Locate autofills address fields from device coordinates. Only fields
// the geocoder actually returned overwrite the form; a failure records
// a notice and never blocks manual entry.
func (s *Service) Locate(ctx context.Context, sessionID string, lat, lng float64) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepAddress {
		return nil, ErrWrongStep
	}

	hint, aiErr := s.ai.GeocodeFromCoordinates(ctx, lat, lng)
	if aiErr != nil || hint == nil {
		if aiErr != nil {
			s.logger.WithError(aiErr).Warn("geocode autofill failed")
		}
		sess.Errors = []string{LocateFailedMessage}
	} else {
		if hint.City != "" {
			sess.Address.City = hint.City
		}
		if hint.State != "" {
			sess.Address.State = hint.State
		}
		if hint.ZipCode != "" {
			sess.Address.ZipCode = hint.ZipCode
		}
		if hint.Country != "" {
			sess.Address.Country = hint.Country
		}
		sess.Errors = []string{}
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SelectPayment switches the active payment method on the payment step.
// Exactly one method is active; choosing UPI keeps or sets the app.
func (s *Service) SelectPayment(ctx context.Context, sessionID, method, upiApp string) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepPayment {
		return nil, ErrWrongStep
	}
	if !validMethod(method) {
		return nil, ErrInvalidMethod
	}

	sess.Payment.Method = method
	if method == MethodUPI {
		if upiApp == "" {
			upiApp = "gpay"
		}
		if !validUPIApp(upiApp) {
			return nil, ErrInvalidUPIApp
		}
		sess.Payment.UPIApp = upiApp
	} else {
		sess.Payment.UPIApp = ""
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Back returns from the payment step to the address step. The entered
// address is retained.
func (s *Service) Back(ctx context.Context, sessionID string) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepPayment {
		return nil, ErrWrongStep
	}

	sess.Step = StepAddress
	sess.Errors = []string{}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Confirm processes the simulated payment and completes the order:
// the cart empties, the search state resets, the wizard state is
// discarded and the session enters the prize flow. Payment submission
// has no failure path.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*Completion, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepPayment {
		return nil, ErrWrongStep
	}

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.processor.Process(ctx, c.Total, sess.Payment.Method)
	if err != nil {
		return nil, fmt.Errorf("payment processing interrupted: %w", err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := s.search.Reset(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, sessionKey(sessionID)); err != nil {
		return nil, fmt.Errorf("failed to close checkout session: %w", err)
	}
	if err := s.prizes.EnterSuccess(ctx, sessionID); err != nil {
		return nil, err
	}

	completion := &Completion{
		OrderID:     uuid.New().String(),
		Receipt:     receipt,
		Amount:      c.Total,
		CompletedAt: time.Now().UTC(),
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"order_id":   completion.OrderID,
		"amount":     completion.Amount,
		"method":     sess.Payment.Method,
	}).Info("order completed")

	return completion, nil
}

func (s *Service) save(ctx context.Context, sess *Session) error {
	if err := s.store.SetJSON(ctx, sessionKey(sess.SessionID), sess, checkoutTTL); err != nil {
		return fmt.Errorf("failed to save checkout session: %w", err)
	}
	return nil
}
