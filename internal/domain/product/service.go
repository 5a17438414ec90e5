// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/smartshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/smartshop-backend/internal/pkg/genai"
)

const (
	searchStateTTL = 24 * time.Hour

	// SearchFailedMessage is shown when the AI backend fails outright
	SearchFailedMessage = "Failed to find products. Try again."
)

// ErrEmptyQuery is returned when a search query is blank
var ErrEmptyQuery = errors.New("search query cannot be empty")

// ErrProductNotFound is returned when a product id is not in the
// session's current results
var ErrProductNotFound = errors.New("product not found")

// Service runs AI-backed product search with per-session state
type Service struct {
	store  redis.Store
	ai     genai.Service
	logger *logrus.Logger
}

// NewService creates a product search service
func NewService(store redis.Store, ai genai.Service, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		ai:     ai,
		logger: logger,
	}
}

func stateKey(sessionID string) string {
	return fmt.Sprintf("search:state:%s", sessionID)
}

func tokenKey(sessionID string) string {
	return fmt.Sprintf("search:token:%s", sessionID)
}

// Search runs one search for the session. Each call takes a fresh
// monotonic token; if another search starts before this one finishes,
// the older completion is discarded instead of overwriting the newer
// results.
func (s *Service) Search(ctx context.Context, sessionID, query string) (*SearchState, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	token, err := s.store.Increment(ctx, tokenKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to issue search token: %w", err)
	}

	state := &SearchState{
		Query:   query,
		Results: []Product{},
		Loading: true,
		Token:   token,
	}
	if err := s.store.SetJSON(ctx, stateKey(sessionID), state, searchStateTTL); err != nil {
		return nil, fmt.Errorf("failed to save search state: %w", err)
	}

	results, aiErr := s.ai.SearchProducts(ctx, query)

	state.Loading = false
	if aiErr != nil {
		s.logger.WithError(aiErr).WithField("query", query).Error("product search failed")
		state.Error = SearchFailedMessage
		state.Results = []Product{}
	} else {
		state.Results = FromResults(results)
	}

	superseded, err := s.isSuperseded(ctx, sessionID, token)
	if err != nil {
		return nil, err
	}
	if superseded {
		s.logger.WithFields(logrus.Fields{
			"query": query,
			"token": token,
		}).Debug("discarding superseded search completion")
		return s.State(ctx, sessionID)
	}

	if err := s.store.SetJSON(ctx, stateKey(sessionID), state, searchStateTTL); err != nil {
		return nil, fmt.Errorf("failed to save search results: %w", err)
	}
	return state, nil
}

// State returns the session's current search view, empty if none exists
func (s *Service) State(ctx context.Context, sessionID string) (*SearchState, error) {
	var state SearchState
	err := s.store.GetJSON(ctx, stateKey(sessionID), &state)
	if errors.Is(err, redis.ErrNotFound) {
		return &SearchState{Results: []Product{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load search state: %w", err)
	}
	if state.Results == nil {
		state.Results = []Product{}
	}
	return &state, nil
}

// Find returns a product from the session's current results by id
func (s *Service) Find(ctx context.Context, sessionID, productID string) (*Product, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range state.Results {
		if state.Results[i].ID == productID {
			return &state.Results[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// Reset clears the session's search state, used when an order completes
// and the session returns home
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, stateKey(sessionID)); err != nil {
		return fmt.Errorf("failed to reset search state: %w", err)
	}
	return nil
}

func (s *Service) isSuperseded(ctx context.Context, sessionID string, token int64) (bool, error) {
	var latest int64
	err := s.store.GetJSON(ctx, tokenKey(sessionID), &latest)
	if errors.Is(err, redis.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check search token: %w", err)
	}
	return latest != token, nil
}
