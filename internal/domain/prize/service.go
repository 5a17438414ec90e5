// internal/domain/prize/service.go
package prize

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/smartshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/smartshop-backend/internal/pkg/genai"
)

const prizeTTL = 24 * time.Hour

var (
	// ErrNoPrize is returned when the session has not completed an order
	ErrNoPrize = errors.New("no prize for this session")

	// ErrRevealInProgress is returned when a reveal is already running
	ErrRevealInProgress = errors.New("prize reveal already in progress")
)

// State is the per-session prize flow: the drawn amount, whether it has
// been revealed and the fetched translations
type State struct {
	Amount       int                 `json:"amount"`
	Revealed     bool                `json:"revealed"`
	Revealing    bool                `json:"revealing"`
	Translations []genai.Translation `json:"translations"`
	Filter       string              `json:"filter"`
	EnteredAt    time.Time           `json:"entered_at"`
}

// FilterResult is a filtered translation view with an optional
// no-match notice
type FilterResult struct {
	Translations []genai.Translation `json:"translations"`
	Notice       string              `json:"notice,omitempty"`
}

// Service manages the post-purchase prize flow
type Service struct {
	store  redis.Store
	ai     genai.Service
	logger *logrus.Logger
}

// NewService creates a prize service
func NewService(store redis.Store, ai genai.Service, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		ai:     ai,
		logger: logger,
	}
}

func prizeKey(sessionID string) string {
	return fmt.Sprintf("prize:session:%s", sessionID)
}

// drawAmount picks a uniform multiple of ten between 50 and 950
func drawAmount() int {
	return 50 + 10*rand.Intn(91)
}

// EnterSuccess draws a fresh prize for a completed order and resets the
// reveal state. Each completed order redraws; nothing else does.
func (s *Service) EnterSuccess(ctx context.Context, sessionID string) error {
	state := &State{
		Amount:       drawAmount(),
		Translations: []genai.Translation{},
		EnteredAt:    time.Now().UTC(),
	}
	if err := s.save(ctx, sessionID, state); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"amount":     state.Amount,
	}).Debug("prize drawn")
	return nil
}

// Get returns the session's prize state
func (s *Service) Get(ctx context.Context, sessionID string) (*State, error) {
	var state State
	err := s.store.GetJSON(ctx, prizeKey(sessionID), &state)
	if errors.Is(err, redis.ErrNotFound) {
		return nil, ErrNoPrize
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load prize state: %w", err)
	}
	if state.Translations == nil {
		state.Translations = []genai.Translation{}
	}
	return &state, nil
}

// Reveal fetches the localized announcements for the drawn amount.
// Only one reveal may run at a time per session; revealing again after
// completion re-fetches translations for the same amount.
func (s *Service) Reveal(ctx context.Context, sessionID string) (*State, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Revealing {
		return nil, ErrRevealInProgress
	}

	state.Revealing = true
	if err := s.save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	translations, aiErr := s.ai.TranslatePrizeAmount(ctx, state.Amount)
	if aiErr != nil {
		s.logger.WithError(aiErr).Warn("prize translation fetch failed")
		translations = []genai.Translation{}
	}
	if translations == nil {
		translations = []genai.Translation{}
	}

	state.Revealing = false
	state.Revealed = true
	state.Translations = translations
	state.Filter = ""
	if err := s.save(ctx, sessionID, state); err != nil {
		// The persisted guard must not outlive a dead request, or the
		// session stays locked out of the reveal until the TTL expires
		s.releaseRevealGuard(sessionID, state)
		return nil, err
	}
	return state, nil
}

// releaseRevealGuard clears the in-flight flag on a fresh context so a
// canceled request cannot wedge the session
func (s *Service) releaseRevealGuard(sessionID string, state *State) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	state.Revealing = false
	if err := s.save(ctx, sessionID, state); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Warn("failed to release reveal guard")
	}
}

// Filtered returns the session's translations narrowed by a language
// filter
func (s *Service) Filtered(ctx context.Context, sessionID, filter string) (*FilterResult, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	result := Filter(state.Translations, filter)

	state.Filter = filter
	if err := s.save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return result, nil
}

// Filter narrows translations by case-insensitive substring match on
// the language label. An empty filter keeps everything; no matches
// yield a notice naming the filter.
func Filter(translations []genai.Translation, filter string) *FilterResult {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return &FilterResult{Translations: translations}
	}

	matched := make([]genai.Translation, 0, len(translations))
	for _, tr := range translations {
		if strings.Contains(strings.ToLower(tr.Language), needle) {
			matched = append(matched, tr)
		}
	}

	result := &FilterResult{Translations: matched}
	if len(matched) == 0 {
		result.Notice = fmt.Sprintf("No languages match %q", filter)
	}
	return result
}

func (s *Service) save(ctx context.Context, sessionID string, state *State) error {
	if err := s.store.SetJSON(ctx, prizeKey(sessionID), state, prizeTTL); err != nil {
		return fmt.Errorf("failed to save prize state: %w", err)
	}
	return nil
}
