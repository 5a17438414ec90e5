// internal/domain/prize/service_test.go
package prize

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

// flakyStore fails the nth SetJSON call, counted from construction
type flakyStore struct {
	*memStore
	calls  int
	failOn int
}

func (s *flakyStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.calls++
	if s.calls == s.failOn {
		return errors.New("write failed")
	}
	return s.memStore.SetJSON(ctx, key, value, ttl)
}

type stubAI struct {
	genai.Service
	translateFn func(ctx context.Context, amount int) ([]genai.Translation, error)
	calls       int
}

func (s *stubAI) TranslatePrizeAmount(ctx context.Context, amount int) ([]genai.Translation, error) {
	s.calls++
	if s.translateFn == nil {
		return []genai.Translation{}, nil
	}
	return s.translateFn(ctx, amount)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestDrawAmountRange(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		amount := drawAmount()
		assert.GreaterOrEqual(t, amount, 50)
		assert.LessOrEqual(t, amount, 950)
		assert.Zero(t, amount%10, "amount must be a multiple of 10")
		seen[amount] = true
	}
	assert.Greater(t, len(seen), 30, "draws should spread across the range")
}

func TestEnterSuccessResetsState(t *testing.T) {
	svc := NewService(newMemStore(), &stubAI{}, quietLogger())
	ctx := context.Background()

	require.NoError(t, svc.EnterSuccess(ctx, "sid"))

	state, err := svc.Get(ctx, "sid")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, state.Amount, 50)
	assert.False(t, state.Revealed)
	assert.False(t, state.Revealing)
	assert.Empty(t, state.Translations)
}

func TestGetWithoutOrder(t *testing.T) {
	svc := NewService(newMemStore(), &stubAI{}, quietLogger())

	_, err := svc.Get(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrNoPrize)
}

func TestRevealFetchesTranslations(t *testing.T) {
	ai := &stubAI{translateFn: func(ctx context.Context, amount int) ([]genai.Translation, error) {
		return []genai.Translation{{Language: "English", Message: "₹100 – One Hundred Rupees"}}, nil
	}}
	svc := NewService(newMemStore(), ai, quietLogger())
	ctx := context.Background()

	require.NoError(t, svc.EnterSuccess(ctx, "sid"))

	state, err := svc.Reveal(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, state.Revealed)
	assert.False(t, state.Revealing)
	require.Len(t, state.Translations, 1)
}

func TestRevealKeepsAmountOnReReveal(t *testing.T) {
	ai := &stubAI{}
	svc := NewService(newMemStore(), ai, quietLogger())
	ctx := context.Background()

	require.NoError(t, svc.EnterSuccess(ctx, "sid"))
	first, err := svc.Reveal(ctx, "sid")
	require.NoError(t, err)

	second, err := svc.Reveal(ctx, "sid")
	require.NoError(t, err)

	assert.Equal(t, first.Amount, second.Amount, "re-reveal keeps the drawn amount")
	assert.Equal(t, 2, ai.calls, "re-reveal re-fetches translations")
}

func TestRevealRedrawsOnNewOrder(t *testing.T) {
	svc := NewService(newMemStore(), &stubAI{}, quietLogger())
	ctx := context.Background()

	amounts := make(map[int]bool)
	for i := 0; i < 50; i++ {
		require.NoError(t, svc.EnterSuccess(ctx, "sid"))
		state, err := svc.Get(ctx, "sid")
		require.NoError(t, err)
		amounts[state.Amount] = true
	}
	assert.Greater(t, len(amounts), 1, "each order draws a fresh amount")
}

func TestRevealGuardsConcurrentReveal(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, &stubAI{}, quietLogger())
	ctx := context.Background()

	require.NoError(t, svc.EnterSuccess(ctx, "sid"))

	// Simulate a reveal already in flight
	state, err := svc.Get(ctx, "sid")
	require.NoError(t, err)
	state.Revealing = true
	require.NoError(t, store.SetJSON(ctx, prizeKey("sid"), state, time.Hour))

	_, err = svc.Reveal(ctx, "sid")
	assert.ErrorIs(t, err, ErrRevealInProgress)
}

func TestRevealSaveFailureReleasesGuard(t *testing.T) {
	// EnterSuccess is write 1, the in-flight flag write 2; the save of
	// the fetched translations (write 3) fails.
	store := &flakyStore{memStore: newMemStore(), failOn: 3}
	svc := NewService(store, &stubAI{}, quietLogger())
	ctx := context.Background()

	require.NoError(t, svc.EnterSuccess(ctx, "sid"))

	_, err := svc.Reveal(ctx, "sid")
	require.Error(t, err)

	state, err := svc.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, state.Revealing, "failed reveal must not leave the guard set")

	_, err = svc.Reveal(ctx, "sid")
	assert.NoError(t, err, "session recovers on the next reveal")
}

func TestRevealSurvivesTranslationFailure(t *testing.T) {
	ai := &stubAI{translateFn: func(ctx context.Context, amount int) ([]genai.Translation, error) {
		return nil, errors.New("backend down")
	}}
	svc := NewService(newMemStore(), ai, quietLogger())
	ctx := context.Background()

	require.NoError(t, svc.EnterSuccess(ctx, "sid"))

	state, err := svc.Reveal(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, state.Revealed)
	assert.Empty(t, state.Translations)
}

func sampleTranslations() []genai.Translation {
	return []genai.Translation{
		{Language: "English", Message: "₹100 – One Hundred Rupees"},
		{Language: "Hindi", Message: "₹100 – सौ रुपये"},
		{Language: "Malayalam", Message: "₹100 – നൂറ് രൂപ"},
	}
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	result := Filter(sampleTranslations(), "mAlAy")
	require.Len(t, result.Translations, 1)
	assert.Equal(t, "Malayalam", result.Translations[0].Language)
	assert.Empty(t, result.Notice)
}

func TestFilterEmptyKeepsAll(t *testing.T) {
	result := Filter(sampleTranslations(), "")
	assert.Len(t, result.Translations, 3)

	result = Filter(sampleTranslations(), "   ")
	assert.Len(t, result.Translations, 3)
}

func TestFilterNoMatchNotice(t *testing.T) {
	result := Filter(sampleTranslations(), "klingon")
	assert.Empty(t, result.Translations)
	assert.Equal(t, `No languages match "klingon"`, result.Notice)
}

func TestFilteredRequiresPrize(t *testing.T) {
	svc := NewService(newMemStore(), &stubAI{}, quietLogger())

	_, err := svc.Filtered(context.Background(), "sid", "english")
	assert.ErrorIs(t, err, ErrNoPrize)
}
