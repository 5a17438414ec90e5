// internal/domain/profile/service.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/smartshop-backend/internal/pkg/genai"
	"github.com/your-org/smartshop-backend/internal/pkg/imaging"
)

var (
	// ErrInvalidProfile is returned when an update drops name or email
	ErrInvalidProfile = errors.New("profile requires a name and email")

	// ErrNoAvatar is returned when an avatar operation has nothing to
	// work on
	ErrNoAvatar = errors.New("no avatar uploaded")
)

// Service manages the user profile and its avatar pipeline
type Service struct {
	store     Store
	processor *imaging.Processor
	ai        genai.Service
	logger    *logrus.Logger
}

// NewService creates a profile service
func NewService(store Store, processor *imaging.Processor, ai genai.Service, logger *logrus.Logger) *Service {
	return &Service{
		store:     store,
		processor: processor,
		ai:        ai,
		logger:    logger,
	}
}

// Get returns the stored profile, falling back to the guest identity
// when nothing usable is saved
func (s *Service) Get(ctx context.Context, sessionID string) (*UserProfile, error) {
	p, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return DefaultProfile(), nil
	}
	if err != nil {
		s.logger.WithError(err).Warn("profile load failed, using guest identity")
		return DefaultProfile(), nil
	}
	if !p.valid() {
		return DefaultProfile(), nil
	}
	return p, nil
}

// Update saves the editable identity fields. The avatar is untouched.
func (s *Service) Update(ctx context.Context, sessionID, name, email, phone string) (*UserProfile, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, ErrInvalidProfile
	}

	p, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(name)
	p.Email = strings.TrimSpace(email)
	p.Phone = strings.TrimSpace(phone)

	if err := s.store.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UploadAvatar runs an uploaded image through the preprocessor and
// stores the result. Undecodable input fails the upload and leaves any
// existing avatar in place.
func (s *Service) UploadAvatar(ctx context.Context, sessionID string, r io.Reader) (*UserProfile, error) {
	dataURL, err := s.processor.Process(r)
	if err != nil {
		return nil, fmt.Errorf("avatar processing failed: %w", err)
	}

	p, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	p.Avatar = dataURL
	if err := s.store.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// EnhanceAvatar sends the current avatar through the AI image model.
// When the model returns no image the existing avatar stays.
func (s *Service) EnhanceAvatar(ctx context.Context, sessionID string) (*UserProfile, error) {
	p, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if p.Avatar == "" {
		return nil, ErrNoAvatar
	}

	enhanced, err := s.ai.EnhanceProfileImage(ctx, p.Avatar)
	if err != nil {
		return nil, fmt.Errorf("avatar enhancement failed: %w", err)
	}
	if enhanced == "" {
		s.logger.Debug("enhancement returned no image, keeping current avatar")
		return p, nil
	}

	p.Avatar = enhanced
	if err := s.store.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveAvatar clears the stored avatar
func (s *Service) RemoveAvatar(ctx context.Context, sessionID string) (*UserProfile, error) {
	p, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	p.Avatar = ""
	if err := s.store.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return p, nil
}
