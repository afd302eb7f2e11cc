package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rosterhq/roster-api/internal/models"
	"github.com/rosterhq/roster-api/internal/validation"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
)

type profileRepository interface {
	GetByUser(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
}

// ProfileService manages the personal details attached to an account.
type ProfileService struct {
	repo   profileRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewProfileService constructs the service.
func NewProfileService(repo profileRepository, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, logger: logger, now: time.Now}
}

// ProfileRequest describes the save payload. A user writes only one profile;
// saving again replaces the previous details.
type ProfileRequest struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Gender       string    `json:"gender"`
	Birthday     time.Time `json:"birthday"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Postcode     string    `json:"postcode"`
}

// Get returns the user's profile, or not-found when none was saved yet.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get profile")
	}
	return profile, nil
}

// Save validates and upserts the user's profile.
func (s *ProfileService) Save(ctx context.Context, userID string, req ProfileRequest) (*models.Profile, error) {
	profile := models.Profile{
		UserID:       userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       req.Gender,
		Birthday:     req.Birthday,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Postcode:     req.Postcode,
	}
	if fieldErrs := validation.ValidateProfile(profile, s.now()); fieldErrs.HasErrors() {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fieldErrs)
	}
	if err := s.repo.Upsert(ctx, &profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save profile")
	}
	return &profile, nil
}
