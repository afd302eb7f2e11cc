package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rosterhq/roster-api/internal/models"
	"github.com/rosterhq/roster-api/internal/validation"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
)

type workplaceRepository interface {
	Snapshot(ctx context.Context, userID string) (map[string]models.Workplace, error)
	GetByID(ctx context.Context, id, userID string) (*models.Workplace, error)
	ExistsByName(ctx context.Context, userID, name, excludeID string) (bool, error)
	Create(ctx context.Context, wp *models.Workplace) error
	Update(ctx context.Context, wp *models.Workplace) error
	Delete(ctx context.Context, id, userID string) error
}

// WorkplaceService manages employer records.
type WorkplaceService struct {
	repo      workplaceRepository
	validator *validator.Validate
	logger    *zap.Logger
	hub       *SnapshotHub
}

// NewWorkplaceService constructs the service.
func NewWorkplaceService(repo workplaceRepository, validate *validator.Validate, logger *zap.Logger, hub *SnapshotHub) *WorkplaceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkplaceService{repo: repo, validator: validate, logger: logger, hub: hub}
}

// WorkplaceRequest describes create/update payloads.
type WorkplaceRequest struct {
	Name         string          `json:"name" validate:"required"`
	ABN          string          `json:"abn" validate:"required"`
	Address      string          `json:"address" validate:"required"`
	ContactName  string          `json:"contact_name" validate:"required"`
	ContactPhone string          `json:"contact_phone" validate:"required"`
	ContactEmail string          `json:"contact_email" validate:"required"`
	Frequency    string          `json:"frequency" validate:"required"`
	StandardRate decimal.Decimal `json:"standard_rate"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"`
}

func (r WorkplaceRequest) toModel(userID string) models.Workplace {
	return models.Workplace{
		UserID:       userID,
		Name:         r.Name,
		ABN:          r.ABN,
		Address:      r.Address,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
		Frequency:    models.Frequency(r.Frequency),
		StandardRate: r.StandardRate,
		OvertimeRate: r.OvertimeRate,
	}
}

// List returns the user's workplaces as a keyed collection.
func (s *WorkplaceService) List(ctx context.Context, userID string) (map[string]models.Workplace, error) {
	snapshot, err := s.repo.Snapshot(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list workplaces")
	}
	return snapshot, nil
}

// Get returns one workplace; a missing id maps to NOT_FOUND.
func (s *WorkplaceService) Get(ctx context.Context, id, userID string) (*models.Workplace, error) {
	wp, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "workplace not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get workplace")
	}
	return wp, nil
}

// Create registers a new workplace after field validation and the per-user
// name uniqueness check.
func (s *WorkplaceService) Create(ctx context.Context, userID string, req WorkplaceRequest) (*models.Workplace, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	wp := req.toModel(userID)
	if fieldErrs := validation.ValidateWorkplace(wp); fieldErrs.HasErrors() {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fieldErrs)
	}

	duplicate, err := s.repo.ExistsByName(ctx, userID, wp.Name, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check workplace name")
	}
	if duplicate {
		return nil, appErrors.Clone(appErrors.ErrDuplicateName, "a workplace with the same name already exists")
	}

	if err := s.repo.Create(ctx, &wp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create workplace")
	}
	s.publishSnapshot(ctx, userID)
	return &wp, nil
}

// Update modifies a workplace, keeping the duplicate-name rule.
func (s *WorkplaceService) Update(ctx context.Context, id, userID string, req WorkplaceRequest) (*models.Workplace, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	updated := req.toModel(userID)
	if fieldErrs := validation.ValidateWorkplace(updated); fieldErrs.HasErrors() {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fieldErrs)
	}

	existing, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "workplace not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load workplace")
	}

	duplicate, err := s.repo.ExistsByName(ctx, userID, updated.Name, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check workplace name")
	}
	if duplicate {
		return nil, appErrors.Clone(appErrors.ErrDuplicateName, "a workplace with the same name already exists")
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update workplace")
	}
	s.publishSnapshot(ctx, userID)
	return &updated, nil
}

// Delete removes a workplace.
func (s *WorkplaceService) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "workplace not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete workplace")
	}
	s.publishSnapshot(ctx, userID)
	return nil
}

func (s *WorkplaceService) publishSnapshot(ctx context.Context, userID string) {
	if s.hub == nil {
		return
	}
	snapshot, err := s.repo.Snapshot(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to publish workplace snapshot", zap.Error(err), zap.String("user_id", userID))
		return
	}
	s.hub.Publish(userID, KindWorkplace, snapshot)
}
