package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rosterhq/roster-api/internal/earnings"
	"github.com/rosterhq/roster-api/internal/models"
	"github.com/rosterhq/roster-api/internal/validation"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
)

type workShiftRepository interface {
	Snapshot(ctx context.Context, userID string) (map[string]models.WorkShift, error)
	ListOrdered(ctx context.Context, userID string) ([]models.WorkShift, error)
	GetByID(ctx context.Context, id, userID string) (*models.WorkShift, error)
	Create(ctx context.Context, shift *models.WorkShift) error
	Update(ctx context.Context, shift *models.WorkShift) error
	Delete(ctx context.Context, id, userID string) error
}

type workplaceReader interface {
	GetByID(ctx context.Context, id, userID string) (*models.Workplace, error)
}

// WorkShiftService manages work sessions and their estimated earnings.
type WorkShiftService struct {
	shifts      workShiftRepository
	workplaces  workplaceReader
	validator   *validator.Validate
	logger      *zap.Logger
	hub         *SnapshotHub
	agenda      agendaInvalidator
	hoursPerDay int
}

// NewWorkShiftService constructs the service. hoursPerDay is the divisor for
// Day-frequency rates; zero falls back to the standard eight-hour day.
func NewWorkShiftService(shifts workShiftRepository, workplaces workplaceReader, validate *validator.Validate, logger *zap.Logger, hub *SnapshotHub, agenda agendaInvalidator, hoursPerDay int) *WorkShiftService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if hoursPerDay <= 0 {
		hoursPerDay = earnings.DefaultStandardHoursPerDay
	}
	return &WorkShiftService{
		shifts:      shifts,
		workplaces:  workplaces,
		validator:   validate,
		logger:      logger,
		hub:         hub,
		agenda:      agenda,
		hoursPerDay: hoursPerDay,
	}
}

// WorkShiftRequest describes create/update payloads.
type WorkShiftRequest struct {
	WorkplaceID string    `json:"workplace_id" validate:"required"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Note        string    `json:"note"`
	SyncEvent   bool      `json:"sync_event"`
}

// Earning is the computed pay estimate for one shift.
type Earning struct {
	ShiftID   string           `json:"shift_id"`
	Workplace string           `json:"workplace"`
	Frequency models.Frequency `json:"frequency"`
	Rate      decimal.Decimal  `json:"rate"`
	Amount    decimal.Decimal  `json:"amount"`
}

// List returns the user's shifts as a keyed collection.
func (s *WorkShiftService) List(ctx context.Context, userID string) (map[string]models.WorkShift, error) {
	snapshot, err := s.shifts.Snapshot(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list work shifts")
	}
	return snapshot, nil
}

// Get returns one shift; a missing id maps to NOT_FOUND.
func (s *WorkShiftService) Get(ctx context.Context, id, userID string) (*models.WorkShift, error) {
	shift, err := s.shifts.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "work shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get work shift")
	}
	return shift, nil
}

// Create records a shift. The workplace name is copied onto the shift at
// write time so historical shifts survive workplace deletion.
func (s *WorkShiftService) Create(ctx context.Context, userID string, req WorkShiftRequest) (*models.WorkShift, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	wp, err := s.workplaceFor(ctx, req.WorkplaceID, userID)
	if err != nil {
		return nil, err
	}

	shift := models.WorkShift{
		UserID:      userID,
		WorkplaceID: wp.ID,
		Name:        wp.Name,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Note:        req.Note,
	}
	if fieldErrs := validation.ValidateWorkShift(shift); fieldErrs.HasErrors() {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fieldErrs)
	}
	if req.SyncEvent {
		shift.EventID = uuid.NewString()
	}

	if err := s.shifts.Create(ctx, &shift); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create work shift")
	}
	s.publishSnapshot(ctx, userID)
	return &shift, nil
}

// Update modifies a shift, refreshing the denormalized workplace name.
func (s *WorkShiftService) Update(ctx context.Context, id, userID string, req WorkShiftRequest) (*models.WorkShift, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	shift, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	wp, err := s.workplaceFor(ctx, req.WorkplaceID, userID)
	if err != nil {
		return nil, err
	}

	shift.WorkplaceID = wp.ID
	shift.Name = wp.Name
	shift.StartTime = req.StartTime
	shift.EndTime = req.EndTime
	shift.Note = req.Note
	if fieldErrs := validation.ValidateWorkShift(*shift); fieldErrs.HasErrors() {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fieldErrs)
	}
	switch {
	case req.SyncEvent && shift.EventID == "":
		shift.EventID = uuid.NewString()
	case !req.SyncEvent:
		shift.EventID = ""
	}

	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update work shift")
	}
	s.publishSnapshot(ctx, userID)
	return shift, nil
}

// Delete removes a shift.
func (s *WorkShiftService) Delete(ctx context.Context, id, userID string) error {
	if err := s.shifts.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "work shift not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete work shift")
	}
	s.publishSnapshot(ctx, userID)
	return nil
}

// Earning computes the pay estimate for a shift from its workplace's rate
// and frequency, rounded to cents.
func (s *WorkShiftService) Earning(ctx context.Context, id, userID string) (*Earning, error) {
	shift, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	wp, err := s.workplaceFor(ctx, shift.WorkplaceID, userID)
	if err != nil {
		return nil, err
	}

	amount := earnings.Calculate(wp.StandardRate, shift.StartTime, shift.EndTime, wp.Frequency, s.hoursPerDay)
	return &Earning{
		ShiftID:   shift.ID,
		Workplace: wp.Name,
		Frequency: wp.Frequency,
		Rate:      wp.StandardRate,
		Amount:    earnings.Round(amount),
	}, nil
}

func (s *WorkShiftService) workplaceFor(ctx context.Context, workplaceID, userID string) (*models.Workplace, error) {
	wp, err := s.workplaces.GetByID(ctx, workplaceID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "workplace not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load workplace")
	}
	return wp, nil
}

func (s *WorkShiftService) publishSnapshot(ctx context.Context, userID string) {
	if s.agenda != nil {
		s.agenda.Invalidate(ctx, userID, KindWorkShift)
	}
	if s.hub == nil {
		return
	}
	snapshot, err := s.shifts.Snapshot(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to publish work shift snapshot", zap.Error(err), zap.String("user_id", userID))
		return
	}
	s.hub.Publish(userID, KindWorkShift, snapshot)
}
