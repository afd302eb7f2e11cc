package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rosterhq/roster-api/internal/models"
	"github.com/rosterhq/roster-api/internal/validation"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
)

type timeSlotRepository interface {
	Snapshot(ctx context.Context, userID string) (map[string]models.TimeSlot, error)
	GetByID(ctx context.Context, id, userID string) (*models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	Update(ctx context.Context, slot *models.TimeSlot) error
	Delete(ctx context.Context, id, userID string) error
}

type adhocRepository interface {
	Snapshot(ctx context.Context, userID string) (map[string]models.Adhoc, error)
	GetByID(ctx context.Context, id, userID string) (*models.Adhoc, error)
	Create(ctx context.Context, adhoc *models.Adhoc) error
	Update(ctx context.Context, adhoc *models.Adhoc) error
	Delete(ctx context.Context, id, userID string) error
}

type agendaInvalidator interface {
	Invalidate(ctx context.Context, userID, kind string)
}

// AvailabilityService manages recurring weekly slots and one-off adhoc
// exceptions.
type AvailabilityService struct {
	slots     timeSlotRepository
	adhocs    adhocRepository
	validator *validator.Validate
	logger    *zap.Logger
	hub       *SnapshotHub
	agenda    agendaInvalidator
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(slots timeSlotRepository, adhocs adhocRepository, validate *validator.Validate, logger *zap.Logger, hub *SnapshotHub, agenda agendaInvalidator) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{slots: slots, adhocs: adhocs, validator: validate, logger: logger, hub: hub, agenda: agenda}
}

// TimeSlotRequest describes create/update payloads for weekly slots.
type TimeSlotRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Day       string    `json:"day" validate:"required"`
}

// AdhocRequest describes create/update payloads for adhoc exceptions.
type AdhocRequest struct {
	IsAvailable bool      `json:"is_available"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Note        string    `json:"note"`
}

// ListTimeSlots returns the user's weekly slots keyed by id.
func (s *AvailabilityService) ListTimeSlots(ctx context.Context, userID string) (map[string]models.TimeSlot, error) {
	snapshot, err := s.slots.Snapshot(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	return snapshot, nil
}

// GetTimeSlot returns one weekly slot.
func (s *AvailabilityService) GetTimeSlot(ctx context.Context, id, userID string) (*models.TimeSlot, error) {
	slot, err := s.slots.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get time slot")
	}
	return slot, nil
}

// CreateTimeSlot registers a weekly availability window.
func (s *AvailabilityService) CreateTimeSlot(ctx context.Context, userID string, req TimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	slot := models.TimeSlot{UserID: userID, StartTime: req.StartTime, EndTime: req.EndTime, Day: req.Day}
	if fieldErrs := validation.ValidateTimeSlot(slot); fieldErrs.HasErrors() {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fieldErrs)
	}
	if err := s.slots.Create(ctx, &slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create time slot")
	}
	s.publishTimeSlots(ctx, userID)
	return &slot, nil
}

// UpdateTimeSlot modifies a weekly availability window.
func (s *AvailabilityService) UpdateTimeSlot(ctx context.Context, id, userID string, req TimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	slot, err := s.GetTimeSlot(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.Day = req.Day
	if fieldErrs := validation.ValidateTimeSlot(*slot); fieldErrs.HasErrors() {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fieldErrs)
	}
	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update time slot")
	}
	s.publishTimeSlots(ctx, userID)
	return slot, nil
}

// DeleteTimeSlot removes a weekly availability window.
func (s *AvailabilityService) DeleteTimeSlot(ctx context.Context, id, userID string) error {
	if err := s.slots.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete time slot")
	}
	s.publishTimeSlots(ctx, userID)
	return nil
}

// ListAdhocs returns the user's adhoc exceptions keyed by id.
func (s *AvailabilityService) ListAdhocs(ctx context.Context, userID string) (map[string]models.Adhoc, error) {
	snapshot, err := s.adhocs.Snapshot(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list adhocs")
	}
	return snapshot, nil
}

// GetAdhoc returns one adhoc exception.
func (s *AvailabilityService) GetAdhoc(ctx context.Context, id, userID string) (*models.Adhoc, error) {
	adhoc, err := s.adhocs.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "adhoc not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get adhoc")
	}
	return adhoc, nil
}

// CreateAdhoc registers a one-off availability exception.
func (s *AvailabilityService) CreateAdhoc(ctx context.Context, userID string, req AdhocRequest) (*models.Adhoc, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	adhoc := models.Adhoc{UserID: userID, IsAvailable: req.IsAvailable, StartTime: req.StartTime, EndTime: req.EndTime, Note: req.Note}
	if fieldErrs := validation.ValidateAdhoc(adhoc); fieldErrs.HasErrors() {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fieldErrs)
	}
	if err := s.adhocs.Create(ctx, &adhoc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create adhoc")
	}
	s.publishAdhocs(ctx, userID)
	return &adhoc, nil
}

// UpdateAdhoc modifies a one-off availability exception.
func (s *AvailabilityService) UpdateAdhoc(ctx context.Context, id, userID string, req AdhocRequest) (*models.Adhoc, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	adhoc, err := s.GetAdhoc(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	adhoc.IsAvailable = req.IsAvailable
	adhoc.StartTime = req.StartTime
	adhoc.EndTime = req.EndTime
	adhoc.Note = req.Note
	if fieldErrs := validation.ValidateAdhoc(*adhoc); fieldErrs.HasErrors() {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fieldErrs)
	}
	if err := s.adhocs.Update(ctx, adhoc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update adhoc")
	}
	s.publishAdhocs(ctx, userID)
	return adhoc, nil
}

// DeleteAdhoc removes a one-off availability exception.
func (s *AvailabilityService) DeleteAdhoc(ctx context.Context, id, userID string) error {
	if err := s.adhocs.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "adhoc not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete adhoc")
	}
	s.publishAdhocs(ctx, userID)
	return nil
}

func (s *AvailabilityService) publishTimeSlots(ctx context.Context, userID string) {
	if s.hub != nil {
		if snapshot, err := s.slots.Snapshot(ctx, userID); err == nil {
			s.hub.Publish(userID, KindTimeSlot, snapshot)
		} else {
			s.logger.Warn("failed to publish time slot snapshot", zap.Error(err), zap.String("user_id", userID))
		}
	}
}

func (s *AvailabilityService) publishAdhocs(ctx context.Context, userID string) {
	if s.agenda != nil {
		s.agenda.Invalidate(ctx, userID, KindAdhoc)
	}
	if s.hub != nil {
		if snapshot, err := s.adhocs.Snapshot(ctx, userID); err == nil {
			s.hub.Publish(userID, KindAdhoc, snapshot)
		} else {
			s.logger.Warn("failed to publish adhoc snapshot", zap.Error(err), zap.String("user_id", userID))
		}
	}
}
