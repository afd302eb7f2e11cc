package service

import (
	"context"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/rosterhq/roster-api/internal/models"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
)

type calendarShiftSource interface {
	ListOrdered(ctx context.Context, userID string) ([]models.WorkShift, error)
}

// CalendarService renders a user's shifts as an iCalendar feed that phone
// and desktop calendar apps can subscribe to.
type CalendarService struct {
	shifts   calendarShiftSource
	logger   *zap.Logger
	prodID   string
	feedName string
}

// NewCalendarService constructs the service.
func NewCalendarService(shifts calendarShiftSource, logger *zap.Logger, prodID, feedName string) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prodID == "" {
		prodID = "-//rosterhq//roster-api//EN"
	}
	if feedName == "" {
		feedName = "Work shifts"
	}
	return &CalendarService{shifts: shifts, logger: logger, prodID: prodID, feedName: feedName}
}

// ShiftFeed serializes every shift of the user into a VCALENDAR document.
// Shifts are emitted in start-time order; the shift id doubles as the event
// UID unless the shift carries an external event id.
func (s *CalendarService) ShiftFeed(ctx context.Context, userID string) (string, error) {
	shifts, err := s.shifts.ListOrdered(ctx, userID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shifts for calendar feed")
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(s.prodID)
	cal.SetName(s.feedName)

	for _, shift := range shifts {
		uid := shift.EventID
		if uid == "" {
			uid = shift.ID
		}
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(shift.UpdatedAt.UTC())
		ev.SetCreatedTime(shift.CreatedAt.UTC())
		ev.SetModifiedAt(shift.UpdatedAt.UTC())
		ev.SetStartAt(shift.StartTime.UTC())
		ev.SetEndAt(shift.EndTime.UTC())
		ev.SetSummary(shift.Name)
		if shift.Note != "" {
			ev.SetDescription(shift.Note)
		}
	}

	return cal.Serialize(), nil
}
