package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rosterhq/roster-api/internal/agenda"
	"github.com/rosterhq/roster-api/internal/models"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
)

// AgendaCache abstracts persistence for cached agenda payloads.
type AgendaCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type agendaShiftSource interface {
	Snapshot(ctx context.Context, userID string) (map[string]models.WorkShift, error)
}

type agendaAdhocSource interface {
	Snapshot(ctx context.Context, userID string) (map[string]models.Adhoc, error)
}

// AgendaService builds date-bucketed agenda views over a user's records,
// serving repeat requests from Redis until a write invalidates them.
type AgendaService struct {
	shifts  agendaShiftSource
	adhocs  agendaAdhocSource
	cache   AgendaCache
	metrics *MetricsService
	logger  *zap.Logger
	window  agenda.Window
	ttl     time.Duration
	now     func() time.Time
}

// NewAgendaService constructs the service. A zero window falls back to the
// default display range; a non-positive ttl disables expiry-based reuse.
func NewAgendaService(shifts agendaShiftSource, adhocs agendaAdhocSource, cache AgendaCache, metrics *MetricsService, logger *zap.Logger, window agenda.Window, ttl time.Duration) *AgendaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window.MonthsBack <= 0 && window.MonthsForward <= 0 {
		window = agenda.DefaultWindow
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AgendaService{
		shifts:  shifts,
		adhocs:  adhocs,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		window:  window,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Shifts returns the agenda built from the user's work shifts. The boolean
// reports whether the payload came from cache.
func (s *AgendaService) Shifts(ctx context.Context, userID string) (json.RawMessage, bool, error) {
	return s.agendaFor(ctx, userID, KindWorkShift, func() (agenda.Result, error) {
		snapshot, err := s.shifts.Snapshot(ctx, userID)
		if err != nil {
			return agenda.Result{}, err
		}
		return agenda.Build(snapshot, s.now(), s.window), nil
	})
}

// Adhocs returns the agenda built from the user's adhoc exceptions. The
// boolean reports whether the payload came from cache.
func (s *AgendaService) Adhocs(ctx context.Context, userID string) (json.RawMessage, bool, error) {
	return s.agendaFor(ctx, userID, KindAdhoc, func() (agenda.Result, error) {
		snapshot, err := s.adhocs.Snapshot(ctx, userID)
		if err != nil {
			return agenda.Result{}, err
		}
		return agenda.Build(snapshot, s.now(), s.window), nil
	})
}

// Invalidate drops the cached agenda for one user's record kind. Callers
// invoke it after every write so the next read rebuilds.
func (s *AgendaService) Invalidate(ctx context.Context, userID, kind string) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, agendaCacheKey(kind, userID)); err != nil {
		s.logger.Warn("agenda cache invalidate failed",
			zap.String("kind", kind), zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *AgendaService) agendaFor(ctx context.Context, userID, kind string, build func() (agenda.Result, error)) (json.RawMessage, bool, error) {
	key := agendaCacheKey(kind, userID)

	if s.cache != nil {
		var cached json.RawMessage
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true)
			}
			return cached, true, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("agenda cache get failed", zap.String("key", key), zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false)
		}
	}

	start := time.Now()
	result, err := build()
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build agenda")
	}
	if s.metrics != nil {
		s.metrics.ObserveAgendaBuild(kind, time.Since(start))
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode agenda")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, json.RawMessage(payload), s.ttl); err != nil {
			s.logger.Warn("agenda cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return payload, false, nil
}

func agendaCacheKey(kind, userID string) string {
	return fmt.Sprintf("roster:agenda:%s:%s", kind, userID)
}
