package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"

	"ai-assist-service/domain"
)

const (
	dayLayout = "2006-01-02"
)

type QuotaRepo interface {
	Get(ctx context.Context, deviceId string) (domain.QuotaState, error)
	Set(ctx context.Context, deviceId string, state domain.QuotaState) error
}

// Quota enforces the per-device daily limit. The window is aligned to the
// calendar day in the service's local timezone, the reset is observed lazily
// on the next access instead of by a scheduled job.
type Quota struct {
	repo   QuotaRepo
	limit  int64
	logger log.Logger
	lock   sync.Mutex
}

func NewQuota(repo QuotaRepo, limit int64, logger log.Logger) *Quota {
	return &Quota{
		repo:   repo,
		limit:  limit,
		logger: logger,
	}
}

// Check is read-only. A stale stored day implies a fresh allowance, but the
// implied reset is persisted only by Increment, so inspection never burns
// stored state. Storage failures do not block the user, quota bookkeeping is
// best-effort.
func (s *Quota) Check(ctx context.Context, deviceId string) domain.QuotaDecision {
	state, err := s.repo.Get(ctx, deviceId)
	if err != nil {
		s.logger.Error(ctx, errors.WithMessage(err, "quota: read state"))
		return domain.QuotaDecision{CanUse: true, Remaining: s.limit}
	}

	today := time.Now().Format(dayLayout)
	if state.Day != today {
		return domain.QuotaDecision{CanUse: true, Remaining: s.limit}
	}
	if state.Used < s.limit {
		return domain.QuotaDecision{CanUse: true, Remaining: s.limit - state.Used}
	}

	resetAt := nextMidnight(time.Now())
	return domain.QuotaDecision{CanUse: false, Remaining: 0, ResetAt: &resetAt}
}

// Increment must be called only after an answer was actually delivered.
// The read-modify-write is serialized with a mutex so concurrent successful
// calls within the process are each counted; across processes the plain
// GET/SET remains best-effort. Write failures are swallowed and logged.
func (s *Quota) Increment(ctx context.Context, deviceId string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	state, err := s.repo.Get(ctx, deviceId)
	if err != nil {
		s.logger.Error(ctx, errors.WithMessage(err, "quota: read state before increment"))
		return
	}

	today := time.Now().Format(dayLayout)
	if state.Day != today {
		state = domain.QuotaState{Day: today, Used: 1}
	} else {
		state.Used++
	}

	err = s.repo.Set(ctx, deviceId, state)
	if err != nil {
		s.logger.Error(ctx, errors.WithMessage(err, "quota: write state"))
	}
}

func (s *Quota) Status(ctx context.Context, deviceId string) domain.QuotaStatus {
	state, err := s.repo.Get(ctx, deviceId)
	if err != nil {
		s.logger.Error(ctx, errors.WithMessage(err, "quota: read state"))
		return domain.QuotaStatus{Used: 0, Remaining: s.limit}
	}

	today := time.Now().Format(dayLayout)
	if state.Day != today {
		return domain.QuotaStatus{Used: 0, Remaining: s.limit}
	}

	remaining := s.limit - state.Used
	if remaining < 0 {
		remaining = 0
	}
	status := domain.QuotaStatus{Used: state.Used, Remaining: remaining}
	if remaining == 0 {
		resetAt := nextMidnight(time.Now())
		status.ResetAt = &resetAt
	}
	return status
}

func (s *Quota) Limit() int64 {
	return s.limit
}

func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
