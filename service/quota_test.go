package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/test"

	"ai-assist-service/domain"
	"ai-assist-service/service"
)

type quotaRepoStub struct {
	lock   sync.Mutex
	states map[string]domain.QuotaState
	getErr error
	setErr error
}

func newQuotaRepoStub() *quotaRepoStub {
	return &quotaRepoStub{states: map[string]domain.QuotaState{}}
}

func (r *quotaRepoStub) Get(_ context.Context, deviceId string) (domain.QuotaState, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.getErr != nil {
		return domain.QuotaState{}, r.getErr
	}
	return r.states[deviceId], nil
}

func (r *quotaRepoStub) Set(_ context.Context, deviceId string, state domain.QuotaState) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.setErr != nil {
		return r.setErr
	}
	r.states[deviceId] = state
	return nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func TestQuotaFreshDevice(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	quota := service.NewQuota(newQuotaRepoStub(), 10, test.Logger())
	decision := quota.Check(context.Background(), "device")
	require.True(decision.CanUse)
	require.EqualValues(10, decision.Remaining)
	require.Nil(decision.ResetAt)
}

func TestQuotaDenialBoundary(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := newQuotaRepoStub()
	repo.states["device"] = domain.QuotaState{Day: today(), Used: 9}
	quota := service.NewQuota(repo, 10, test.Logger())

	decision := quota.Check(context.Background(), "device")
	require.True(decision.CanUse)
	require.EqualValues(1, decision.Remaining)

	quota.Increment(context.Background(), "device")
	decision = quota.Check(context.Background(), "device")
	require.False(decision.CanUse)
	require.EqualValues(0, decision.Remaining)
	require.NotNil(decision.ResetAt)

	now := time.Now()
	y, m, d := now.Date()
	expectedReset := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	require.EqualValues(expectedReset, *decision.ResetAt)
}

func TestQuotaDayRollover(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := newQuotaRepoStub()
	repo.states["device"] = domain.QuotaState{Day: "2020-01-01", Used: 10}
	quota := service.NewQuota(repo, 10, test.Logger())

	decision := quota.Check(context.Background(), "device")
	require.True(decision.CanUse)
	require.EqualValues(10, decision.Remaining)

	quota.Increment(context.Background(), "device")
	require.EqualValues(domain.QuotaState{Day: today(), Used: 1}, repo.states["device"])
}

func TestQuotaCheckDoesNotMutateState(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := newQuotaRepoStub()
	repo.states["device"] = domain.QuotaState{Day: "2020-01-01", Used: 10}
	quota := service.NewQuota(repo, 10, test.Logger())

	quota.Check(context.Background(), "device")
	quota.Check(context.Background(), "device")
	require.EqualValues(domain.QuotaState{Day: "2020-01-01", Used: 10}, repo.states["device"])
}

func TestQuotaFailOpenOnStorageError(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := newQuotaRepoStub()
	repo.getErr = errors.New("connection refused")
	quota := service.NewQuota(repo, 10, test.Logger())

	decision := quota.Check(context.Background(), "device")
	require.True(decision.CanUse)
	require.EqualValues(10, decision.Remaining)

	status := quota.Status(context.Background(), "device")
	require.EqualValues(0, status.Used)
	require.EqualValues(10, status.Remaining)
}

func TestQuotaConcurrentIncrements(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := newQuotaRepoStub()
	quota := service.NewQuota(repo, 1000, test.Logger())

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			quota.Increment(context.Background(), "device")
		}()
	}
	wg.Wait()

	require.EqualValues(50, repo.states["device"].Used)
}

func TestQuotaStatusExhausted(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := newQuotaRepoStub()
	repo.states["device"] = domain.QuotaState{Day: today(), Used: 10}
	quota := service.NewQuota(repo, 10, test.Logger())

	status := quota.Status(context.Background(), "device")
	require.EqualValues(10, status.Used)
	require.EqualValues(0, status.Remaining)
	require.NotNil(status.ResetAt)
}

func TestQuotaStatusOverLimitClampsRemaining(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := newQuotaRepoStub()
	repo.states["device"] = domain.QuotaState{Day: today(), Used: 15}
	quota := service.NewQuota(repo, 10, test.Logger())

	status := quota.Status(context.Background(), "device")
	require.EqualValues(15, status.Used)
	require.EqualValues(0, status.Remaining)
}
