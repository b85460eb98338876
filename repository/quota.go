package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"ai-assist-service/domain"
)

// Quota persists the daily counter as two independent string entries,
// a calendar date and a usage count. No schema versioning, plain strings.
type Quota struct {
	cli redis.UniversalClient
}

func NewQuota(cli redis.UniversalClient) Quota {
	return Quota{
		cli: cli,
	}
}

func (r Quota) Get(ctx context.Context, deviceId string) (domain.QuotaState, error) {
	values, err := r.cli.MGet(ctx, r.dayKey(deviceId), r.usedKey(deviceId)).Result()
	if err != nil {
		return domain.QuotaState{}, errors.WithMessage(err, "mget")
	}

	state := domain.QuotaState{}
	if day, ok := values[0].(string); ok {
		state.Day = day
	}
	if used, ok := values[1].(string); ok {
		value, err := strconv.ParseInt(used, 10, 64)
		if err != nil {
			return domain.QuotaState{}, errors.WithMessagef(err, "parse used counter '%s'", used)
		}
		state.Used = value
	}

	return state, nil
}

func (r Quota) Set(ctx context.Context, deviceId string, state domain.QuotaState) error {
	_, err := r.cli.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.dayKey(deviceId), state.Day, 0)
		p.Set(ctx, r.usedKey(deviceId), strconv.FormatInt(state.Used, 10), 0)
		return nil
	})
	if err != nil {
		return errors.WithMessage(err, "pipelined set")
	}

	return nil
}

func (r Quota) dayKey(deviceId string) string {
	return fmt.Sprintf("assistant:quota_date:%s", deviceId)
}

func (r Quota) usedKey(deviceId string) string {
	return fmt.Sprintf("assistant:quota_used:%s", deviceId)
}
