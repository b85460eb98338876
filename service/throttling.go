package service

import (
	"context"

	"github.com/pkg/errors"

	"ai-assist-service/domain"
)

type ThrottlingRepo interface {
	IsAllowRequestPerSecond(ctx context.Context, deviceId string, rate int) (*domain.RateLimitResult, error)
}

type Throttling struct {
	repo ThrottlingRepo
	rate int
}

func NewThrottling(repo ThrottlingRepo, rate int) Throttling {
	return Throttling{
		repo: repo,
		rate: rate,
	}
}

func (s Throttling) AllowRateLimit(ctx context.Context, deviceId string) (*domain.RateLimitResult, error) {
	result, err := s.repo.IsAllowRequestPerSecond(ctx, deviceId, s.rate)
	if err != nil {
		return nil, errors.WithMessage(err, "throttling: check rate limit")
	}
	return result, nil
}
