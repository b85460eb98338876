package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"ai-assist-service/domain"
	"ai-assist-service/httperrors"
	"ai-assist-service/request"
)

type Throttler interface {
	AllowRateLimit(ctx context.Context, deviceId string) (*domain.RateLimitResult, error)
}

func Throttling(throttler Throttler) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			deviceId, err := ctx.DeviceId()
			if err != nil {
				return errors.WithMessage(err, "throttling: get device id")
			}

			result, err := throttler.AllowRateLimit(ctx.Context(), deviceId)
			if err != nil {
				return errors.WithMessage(err, "throttling: allow rate limit")
			}
			if !result.Allow {
				return httperrors.New(
					http.StatusTooManyRequests,
					fmt.Sprintf("rate limit has been reached, try after %dms", result.RetryAfter.Milliseconds()),
					errors.Errorf("throttling: rate limit has been reached for device '%s'", deviceId),
				)
			}

			return next.Handle(ctx)
		})
	}
}
