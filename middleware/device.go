package middleware

import (
	"net/http"

	"github.com/pkg/errors"

	"ai-assist-service/httperrors"
	"ai-assist-service/request"
)

const (
	deviceIdHeader = "x-device-id"
)

// DeviceIdentity resolves the calling device from the x-device-id header
// (or query parameter). Quota and throttling counters are keyed by it.
func DeviceIdentity() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			deviceId := ctx.Param(deviceIdHeader)
			if deviceId == "" {
				return httperrors.New(
					http.StatusBadRequest,
					"device is not identified",
					errors.Errorf("device identity: empty '%s'", deviceIdHeader),
				)
			}

			ctx.IdentifyDevice(deviceId)
			return next.Handle(ctx)
		})
	}
}
