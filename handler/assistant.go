package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/json"

	"ai-assist-service/domain"
	"ai-assist-service/httperrors"
	"ai-assist-service/request"
)

type AssistantService interface {
	GenerateResponse(ctx context.Context, deviceId string, payload domain.RequestPayload) domain.AIResponse
}

type QuotaService interface {
	Status(ctx context.Context, deviceId string) domain.QuotaStatus
}

type Assistant struct {
	assistant AssistantService
	quota     QuotaService
}

func NewAssistant(assistant AssistantService, quota QuotaService) Assistant {
	return Assistant{
		assistant: assistant,
		quota:     quota,
	}
}

// Generate answers POST /api/assistant/generate. The quota denial is a normal
// answer for the client, it is returned with status 200 and success=false.
func (h Assistant) Generate(ctx *request.Context) error {
	deviceId, err := ctx.DeviceId()
	if err != nil {
		return errors.WithMessage(err, "generate: get device id")
	}

	payload := domain.RequestPayload{}
	err = json.NewDecoder(ctx.Request().Body).Decode(&payload)
	if err != nil {
		return httperrors.New(
			http.StatusBadRequest,
			"invalid request body",
			errors.WithMessage(err, "generate: decode request body"),
		)
	}
	if strings.TrimSpace(payload.Prompt) == "" {
		return httperrors.New(
			http.StatusBadRequest,
			"prompt must not be empty",
			errors.New("generate: empty prompt"),
		)
	}

	response := h.assistant.GenerateResponse(ctx.Context(), deviceId, payload)
	return writeJson(ctx.ResponseWriter(), response)
}

// Quota answers GET /api/assistant/quota.
func (h Assistant) Quota(ctx *request.Context) error {
	deviceId, err := ctx.DeviceId()
	if err != nil {
		return errors.WithMessage(err, "quota: get device id")
	}

	status := h.quota.Status(ctx.Context(), deviceId)
	return writeJson(ctx.ResponseWriter(), status)
}

func writeJson(w http.ResponseWriter, data any) error {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return errors.WithMessage(err, "encode response body")
	}
	return nil
}
