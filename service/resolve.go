package service

import (
	"fmt"
	"math"
	"time"

	"github.com/tidwall/gjson"

	"ai-assist-service/domain"
)

const answerTextPath = "candidates.0.content.parts.0.text"

// Resolver turns raw transport outcomes into complete answers. Whatever went
// wrong on the wire, the caller always receives human-readable text.
type Resolver struct {
	dailyLimit int64
}

func NewResolver(dailyLimit int64) Resolver {
	return Resolver{
		dailyLimit: dailyLimit,
	}
}

func (r Resolver) Resolve(result domain.TransportResult, payload domain.RequestPayload) domain.AIResponse {
	if !result.Ok {
		kind := domain.ErrorKindTransportError
		if result.LastError != nil {
			kind = result.LastError.Kind
		}
		return domain.AIResponse{
			Text:      FallbackAnswer(payload.Prompt, payload.Language),
			Success:   false,
			ErrorKind: kind,
		}
	}

	text := gjson.GetBytes(result.Body, answerTextPath)
	if !text.Exists() || text.String() == "" {
		return domain.AIResponse{
			Text:      FallbackAnswer(payload.Prompt, payload.Language),
			Success:   false,
			ErrorKind: domain.ErrorKindMalformedResponse,
		}
	}

	return domain.AIResponse{
		Text:    text.String(),
		Success: true,
	}
}

// QuotaExceededMessage is intentionally not localized, the daily limit notice
// is a product string shared across locales.
func (r Resolver) QuotaExceededMessage(resetAt time.Time, now time.Time) string {
	hours := int64(math.Ceil(resetAt.Sub(now).Hours()))
	if hours < 1 {
		hours = 1
	}
	return fmt.Sprintf(
		"You have reached your daily limit of %d questions. Your quota will reset in %d hours.",
		r.dailyLimit, hours,
	)
}
