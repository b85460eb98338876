package service

import (
	"context"
	"strings"
	"time"

	"ai-assist-service/domain"
)

type QuotaKeeper interface {
	Check(ctx context.Context, deviceId string) domain.QuotaDecision
	Increment(ctx context.Context, deviceId string)
}

type AnswerCache interface {
	Get(key string) (string, bool)
	Set(key string, answer string)
}

type TransportDispatcher interface {
	Dispatch(ctx context.Context, prompt string, candidates []domain.Candidate) domain.TransportResult
}

// Assistant is the entry point of the module. It owns the order of
// bookkeeping around a model call: the quota is checked before dispatch and
// charged only after an answer was actually produced, so failed or throttled
// calls never burn the allowance.
type Assistant struct {
	quota      QuotaKeeper
	dispatcher TransportDispatcher
	resolver   Resolver
	cache      AnswerCache
	candidates []domain.Candidate
}

func NewAssistant(
	quota QuotaKeeper,
	dispatcher TransportDispatcher,
	resolver Resolver,
	cache AnswerCache,
	candidates []domain.Candidate,
) Assistant {
	return Assistant{
		quota:      quota,
		dispatcher: dispatcher,
		resolver:   resolver,
		cache:      cache,
		candidates: candidates,
	}
}

func (s Assistant) GenerateResponse(ctx context.Context, deviceId string, payload domain.RequestPayload) domain.AIResponse {
	cacheKey := answerCacheKey(payload)
	answer, found := s.cache.Get(cacheKey)
	if found {
		return domain.AIResponse{Text: answer, Success: true}
	}

	decision := s.quota.Check(ctx, deviceId)
	if !decision.CanUse {
		resetAt := time.Now().Add(24 * time.Hour)
		if decision.ResetAt != nil {
			resetAt = *decision.ResetAt
		}
		return domain.AIResponse{
			Text:      s.resolver.QuotaExceededMessage(resetAt, time.Now()),
			Success:   false,
			ErrorKind: domain.ErrorKindQuotaExceeded,
		}
	}

	result := s.dispatcher.Dispatch(ctx, payload.Prompt, s.candidates)
	response := s.resolver.Resolve(result, payload)
	if response.Success {
		s.quota.Increment(ctx, deviceId)
		s.cache.Set(cacheKey, response.Text)
	}
	return response
}

func answerCacheKey(payload domain.RequestPayload) string {
	prompt := strings.ToLower(strings.TrimSpace(payload.Prompt))
	return prompt + "|" + normalizeLanguage(payload.Language)
}
