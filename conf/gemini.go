package conf

import (
	"fmt"
	"time"

	"ai-assist-service/domain"
)

const (
	defaultUrlTemplate    = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	defaultAttemptTimeout = 15 * time.Second
)

func (g Gemini) Candidates() []domain.Candidate {
	template := g.UrlTemplate
	if template == "" {
		template = defaultUrlTemplate
	}

	candidates := make([]domain.Candidate, 0, len(g.Models))
	for _, model := range g.Models {
		candidates = append(candidates, domain.Candidate{
			Model: model,
			Url:   fmt.Sprintf("%s?key=%s", fmt.Sprintf(template, model), g.ApiKey),
		})
	}
	return candidates
}

func (g Gemini) AttemptTimeout() time.Duration {
	if g.AttemptTimeoutInSec <= 0 {
		return defaultAttemptTimeout
	}
	return time.Duration(g.AttemptTimeoutInSec) * time.Second
}
