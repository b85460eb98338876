package domain

import (
	"time"
)

const (
	ErrorKindQuotaExceeded     = "quota_exceeded"
	ErrorKindTimeout           = "timeout"
	ErrorKindTransportError    = "transport_error"
	ErrorKindMalformedResponse = "malformed_response"
)

type RequestPayload struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

// AIResponse is the only value returned to the caller. Text is always a
// complete human-readable sentence, either the provider answer or a fallback.
type AIResponse struct {
	Text      string `json:"text"`
	Success   bool   `json:"success"`
	ErrorKind string `json:"errorKind,omitempty"`
}

type QuotaState struct {
	Day  string
	Used int64
}

type QuotaDecision struct {
	CanUse    bool
	Remaining int64
	ResetAt   *time.Time
}

type QuotaStatus struct {
	Used      int64      `json:"used"`
	Remaining int64      `json:"remaining"`
	ResetAt   *time.Time `json:"resetAt,omitempty"`
}
