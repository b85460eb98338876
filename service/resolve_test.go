package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ai-assist-service/domain"
	"ai-assist-service/service"
)

func TestResolveExtractsText(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	resolver := service.NewResolver(10)
	body := []byte(`{"candidates":[{"content":{"parts":[{"text":"the answer"}]}}]}`)
	response := resolver.Resolve(
		domain.TransportResult{Ok: true, Body: body},
		domain.RequestPayload{Prompt: "question", Language: "en"},
	)

	require.True(response.Success)
	require.EqualValues("the answer", response.Text)
	require.Empty(response.ErrorKind)
}

func TestResolveMalformedBody(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	resolver := service.NewResolver(10)
	for _, body := range []string{
		`{}`,
		`{"candidates":[]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
		`not json at all`,
	} {
		response := resolver.Resolve(
			domain.TransportResult{Ok: true, Body: []byte(body)},
			domain.RequestPayload{Prompt: "question", Language: "en"},
		)
		require.False(response.Success, body)
		require.EqualValues(domain.ErrorKindMalformedResponse, response.ErrorKind, body)
		require.NotEmpty(response.Text, body)
	}
}

func TestResolveTransportFailure(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	resolver := service.NewResolver(10)
	response := resolver.Resolve(
		domain.TransportResult{Ok: false, LastError: &domain.AttemptError{Kind: domain.ErrorKindTimeout}},
		domain.RequestPayload{Prompt: "question", Language: "en"},
	)

	require.False(response.Success)
	require.EqualValues(domain.ErrorKindTimeout, response.ErrorKind)
	require.NotEmpty(response.Text)
}

func TestQuotaExceededMessage(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	resolver := service.NewResolver(10)
	now := time.Date(2026, 8, 28, 22, 30, 0, 0, time.UTC)
	resetAt := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	message := resolver.QuotaExceededMessage(resetAt, now)
	require.EqualValues(
		"You have reached your daily limit of 10 questions. Your quota will reset in 2 hours.",
		message,
	)

	justBefore := resetAt.Add(-time.Minute)
	message = resolver.QuotaExceededMessage(resetAt, justBefore)
	require.Contains(message, "reset in 1 hours")
}
