package service

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/http/httpcli"
	"github.com/txix-open/isp-kit/log"
	"golang.org/x/net/context"

	"ai-assist-service/domain"
)

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

// Dispatcher walks the candidate list strictly in order and returns the body
// of the first successful response. Each attempt gets its own deadline, so a
// slow candidate cannot delay the next one past attemptTimeout. There is no
// retry of the same candidate and no backoff between attempts.
type Dispatcher struct {
	cli            *httpcli.Client
	attemptTimeout time.Duration
	logger         log.Logger
}

func NewDispatcher(cli *httpcli.Client, attemptTimeout time.Duration, logger log.Logger) Dispatcher {
	return Dispatcher{
		cli:            cli,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

func (d Dispatcher) Dispatch(ctx context.Context, prompt string, candidates []domain.Candidate) domain.TransportResult {
	body := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{{Text: prompt}},
		}},
	}

	var lastError *domain.AttemptError
	for _, candidate := range candidates {
		respBody, attemptErr := d.attempt(ctx, candidate, body)
		if attemptErr == nil {
			return domain.TransportResult{
				Ok:        true,
				Candidate: candidate,
				Body:      respBody,
			}
		}

		lastError = attemptErr
		d.logger.Debug(ctx,
			"assistant: model attempt failed",
			log.String("model", candidate.Model),
			log.String("kind", attemptErr.Kind),
			log.String("message", attemptErr.Message),
		)

		if ctx.Err() != nil {
			break
		}
	}

	return domain.TransportResult{Ok: false, LastError: lastError}
}

func (d Dispatcher) attempt(
	ctx context.Context,
	candidate domain.Candidate,
	body generateRequest,
) ([]byte, *domain.AttemptError) {
	ctx, cancel := context.WithTimeout(ctx, d.attemptTimeout)
	defer cancel()

	resp, err := d.cli.Post(candidate.Url).
		JsonRequestBody(body).
		Do(ctx)
	if err != nil {
		kind := domain.ErrorKindTransportError
		if errors.Is(err, context.DeadlineExceeded) {
			kind = domain.ErrorKindTimeout
		}
		return nil, &domain.AttemptError{
			Kind:    kind,
			Message: errors.WithMessagef(err, "call model %s", candidate.Model).Error(),
		}
	}
	defer resp.Close()

	// Close returns the pooled body buffer, the copy must outlive it
	respBody, err := resp.BodyCopy()
	if err != nil {
		return nil, &domain.AttemptError{
			Kind:    domain.ErrorKindTransportError,
			Message: errors.WithMessagef(err, "read body from model %s", candidate.Model).Error(),
		}
	}

	if !resp.IsSuccess() {
		message := fmt.Sprintf("model %s responded with status %d", candidate.Model, resp.StatusCode())
		if len(respBody) > 0 {
			message = fmt.Sprintf("%s: %s", message, bodySnippet(respBody))
		}
		return nil, &domain.AttemptError{
			Kind:       domain.ErrorKindTransportError,
			StatusCode: resp.StatusCode(),
			Message:    message,
		}
	}

	return respBody, nil
}

const maxErrorBodyLen = 256

func bodySnippet(body []byte) string {
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen]
	}
	return string(body)
}
