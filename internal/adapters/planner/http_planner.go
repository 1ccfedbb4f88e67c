package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/platform/obs"
	"ev-route-navigator/internal/ports"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// HTTPPlanner implements RoutePlanner against the external planning
// service's POST /plan_route endpoint.
//
// It coordinates:
//   - JSON request encoding and response normalization
//   - Transient-failure retry with exponential backoff
//   - Mapping error envelopes into RejectedError / TransportError
//
// The planner is safe for concurrent use, though the client issues at
// most one request at a time.
type HTTPPlanner struct {
	session *http.Client
	baseURL string
}

func NewHTTPPlanner(baseURL string) (*HTTPPlanner, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("planner base URL is empty")
	}

	return &HTTPPlanner{
		// Planning can be slow on cold upstream caches; 30s is the hard
		// client-side ceiling for one attempt.
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}, nil
}

type planEnvelope struct {
	Error string `json:"error"`
	domain.PlanResult
}

// Plan submits one request and decodes the response. A body carrying an
// error field becomes a RejectedError regardless of HTTP status; anything
// undecodable becomes a TransportError.
func (p *HTTPPlanner) Plan(ctx context.Context, req ports.PlanRequest) (_ *domain.PlanResult, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal plan request: %w", err)
	}

	endpoint := p.baseURL + "/plan_route"

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		// Rejections travel as error envelopes on 4xx/5xx bodies.
		var he *httpStatusError
		if errors.As(err, &he) {
			if msg := decodeErrorEnvelope([]byte(he.Body)); msg != "" {
				return nil, &ports.RejectedError{Message: msg}
			}
		}
		return nil, &ports.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ports.TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	var env planEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ports.TransportError{Err: fmt.Errorf("decode plan response: %w", err)}
	}
	if env.Error != "" {
		return nil, &ports.RejectedError{Message: env.Error}
	}

	result := env.PlanResult
	result.Normalize()
	return &result, nil
}

func decodeErrorEnvelope(body []byte) string {
	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Error
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (p *HTTPPlanner) newRequest(ctx context.Context, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (p *HTTPPlanner) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx without
// an error envelope) using exponential backoff while respecting context
// cancellation. Envelope-carrying responses are returned to the caller on
// the first attempt so rejections are never retried.
func (p *HTTPPlanner) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := p.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 502, 503, 504:
				retry = true
			}
			// 500 bodies may carry a domain rejection; surface them.
			if he.Code == 500 && decodeErrorEnvelope([]byte(he.Body)) == "" {
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
