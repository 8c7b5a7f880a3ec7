package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// maxResponseBytes caps how much of an engine response is read
const maxResponseBytes = 1 << 20

// ErrTransportOrParse means the engine call did not complete or its
// response did not have the expected shape
var ErrTransportOrParse = errors.New("calculation service request failed")

// EngineError describes a failed engine call
type EngineError struct {
	Op        string // "request", "status", "decode" or "validate"
	RequestID string
	Status    int
	Err       error
}

func (e *EngineError) Error() string {
	msg := fmt.Sprintf("engine %s failed (request %s)", e.Op, e.RequestID)
	if e.Status != 0 {
		msg += fmt.Sprintf(" with status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EngineError) Unwrap() error { return e.Err }

// Is makes every EngineError match ErrTransportOrParse
func (e *EngineError) Is(target error) bool { return target == ErrTransportOrParse }

// Engine computes a plan remotely
type Engine interface {
	Calculate(ctx context.Context, params PlanParameters) (PlanResult, error)
}

// engineResponse mirrors {"sip": {...}}; pointers tell missing from zero
type engineResponse struct {
	SIP *struct {
		TotalInvested           *float64 `json:"total_invested"`
		FinalValue              *float64 `json:"final_value"`
		RealValueAfterInflation *float64 `json:"real_value_after_inflation"`
	} `json:"sip"`
}

func (r engineResponse) validate() (PlanResult, error) {
	if r.SIP == nil {
		return PlanResult{}, errors.New(`missing "sip" object`)
	}
	var missing []string
	if r.SIP.TotalInvested == nil {
		missing = append(missing, "total_invested")
	}
	if r.SIP.FinalValue == nil {
		missing = append(missing, "final_value")
	}
	if r.SIP.RealValueAfterInflation == nil {
		missing = append(missing, "real_value_after_inflation")
	}
	if len(missing) > 0 {
		return PlanResult{}, fmt.Errorf("missing sip fields: %s", strings.Join(missing, ", "))
	}
	return PlanResult{
		TotalInvested:           *r.SIP.TotalInvested,
		FinalValue:              *r.SIP.FinalValue,
		RealValueAfterInflation: *r.SIP.RealValueAfterInflation,
	}, nil
}

// EngineClient calls POST {base}/calculate
type EngineClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewEngineClient creates a client from config
func NewEngineClient(cfg EngineConfig, logger *slog.Logger) *EngineClient {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst < 2 {
		burst = 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EngineClient{
		baseURL: strings.TrimRight(cfg.APIBase, "/"),
		client:  &http.Client{Timeout: cfg.Timeout()},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Calculate sends params to the engine and returns its validated result.
// Every failure wraps ErrTransportOrParse.
func (c *EngineClient) Calculate(ctx context.Context, params PlanParameters) (PlanResult, error) {
	requestID := uuid.NewString()
	fail := func(op string, status int, err error) (PlanResult, error) {
		return PlanResult{}, &EngineError{Op: op, RequestID: requestID, Status: status, Err: err}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fail("request", 0, err)
	}

	body, err := json.Marshal(params)
	if err != nil {
		return fail("request", 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calculate", bytes.NewReader(body))
	if err != nil {
		return fail("request", 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("engine request", "request_id", requestID, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return fail("request", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail("status", resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}

	var decoded engineResponse
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := dec.Decode(&decoded); err != nil {
		return fail("decode", resp.StatusCode, err)
	}
	// The body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after response object")
		}
		return fail("decode", resp.StatusCode, err)
	}

	result, err := decoded.validate()
	if err != nil {
		return fail("validate", resp.StatusCode, err)
	}

	c.logger.Debug("engine response", "request_id", requestID,
		"total_invested", result.TotalInvested, "final_value", result.FinalValue)
	return result, nil
}
