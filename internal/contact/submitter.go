package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSimulatedDelay stands in for a network round-trip
const DefaultSimulatedDelay = 800 * time.Millisecond

// Submission is what a flow sends when the user submits
type Submission struct {
	Flow     Flow     `json:"flow"`
	Audience Audience `json:"audience,omitempty"`
	Form
}

// Receipt acknowledges an accepted submission
type Receipt struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Submitter delivers a submission. Implementations must honour ctx.
type Submitter interface {
	Submit(ctx context.Context, s Submission) (Receipt, error)
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, s Submission) (Receipt, error)

// Submit implements Submitter
func (f SubmitterFunc) Submit(ctx context.Context, s Submission) (Receipt, error) {
	return f(ctx, s)
}

// SimulatedSubmitter accepts every submission after a fixed delay
type SimulatedSubmitter struct {
	Delay time.Duration
}

// NewSimulatedSubmitter creates a submitter waiting delay before succeeding
func NewSimulatedSubmitter(delay time.Duration) *SimulatedSubmitter {
	return &SimulatedSubmitter{Delay: delay}
}

// Submit implements Submitter
func (s *SimulatedSubmitter) Submit(ctx context.Context, _ Submission) (Receipt, error) {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Receipt{}, classifyTransportError(ctx.Err())
	case <-timer.C:
		return Receipt{ID: uuid.NewString(), Status: "received"}, nil
	}
}

// HTTPSubmitter posts submissions as JSON to a contact endpoint
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSubmitter creates a submitter for endpoint. A nil client uses a
// client without its own timeout; deadlines come from ctx.
func NewHTTPSubmitter(endpoint string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSubmitter{endpoint: endpoint, client: client}
}

// Endpoint returns the URL submissions are posted to
func (h *HTTPSubmitter) Endpoint() string {
	return h.endpoint
}

// Submit implements Submitter
func (h *HTTPSubmitter) Submit(ctx context.Context, s Submission) (Receipt, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return Receipt{}, &SubmitError{Kind: ErrKindInternal, Message: "failed to encode submission", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, &SubmitError{Kind: ErrKindInternal, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return Receipt{}, classifyTransportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Receipt{}, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Receipt{}, NewRejectedError(resp.StatusCode, rejectionMessage(resp.StatusCode, data))
	}

	var receipt Receipt
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &receipt); err != nil {
			return Receipt{}, &SubmitError{Kind: ErrKindInternal, Message: "failed to decode receipt", Cause: err}
		}
	}
	return receipt, nil
}

func rejectionMessage(statusCode int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 {
		return text
	}
	return fmt.Sprintf("contact endpoint returned %s", http.StatusText(statusCode))
}
