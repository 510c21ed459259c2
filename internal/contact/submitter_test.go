package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSimulatedSubmitterSucceedsAfterDelay(t *testing.T) {
	s := NewSimulatedSubmitter(20 * time.Millisecond)

	start := time.Now()
	receipt, err := s.Submit(context.Background(), Submission{Flow: FlowEIR})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Expected to wait at least the delay, waited %v", elapsed)
	}
	if receipt.ID == "" || receipt.Status != "received" {
		t.Errorf("Unexpected receipt %+v", receipt)
	}
}

func TestSimulatedSubmitterHonoursContext(t *testing.T) {
	s := NewSimulatedSubmitter(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Submit(ctx, Submission{})
	if !errors.Is(err, &SubmitError{Kind: ErrKindTimeout}) {
		t.Errorf("Expected timeout error, got %v", err)
	}
}

func TestHTTPSubmitterPostsJSON(t *testing.T) {
	var got Submission
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"abc-123","status":"received"}`))
	}))
	defer server.Close()

	s := NewHTTPSubmitter(server.URL, server.Client())
	sub := Submission{
		Flow:     FlowContact,
		Audience: AudienceStudents,
		Form:     Form{Name: "Ada", Email: "ada@example.com", Message: "Hello", Consent: true},
	}

	receipt, err := s.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if receipt.ID != "abc-123" || receipt.Status != "received" {
		t.Errorf("Unexpected receipt %+v", receipt)
	}
	if got != sub {
		t.Errorf("Server received %+v, want %+v", got, sub)
	}
}

func TestHTTPSubmitterRejections(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		retryable   bool
	}{
		{"json error", http.StatusBadRequest, `{"error":"email: invalid email address"}`, "email: invalid email address", false},
		{"plain text", http.StatusServiceUnavailable, "maintenance", "maintenance", true},
		{"empty body", http.StatusInternalServerError, "", "contact endpoint returned Internal Server Error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewHTTPSubmitter(server.URL, nil).Submit(context.Background(), Submission{Flow: FlowEIR})

			var se *SubmitError
			if !errors.As(err, &se) {
				t.Fatalf("Expected *SubmitError, got %v", err)
			}
			if se.Kind != ErrKindRejected || se.StatusCode != tt.status {
				t.Errorf("Unexpected error %+v", se)
			}
			if se.Message != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, se.Message)
			}
			if se.IsRetryable() != tt.retryable {
				t.Errorf("Expected retryable=%v", tt.retryable)
			}
		})
	}
}

func TestHTTPSubmitterUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPSubmitter(url, nil).Submit(context.Background(), Submission{})
	if !errors.Is(err, &SubmitError{Kind: ErrKindNetwork}) {
		t.Errorf("Expected network error, got %v", err)
	}
}

func TestHTTPSubmitterTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHTTPSubmitter(server.URL, nil).Submit(ctx, Submission{})
	if !errors.Is(err, &SubmitError{Kind: ErrKindTimeout}) {
		t.Errorf("Expected timeout error, got %v", err)
	}
}
