package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/vss-site/internal/contact"
	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/logger"
	"github.com/yildizm/vss-site/internal/site"
)

const testBase = "/vss-site/"

func setupTestServer(t *testing.T, scope disclosure.Scope) *Server {
	t.Helper()
	return NewServer(site.Default(), Options{
		Address:         "127.0.0.1:0",
		BasePath:        testBase,
		DisclosureScope: scope,
	})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleHealthz(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)

	w := get(t, s, testBase+"healthz")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("Expected body 'ok', got %s", w.Body.String())
	}
}

func TestRoutes(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"page", http.MethodGet, testBase, http.StatusOK},
		{"base without slash redirects", http.MethodGet, "/vss-site", http.StatusMovedPermanently},
		{"outside base", http.MethodGet, "/other", http.StatusNotFound},
		{"unknown page below base", http.MethodGet, testBase + "missing", http.StatusNotFound},
		{"api is post only", http.MethodGet, testBase + "api/contact", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestRoutesAtRootBase(t *testing.T) {
	s := NewServer(site.Default(), Options{BasePath: "/"})

	tests := []struct {
		target string
		status int
	}{
		{"/", http.StatusOK},
		{"/healthz", http.StatusOK},
		{"/vss-site/", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if w := get(t, s, tt.target); w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestRecoversFromPanic(t *testing.T) {
	var logs bytes.Buffer
	log := logger.NewWithCallback("vss", func() bool { return false })
	log.SetOutput(&logs)
	s := NewServer(site.Default(), Options{BasePath: testBase, Logger: log})

	r := s.newRouter()
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	line := logs.String()
	if !strings.Contains(line, "WARN [web] request failed") || !strings.Contains(line, "status=500") {
		t.Errorf("Expected the failure in the log, got %q", line)
	}
	if strings.Contains(line, "request_id= ") {
		t.Errorf("Expected a request id in the log, got %q", line)
	}
}

func TestRequestTimeout(t *testing.T) {
	s := NewServer(site.Default(), Options{BasePath: testBase, RequestTimeout: 10 * time.Millisecond})

	r := s.newRouter()
	r.Get("/slow", func(_ http.ResponseWriter, r *http.Request) { <-r.Context().Done() })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("Expected status 504, got %d", w.Code)
	}
}

func TestPageRendersEverySection(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)
	w := get(t, s, testBase)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML, got %s", ct)
	}
	body := w.Body.String()
	for _, id := range site.Order() {
		if !strings.Contains(body, `<section id="`+id.String()+`">`) {
			t.Errorf("Expected section %s in the page", id)
		}
	}
	if !strings.Contains(body, `class="active" aria-current="true">Home<`) {
		t.Error("Expected Home highlighted initially")
	}
	if !strings.Contains(body, "<strong>VSS structures that leap</strong>") {
		t.Error("Expected markdown bodies rendered to HTML")
	}
	if strings.Contains(body, `class="detail"`) {
		t.Error("Expected every panel closed initially")
	}
}

func TestDisclosureQueryState(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)

	body := get(t, s, testBase+"?open=faq-2").Body.String()
	if !strings.Contains(body, "AI/ML, biotech") {
		t.Error("Expected the faq-2 detail")
	}
	if strings.Count(body, `class="detail"`) != 1 {
		t.Errorf("Expected exactly one open panel, got %d", strings.Count(body, `class="detail"`))
	}
	if !strings.Contains(body, `href="/vss-site/?section=faq#faq-2"`) {
		t.Error("Expected the open item to link to the all-closed state")
	}
	if !strings.Contains(body, `href="/vss-site/?open=faq-1&amp;section=faq#faq-1"`) {
		t.Error("Expected a sibling item to link to a state with only itself open")
	}
}

func TestDisclosureScopes(t *testing.T) {
	tests := []struct {
		scope disclosure.Scope
		open  int
	}{
		{disclosure.ScopeShared, 1},
		{disclosure.ScopePerList, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			s := setupTestServer(t, tt.scope)
			body := get(t, s, testBase+"?open=m-0&open=faq-2").Body.String()
			if got := strings.Count(body, `class="detail"`); got != tt.open {
				t.Errorf("Expected %d open panels, got %d", tt.open, got)
			}
		})
	}
}

func TestSectionAndMenuQuery(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)

	body := get(t, s, testBase+"?section=faq&menu=open").Body.String()
	if !strings.Contains(body, `class="active" aria-current="true">FAQ<`) {
		t.Error("Expected FAQ highlighted")
	}
	if strings.Contains(body, `class="nav open"`) {
		t.Error("Expected navigating to a section to close the menu")
	}

	body = get(t, s, testBase+"?menu=open").Body.String()
	if !strings.Contains(body, `class="nav open"`) {
		t.Error("Expected the menu open")
	}
	if !strings.Contains(body, `href="/vss-site/?section=mission#mission"`) {
		t.Error("Expected nav links to drop the menu state")
	}

	body = get(t, s, testBase+"?section=bogus").Body.String()
	if !strings.Contains(body, `class="active" aria-current="true">Home<`) {
		t.Error("Expected an unknown section to leave Home highlighted")
	}
}

func TestAudienceQuery(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)

	body := get(t, s, testBase).Body.String()
	if !strings.Contains(body, contact.AudienceEntrepreneurs.Placeholder()) {
		t.Error("Expected the entrepreneurs placeholder by default")
	}

	body = get(t, s, testBase+"?audience=students").Body.String()
	if !strings.Contains(body, contact.AudienceStudents.Placeholder()) {
		t.Error("Expected the students placeholder")
	}
	if !strings.Contains(body, `name="audience" value="students"`) {
		t.Error("Expected the selected audience carried by the form")
	}
}

func postJSON(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, testBase+"api/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestContactAPI(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)

	tests := []struct {
		name   string
		body   string
		status int
		field  contact.Field
	}{
		{"eir", `{"flow":"eir","email":"a@b.co","consent":true}`, http.StatusAccepted, ""},
		{"contact", `{"flow":"contact","audience":"students","name":"Ada","email":"a@b.co","consent":true}`, http.StatusAccepted, ""},
		{"invalid json", `{"flow":`, http.StatusBadRequest, ""},
		{"unknown flow", `{"flow":"newsletter","email":"a@b.co","consent":true}`, http.StatusBadRequest, ""},
		{"unknown audience", `{"flow":"contact","audience":"investors","name":"Ada","email":"a@b.co","consent":true}`, http.StatusBadRequest, ""},
		{"missing consent", `{"flow":"eir","email":"a@b.co"}`, http.StatusBadRequest, contact.FieldConsent},
		{"bad email", `{"flow":"eir","email":"nope","consent":true}`, http.StatusBadRequest, contact.FieldEmail},
		{"contact needs name", `{"flow":"contact","email":"a@b.co","consent":true}`, http.StatusBadRequest, contact.FieldName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, s, tt.body)
			if w.Code != tt.status {
				t.Fatalf("Expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}

			if tt.status == http.StatusAccepted {
				var receipt contact.Receipt
				if err := json.Unmarshal(w.Body.Bytes(), &receipt); err != nil {
					t.Fatalf("Failed to decode receipt: %v", err)
				}
				if _, err := uuid.Parse(receipt.ID); err != nil {
					t.Errorf("Expected a UUID id, got %q", receipt.ID)
				}
				if receipt.Status != "received" {
					t.Errorf("Expected status received, got %q", receipt.Status)
				}
				return
			}

			var resp errorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode error: %v", err)
			}
			if resp.Error == "" {
				t.Error("Expected an error message")
			}
			if tt.field != "" {
				if _, ok := resp.Fields[tt.field]; !ok {
					t.Errorf("Expected a problem for %s, got %v", tt.field, resp.Fields)
				}
			}
		})
	}
}

func postForm(t *testing.T, s *Server, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, testBase+"contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestContactFormPostBack(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)

	w := postForm(t, s, url.Values{"flow": {"eir"}, "email": {"a@b.co"}, "consent": {"on"}, "open": {"faq-1"}})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Count(body, `class="status-success"`) != 1 {
		t.Error("Expected one success message")
	}
	if !strings.Contains(body, "(ref ") {
		t.Error("Expected the receipt reference")
	}
	if strings.Count(body, `class="detail"`) != 1 {
		t.Error("Expected the open panel to survive the post-back")
	}

	w = postForm(t, s, url.Values{"flow": {"contact"}, "name": {"Ada"}, "email": {"ada@example.com"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", w.Code)
	}
	body = w.Body.String()
	if !strings.Contains(body, "must be checked") {
		t.Error("Expected the consent problem")
	}
	if !strings.Contains(body, `value="ada@example.com"`) {
		t.Error("Expected the posted email to be kept")
	}
	if strings.Contains(body, `class="status-success"`) {
		t.Error("Expected no success message for an invalid form")
	}

	w = postForm(t, s, url.Values{"flow": {"newsletter"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for an unknown flow, got %d", w.Code)
	}
}

func TestHTTPSubmitterAgainstServer(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	submitter := contact.NewHTTPSubmitter(ts.URL+testBase+"api/contact", ts.Client())
	ctx := context.Background()

	c := contact.NewController(contact.FlowEIR, submitter)
	if err := c.UpdateField(contact.FieldEmail, "a@b.co"); err != nil {
		t.Fatal(err)
	}
	c.SetConsent(true)

	outcome, err := c.SubmitAndWait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != contact.StatusSuccess || outcome.Receipt.Status != "received" {
		t.Errorf("Expected a received submission, got %+v", outcome)
	}

	_, err = submitter.Submit(ctx, contact.Submission{Flow: contact.FlowEIR})
	var se *contact.SubmitError
	if !errors.As(err, &se) || se.Kind != contact.ErrKindRejected || se.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected a 400 rejection, got %v", err)
	}
}

func TestSetPage(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)
	page := site.Default()
	page.Brand.Name = "Renamed Studio"

	s.SetPage(page)
	if !strings.Contains(get(t, s, testBase).Body.String(), "Renamed Studio") {
		t.Error("Expected the swapped content")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := setupTestServer(t, disclosure.ScopeShared)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Server did not stop")
	}
}

func TestRunReportsListenFailure(t *testing.T) {
	s := NewServer(site.Default(), Options{Address: "256.0.0.1:99999"})
	if err := s.Run(context.Background()); err == nil {
		t.Error("Expected an error for an invalid address")
	}
}
