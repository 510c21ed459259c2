// Package web serves the landing page over HTTP and exports it as static HTML.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/yildizm/vss-site/internal/contact"
	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/logger"
	"github.com/yildizm/vss-site/internal/site"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/page.html"))

const (
	maxBodyBytes          = 64 << 10
	defaultRequestTimeout = 30 * time.Second
)

// Options configures the HTTP server
type Options struct {
	Address         string
	BasePath        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration // per-request deadline, 504 once exceeded
	DisclosureScope disclosure.Scope
	ClearOnSuccess  bool
	Logger          *logger.Logger
}

// Server renders the page and receives contact submissions
type Server struct {
	mu   sync.RWMutex
	page *site.Page
	opts Options
	log  *logger.Logger
}

// NewServer creates a server for page
func NewServer(page *site.Page, opts Options) *Server {
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	return &Server{
		page: page,
		opts: opts,
		log:  opts.Logger.WithComponent("web"),
	}
}

// Page returns the content being served
func (s *Server) Page() *site.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// SetPage swaps the content being served, e.g. after a reload
func (s *Server) SetPage(page *site.Page) {
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	s.log.Info("content reloaded")
}

// Handler returns the routes, all mounted under the base path
func (s *Server) Handler() http.Handler {
	r := s.newRouter()

	routes := func(r chi.Router) {
		r.Get("/", s.handlePage)
		r.Post("/contact", s.handleContactForm)
		r.Post("/api/contact", s.handleContactAPI)
		r.Get("/healthz", s.handleHealthz)
	}

	base := strings.TrimSuffix(s.opts.BasePath, "/")
	if base == "" {
		routes(r)
		return r
	}
	r.Route(base, routes)
	return r
}

// newRouter returns a router carrying the middleware stack shared by every route
func (s *Server) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	if base := strings.TrimSuffix(s.opts.BasePath, "/"); base != "" {
		r.Use(redirectBase(base))
	}
	return r
}

// redirectBase sends the base path without its trailing slash to the page
func redirectBase(base string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == base && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				http.Redirect(w, r, base+"/", http.StatusMovedPermanently)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Run listens until ctx is done and then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.opts.Address,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.log.Info("listening on http://%s%s", s.opts.Address, s.opts.BasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.log.Info("server exited")
	return nil
}

// logRequests logs every request through the component logger. Server
// errors, including recovered panics, are logged as warnings.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []logger.Field{
			logger.F("method", r.Method),
			logger.F("path", r.URL.Path),
			logger.F("status", status),
			logger.F("request_id", middleware.GetReqID(r.Context())),
			logger.Duration(time.Since(started)),
		}
		if status >= http.StatusInternalServerError {
			s.log.WarnWithFields("request failed", fields)
			return
		}
		s.log.DebugWithFields("request", fields)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, parseQuery(r.URL.Query()), nil, nil)
}

// handleContactForm is the post-back target of both page forms
func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	flow, err := contact.ParseFlow(r.PostForm.Get("flow"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := parseQuery(r.PostForm)
	q.Menu = false
	q.Section = formSection(s.Page(), flow)

	selector := contact.NewSelector()
	selector.Select(q.Audience)
	c := contact.NewController(flow, contact.SubmitterFunc(s.accept),
		contact.WithAudience(selector),
		contact.WithLogger(s.log.WithComponent("contact")),
		contact.WithClearOnSuccess(s.opts.ClearOnSuccess),
	)
	c.Restore(contact.Form{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
		Consent: r.PostForm.Get("consent") != "",
	})

	status := http.StatusOK
	invalid := map[contact.Flow]*contact.ValidationError{}
	if err := contact.Validate(c.Form(), flow); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			invalid[flow] = verr
		}
		status = http.StatusUnprocessableEntity
	} else if outcome, err := c.SubmitAndWait(r.Context()); err != nil || outcome.Err != nil {
		status = http.StatusInternalServerError
	}

	s.render(w, status, q, map[contact.Flow]contact.State{flow: c.State()}, invalid)
}

type errorResponse struct {
	Error  string                   `json:"error"`
	Fields map[contact.Field]string `json:"fields,omitempty"`
}

// handleContactAPI accepts a JSON submission
func (s *Server) handleContactAPI(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var submission contact.Submission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	flow, err := contact.ParseFlow(string(submission.Flow))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	submission.Flow = flow

	if flow == contact.FlowContact {
		audience, err := contact.ParseAudience(string(submission.Audience))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		submission.Audience = audience
	} else {
		submission.Audience = ""
	}

	if err := contact.Validate(submission.Form, flow); err != nil {
		resp := errorResponse{Error: err.Error()}
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			resp.Fields = verr.Fields
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	receipt, err := s.accept(r.Context(), submission)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "submission could not be accepted"})
		return
	}
	writeJSON(w, http.StatusAccepted, receipt)
}

// accept assigns a receipt to a validated submission. Submissions are
// logged, not stored.
func (s *Server) accept(ctx context.Context, submission contact.Submission) (contact.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return contact.Receipt{}, err
	}
	receipt := contact.Receipt{ID: uuid.NewString(), Status: "received"}

	fields := []logger.Field{logger.F("id", receipt.ID), logger.F("flow", submission.Flow)}
	if submission.Audience != "" {
		fields = append(fields, logger.F("audience", submission.Audience))
	}
	s.log.InfoWithFields("submission received", fields)
	return receipt, nil
}

func (s *Server) render(w http.ResponseWriter, status int, q pageQuery, forms map[contact.Flow]contact.State, invalid map[contact.Flow]*contact.ValidationError) {
	var buf bytes.Buffer
	err := renderPage(&buf, &renderState{
		page:       s.Page(),
		base:       s.opts.BasePath,
		query:      q,
		disclosure: restoreDisclosure(s.opts.DisclosureScope, q.Open),
		forms:      forms,
		invalid:    invalid,
		log:        s.log,
	})
	if err != nil {
		s.log.ErrorWithFields("failed to render page", []logger.Field{logger.Error(err)})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func restoreDisclosure(scope disclosure.Scope, open []string) *disclosure.Controller {
	d := disclosure.New(scope)
	d.Restore(open...)
	return d
}

func renderPage(w io.Writer, st *renderState) error {
	view, err := buildView(st)
	if err != nil {
		return err
	}
	if err := pageTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// formSection returns the section hosting flow's form
func formSection(page *site.Page, flow contact.Flow) site.SectionID {
	for _, s := range page.Sections {
		if s.Form == string(flow) {
			return s.ID
		}
	}
	return site.SectionContact
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
