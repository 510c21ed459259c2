package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yildizm/vss-site/internal/logger"
)

// Outcome is the result of one Submit call
type Outcome struct {
	Status  Status
	Receipt Receipt
	Err     error
	// Stale is true when the form was edited or the submission canceled
	// before the submitter answered; the answer was discarded
	Stale bool
}

// State is a snapshot of a controller for rendering
type State struct {
	Flow     Flow
	Audience Audience
	Form     Form
	Status   Status
	Err      error
	Receipt  Receipt
}

// Option configures a Controller
type Option func(*Controller)

// WithTimeout bounds every submission; zero means no deadline beyond ctx
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithLogger sets the controller's logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithAudience attaches the audience tab selector whose value is sent with
// each submission
func WithAudience(selector *Selector) Option {
	return func(c *Controller) { c.audience = selector }
}

// WithClearOnSuccess empties the form after a successful submission
func WithClearOnSuccess(clear bool) Option {
	return func(c *Controller) { c.clearOnSuccess = clear }
}

// Controller owns one flow's form values and submission status
type Controller struct {
	mu             sync.Mutex
	flow           Flow
	form           Form
	status         Status
	err            error
	receipt        Receipt
	generation     uint64
	cancel         context.CancelFunc
	submitter      Submitter
	audience       *Selector
	timeout        time.Duration
	clearOnSuccess bool
	log            *logger.Logger
}

// NewController creates an idle controller for flow
func NewController(flow Flow, submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		flow:      flow,
		submitter: submitter,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Flow returns the flow this controller serves
func (c *Controller) Flow() Flow {
	return c.flow
}

// Form returns the current form values
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Status returns the submission status
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// State returns a snapshot of everything a renderer needs
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Flow:     c.flow,
		Audience: c.currentAudience(),
		Form:     c.form,
		Status:   c.status,
		Err:      c.err,
		Receipt:  c.receipt,
	}
}

func (c *Controller) currentAudience() Audience {
	if c.audience == nil || c.flow != FlowContact {
		return ""
	}
	return c.audience.Current()
}

// UpdateField replaces one text field, leaving the others untouched
func (c *Controller) UpdateField(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	form, err := c.form.WithText(field, value)
	if err != nil {
		return err
	}
	c.form = form
	c.editedLocked()
	return nil
}

// SetConsent sets the consent checkbox
func (c *Controller) SetConsent(consent bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = c.form.WithConsent(consent)
	c.editedLocked()
}

// Restore replaces the whole form, e.g. from a posted web form, without
// touching the status
func (c *Controller) Restore(form Form) {
	c.mu.Lock()
	c.form = form
	c.mu.Unlock()
}

// editedLocked abandons an in-flight submission and clears a previous result
func (c *Controller) editedLocked() {
	switch c.status {
	case StatusSending:
		c.abandonLocked()
		c.log.Debug("form edited while sending, submission abandoned")
	case StatusSuccess, StatusError:
		c.status = StatusIdle
		c.err = nil
	}
}

func (c *Controller) abandonLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.status = StatusIdle
	c.err = nil
}

// Cancel abandons an in-flight submission, returning the status to idle
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusSending {
		c.abandonLocked()
	}
}

// Submit moves the status to sending and delivers the form through the
// submitter in the background. The returned channel yields exactly one
// Outcome and is then closed.
func (c *Controller) Submit(ctx context.Context) (<-chan Outcome, error) {
	c.mu.Lock()
	if c.status == StatusSending {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	c.generation++
	generation := c.generation
	c.status = StatusSending
	c.err = nil
	c.receipt = Receipt{}

	var (
		submitCtx context.Context
		cancel    context.CancelFunc
	)
	if c.timeout > 0 {
		submitCtx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		submitCtx, cancel = context.WithCancel(ctx)
	}
	c.cancel = cancel

	submission := Submission{Flow: c.flow, Audience: c.currentAudience(), Form: c.form}
	submitter := c.submitter
	c.mu.Unlock()

	c.log.InfoWithFields("submission started", []logger.Field{logger.F("flow", c.flow)})

	done := make(chan Outcome, 1)
	go func() {
		defer close(done)
		started := time.Now()

		var (
			receipt Receipt
			err     error
		)
		if submitter == nil {
			err = &SubmitError{Kind: ErrKindInternal, Message: "no submitter configured"}
		} else {
			receipt, err = submitter.Submit(submitCtx, submission)
		}
		cancel()

		done <- c.finish(generation, receipt, err, time.Since(started))
	}()

	return done, nil
}

func (c *Controller) finish(generation uint64, receipt Receipt, err error, took time.Duration) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.log.DebugWithFields("discarding stale submission result", []logger.Field{logger.F("flow", c.flow)})
		return Outcome{Status: c.status, Stale: true}
	}
	c.cancel = nil

	if err != nil {
		var se *SubmitError
		if !errors.As(err, &se) {
			se = classifyTransportError(err)
		}
		c.status = StatusError
		c.err = se
		c.log.WarnWithFields("submission failed", []logger.Field{
			logger.F("flow", c.flow), logger.Error(se), logger.Duration(took),
		})
		return Outcome{Status: StatusError, Err: se}
	}

	c.status = StatusSuccess
	c.receipt = receipt
	if c.clearOnSuccess {
		c.form = Form{}
	}
	c.log.InfoWithFields("submission succeeded", []logger.Field{
		logger.F("flow", c.flow), logger.F("id", receipt.ID), logger.Duration(took),
	})
	return Outcome{Status: StatusSuccess, Receipt: receipt}
}

// SubmitAndWait submits and blocks until the outcome is known
func (c *Controller) SubmitAndWait(ctx context.Context) (Outcome, error) {
	done, err := c.Submit(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return <-done, nil
}
