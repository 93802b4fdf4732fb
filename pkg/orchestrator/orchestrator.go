package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/goliatone/go-signup/pkg/client"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/validation"
)

const (
	StateIdle                 = "idle"
	StateAwaitingProfile      = "awaiting_profile"
	StateAwaitingUserCreation = "awaiting_user_creation"
)

const (
	EventSubmit          = "submit"
	EventProfileReceived = "profile_received"
	EventProfileMissing  = "profile_missing"
	EventUserCreated     = "user_created"
)

var (
	// ErrInvalidForm is returned by Submit when a field fails validation. No
	// request is issued.
	ErrInvalidForm = errors.New("orchestrator: form is invalid")
	// ErrSubmissionInProgress is returned when Submit is called while a
	// previous submission has not settled.
	ErrSubmissionInProgress = errors.New("orchestrator: submission already in progress")
)

// Status describes how a submission settled.
type Status string

const (
	// StatusCompleted means the user record was sent and the form reset.
	StatusCompleted Status = "completed"
	// StatusHalted means no profile was found; nothing else was sent and the
	// form was left untouched.
	StatusHalted Status = "halted"
)

// Outcome reports what a submission did.
type Outcome struct {
	ID       string                `json:"id"`
	Status   Status                `json:"status"`
	SizeHint int                   `json:"sizeHint"`
	Profile  *client.RemoteProfile `json:"profile,omitempty"`
	Record   *client.UserRecord    `json:"record,omitempty"`
	Result   client.Result         `json:"result"`
}

// AsyncResult is delivered by SubmitAsync once the submission settles.
type AsyncResult struct {
	Outcome Outcome
	Err     error
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithEngine overrides the validation engine gating Submit.
func WithEngine(engine *validation.Engine) Option {
	return func(o *Orchestrator) {
		if engine != nil {
			o.engine = engine
		}
	}
}

// WithLogger attaches a logger for transition and response tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSanitizer overrides how identity values are cleaned before they are
// validated and sent. Pass nil to use the form values verbatim.
func WithSanitizer(fn Sanitizer) Option {
	return func(o *Orchestrator) {
		o.sanitize = fn
	}
}

// WithIDGenerator overrides the submission correlation id generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// Orchestrator sequences the profile lookup and user creation for one form
// state. It is meant to be driven from a single control flow; mu only
// serialises the idle check, the form snapshot and the submit transition so
// overlapping submits are rejected before they read the form.
type Orchestrator struct {
	mu       sync.Mutex
	state    *form.State
	profiles client.ProfileFetcher
	users    client.UserCreator
	engine   *validation.Engine
	sanitize Sanitizer
	newID    func() string
	logger   *zap.Logger
	machine  *fsm.FSM
}

// New constructs an Orchestrator bound to state and the two transport
// capabilities. Missing options default to the signup rule engine, markup
// stripping, uuid correlation ids and a no-op logger.
func New(state *form.State, profiles client.ProfileFetcher, users client.UserCreator, options ...Option) (*Orchestrator, error) {
	if state == nil {
		return nil, errors.New("orchestrator: form state is required")
	}
	if profiles == nil || users == nil {
		return nil, errors.New("orchestrator: profile fetcher and user creator are required")
	}

	o := &Orchestrator{
		state:    state,
		profiles: profiles,
		users:    users,
		sanitize: StripMarkup,
		newID:    uuid.NewString,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.engine == nil {
		o.engine = validation.Default()
	}

	o.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventSubmit, Src: []string{StateIdle}, Dst: StateAwaitingProfile},
			{Name: EventProfileReceived, Src: []string{StateAwaitingProfile}, Dst: StateAwaitingUserCreation},
			{Name: EventProfileMissing, Src: []string{StateAwaitingProfile}, Dst: StateIdle},
			{Name: EventUserCreated, Src: []string{StateAwaitingUserCreation}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				o.logger.Debug("submission transition",
					zap.String("id", submissionID(e)),
					zap.String("event", e.Event),
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
				)
			},
		},
	)

	return o, nil
}

// Current returns the current state machine state.
func (o *Orchestrator) Current() string {
	return o.machine.Current()
}

// State returns the form state the orchestrator submits and resets.
func (o *Orchestrator) State() *form.State {
	return o.state
}

// Submit validates the form and runs the two-step pipeline, blocking until it
// settles. Identity values are sanitised before validation, so the values
// that pass the rules are the ones sent. A missing profile halts the pipeline
// without error. Once the user creation call returns, the form is reset
// whatever the response was.
func (o *Orchestrator) Submit(ctx context.Context) (Outcome, error) {
	if ctx == nil {
		return Outcome{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	values, outcome, err := o.begin(ctx)
	if err != nil {
		return Outcome{}, err
	}

	profile := o.profiles.FetchProfile(ctx, outcome.SizeHint)
	if !profile.HasImage() {
		o.logger.Debug("no profile found, submission halted",
			zap.String("id", outcome.ID),
			zap.Int("size_hint", outcome.SizeHint),
		)
		outcome.Status = StatusHalted
		if err := o.fire(ctx, EventProfileMissing, outcome.ID); err != nil {
			return outcome, err
		}
		return outcome, nil
	}

	record := composeRecord(values, profile.ThumbnailURL)
	outcome.Profile = profile
	outcome.Record = &record
	if err := o.fire(ctx, EventProfileReceived, outcome.ID); err != nil {
		return outcome, err
	}

	outcome.Result = o.users.CreateUser(ctx, record)
	o.logger.Debug("second request response",
		zap.String("id", outcome.ID),
		zap.Int("status", outcome.Result.StatusCode),
		zap.Any("body", outcome.Result.Body),
	)

	o.state.Reset()
	outcome.Status = StatusCompleted
	if err := o.fire(ctx, EventUserCreated, outcome.ID); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// SubmitAsync runs Submit on its own goroutine and delivers the result on the
// returned channel, which is closed afterwards. The form state must not be
// mutated until the result arrives.
func (o *Orchestrator) SubmitAsync(ctx context.Context) <-chan AsyncResult {
	out := make(chan AsyncResult, 1)
	go func() {
		defer close(out)
		outcome, err := o.Submit(ctx)
		out <- AsyncResult{Outcome: outcome, Err: err}
	}()
	return out
}

// begin takes the form snapshot and fires the submit transition under mu.
func (o *Orchestrator) begin(ctx context.Context) (form.Values, Outcome, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.machine.Is(StateIdle) {
		return nil, Outcome{}, ErrSubmissionInProgress
	}

	values := o.cleanValues(o.state.Values())
	if !o.engine.Valid(values) {
		return nil, Outcome{}, ErrInvalidForm
	}

	outcome := Outcome{
		ID:       o.newID(),
		SizeHint: sizeHint(values),
	}
	if err := o.fire(ctx, EventSubmit, outcome.ID); err != nil {
		return nil, Outcome{}, err
	}
	return values, outcome, nil
}

func (o *Orchestrator) fire(ctx context.Context, event, id string) error {
	// Transitions always run to completion, even when the caller's context
	// is cancelled mid pipeline.
	err := o.machine.Event(context.WithoutCancel(ctx), event, id)
	if err == nil {
		return nil
	}
	var invalid fsm.InvalidEventError
	if event == EventSubmit && errors.As(err, &invalid) {
		return ErrSubmissionInProgress
	}
	return fmt.Errorf("orchestrator: %s: %w", event, err)
}

var identityFields = []model.FieldName{
	model.FieldFirstName,
	model.FieldLastName,
	model.FieldEmail,
}

// cleanValues applies the sanitizer to the identity fields of a snapshot.
// Passwords are never rewritten.
func (o *Orchestrator) cleanValues(values form.Values) form.Values {
	if o.sanitize == nil {
		return values
	}
	for _, name := range identityFields {
		if raw, ok := values[name]; ok {
			values[name] = o.sanitize(raw)
		}
	}
	return values
}

func composeRecord(values form.Values, thumbnailURL string) client.UserRecord {
	return client.UserRecord{
		FirstName:    values.Get(model.FieldFirstName),
		LastName:     values.Get(model.FieldLastName),
		Email:        values.Get(model.FieldEmail),
		ThumbnailURL: thumbnailURL,
	}
}

// sizeHint is the character count of the last name, 0 when absent.
func sizeHint(values form.Values) int {
	return utf8.RuneCountInString(values.Get(model.FieldLastName))
}

func submissionID(e *fsm.Event) string {
	if e == nil || len(e.Args) == 0 {
		return ""
	}
	if id, ok := e.Args[0].(string); ok {
		return id
	}
	return ""
}
