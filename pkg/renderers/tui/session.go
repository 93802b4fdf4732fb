package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/orchestrator"
	"github.com/goliatone/go-signup/pkg/validation"
)

// Submitter runs the signup pipeline for the session's form state.
type Submitter interface {
	Submit(ctx context.Context) (orchestrator.Outcome, error)
}

// Session walks the signup fields in a terminal, surfacing the errors of each
// field once it has been answered, and submits when everything passes.
type Session struct {
	driver              PromptDriver
	state               *form.State
	engine              *validation.Engine
	submitter           Submitter
	form                model.FormModel
	theme               Theme
	showPassword        bool
	showPasswordConfirm bool
	confirmSubmit       bool
	logger              *zap.Logger
}

// NewSession constructs a Session with defaults (survey driver, signup form,
// default engine, confirmation prompt enabled).
func NewSession(state *form.State, submitter Submitter, options ...Option) (*Session, error) {
	if state == nil {
		return nil, errors.New("tui: form state is required")
	}
	if submitter == nil {
		return nil, errors.New("tui: submitter is required")
	}

	s := &Session{
		state:         state,
		submitter:     submitter,
		form:          model.SignupForm(),
		theme:         DefaultTheme,
		confirmSubmit: true,
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	if s.engine == nil {
		s.engine = validation.Default()
	}
	return s, nil
}

// TogglePasswordVisibility switches the password prompt between masked and
// visible input.
func (s *Session) TogglePasswordVisibility() {
	s.showPassword = !s.showPassword
}

// TogglePasswordConfirmVisibility switches the confirmation prompt between
// masked and visible input.
func (s *Session) TogglePasswordConfirmVisibility() {
	s.showPasswordConfirm = !s.showPasswordConfirm
}

// PasswordVisible reports whether the password prompt shows its input.
func (s *Session) PasswordVisible() bool {
	return s.showPassword
}

// PasswordConfirmVisible reports whether the confirmation prompt shows its
// input.
func (s *Session) PasswordConfirmVisible() bool {
	return s.showPasswordConfirm
}

// FieldInvalid reports whether a field is touched and failing.
func (s *Session) FieldInvalid(name model.FieldName) bool {
	return s.engine.FieldInvalid(s.state, name)
}

// Run prompts every field, then submits. It returns ErrAborted when the user
// interrupts input and ErrDeclined when the confirmation is refused.
func (s *Session) Run(ctx context.Context) (orchestrator.Outcome, error) {
	if ctx == nil {
		return orchestrator.Outcome{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return orchestrator.Outcome{}, err
	}

	for _, field := range s.form.Fields {
		if err := s.promptField(ctx, field); err != nil {
			return orchestrator.Outcome{}, err
		}
	}
	if err := s.reconcilePasswords(ctx); err != nil {
		return orchestrator.Outcome{}, err
	}

	name := strings.TrimSpace(s.state.FullName())
	if s.confirmSubmit {
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.theme.PromptPrefix + fmt.Sprintf("Create account for %s?", name),
			Default: true,
		})
		if err != nil {
			return orchestrator.Outcome{}, err
		}
		if !ok {
			return orchestrator.Outcome{}, ErrDeclined
		}
	}

	outcome, err := s.submitter.Submit(ctx)
	if err != nil {
		return outcome, err
	}

	switch outcome.Status {
	case orchestrator.StatusCompleted:
		s.info(ctx, s.theme.InfoPrefix+fmt.Sprintf("Signup submitted for %s", name))
	case orchestrator.StatusHalted:
		s.info(ctx, s.theme.InfoPrefix+"No profile found for this signup; nothing was submitted")
	}
	return outcome, nil
}

func (s *Session) promptField(ctx context.Context, field model.Field) error {
	for {
		value, err := s.ask(ctx, field)
		if err != nil {
			return err
		}
		if err := s.state.Set(field.Name, value); err != nil {
			return err
		}
		if err := s.state.Touch(field.Name); err != nil {
			return err
		}

		errs := s.engine.FieldErrors(s.state, field.Name)
		if len(errs) == 0 {
			return nil
		}
		s.logger.Debug("field rejected", zap.String("field", string(field.Name)), zap.Strings("errors", errs))
		for _, msg := range errs {
			s.info(ctx, s.theme.ErrorPrefix+msg)
		}
	}
}

func (s *Session) reconcilePasswords(ctx context.Context) error {
	password, hasPassword := s.form.Field(model.FieldPassword)
	confirm, hasConfirm := s.form.Field(model.FieldPasswordConfirm)
	if !hasPassword || !hasConfirm {
		return nil
	}
	for {
		msg := validation.PasswordMatch(s.state.Values())
		if msg == "" {
			return nil
		}
		s.info(ctx, s.theme.ErrorPrefix+msg)
		if err := s.promptField(ctx, password); err != nil {
			return err
		}
		if err := s.promptField(ctx, confirm); err != nil {
			return err
		}
	}
}

func (s *Session) ask(ctx context.Context, field model.Field) (string, error) {
	cfg := InputConfig{
		Message: s.theme.PromptPrefix + displayLabel(field),
		Help:    field.Description,
	}
	if field.Secret() && !s.visible(field.Name) {
		return s.driver.Password(ctx, cfg)
	}
	if !field.Secret() {
		cfg.Default = s.state.Value(field.Name)
	}
	return s.driver.Input(ctx, cfg)
}

func (s *Session) visible(name model.FieldName) bool {
	switch name {
	case model.FieldPassword:
		return s.showPassword
	case model.FieldPasswordConfirm:
		return s.showPasswordConfirm
	default:
		return true
	}
}

func (s *Session) info(ctx context.Context, msg string) {
	if err := s.driver.Info(ctx, msg); err != nil {
		s.logger.Debug("info message dropped", zap.Error(err))
	}
}

func displayLabel(field model.Field) string {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		label = string(field.Name)
	}
	if field.Required() {
		label += " *"
	}
	return label
}
