package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/validation"
)

// OutputFormat controls how a submission outcome is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints the session applies when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	InfoPrefix:  "✔ ",
	ErrorPrefix: "✘ ",
}

// Option configures the Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithEngine overrides the validation engine used to surface field errors.
func WithEngine(engine *validation.Engine) Option {
	return func(s *Session) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithFormModel overrides the fields prompted and their order.
func WithFormModel(def model.FormModel) Option {
	return func(s *Session) {
		if len(def.Fields) > 0 {
			s.form = def
		}
	}
}

// WithRevealPasswords prompts both password fields with visible input.
func WithRevealPasswords(reveal bool) Option {
	return func(s *Session) {
		s.showPassword = reveal
		s.showPasswordConfirm = reveal
	}
}

// WithConfirmSubmit toggles the yes/no prompt shown before submitting.
func WithConfirmSubmit(confirm bool) Option {
	return func(s *Session) {
		s.confirmSubmit = confirm
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
