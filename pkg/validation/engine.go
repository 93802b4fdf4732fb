package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
)

// Engine holds the compiled rule set of every field of a form model.
type Engine struct {
	order []model.FieldName
	rules map[model.FieldName]RuleSet
}

// NewEngine compiles the validations declared on each field of the model.
// Unknown rule kinds are rejected so a typo never silently disables a check.
func NewEngine(def model.FormModel) (*Engine, error) {
	e := &Engine{
		rules: make(map[model.FieldName]RuleSet, len(def.Fields)),
	}
	for _, field := range def.Fields {
		set, err := compileField(field)
		if err != nil {
			return nil, fmt.Errorf("validation: field %s: %w", field.Name, err)
		}
		e.order = append(e.order, field.Name)
		e.rules[field.Name] = set
	}
	return e, nil
}

// Default returns the engine for the signup form.
func Default() *Engine {
	e, err := NewEngine(model.SignupForm())
	if err != nil {
		panic(err)
	}
	return e
}

// Check evaluates the rules of a field against the given values, ignoring
// touched flags.
func (e *Engine) Check(field model.FieldName, values form.Values) []Failure {
	if e == nil {
		return nil
	}
	return e.rules[field].Evaluate(values.Get(field), values)
}

// Messages returns the failure messages for a field, ignoring touched flags.
func (e *Engine) Messages(field model.FieldName, values form.Values) []string {
	failures := e.Check(field, values)
	if len(failures) == 0 {
		return nil
	}
	out := make([]string, 0, len(failures))
	for _, failure := range failures {
		out = append(out, failure.Message)
	}
	return out
}

// FieldErrors returns the messages to surface for a field. Untouched fields
// never report errors.
func (e *Engine) FieldErrors(state *form.State, field model.FieldName) []string {
	if state == nil || !state.Touched(field) {
		return nil
	}
	return e.Messages(field, state.Values())
}

// FieldInvalid reports whether a field is touched and failing.
func (e *Engine) FieldInvalid(state *form.State, field model.FieldName) bool {
	return len(e.FieldErrors(state, field)) > 0
}

// Errors returns the surfaced messages of every touched, failing field.
func (e *Engine) Errors(state *form.State) map[model.FieldName][]string {
	if e == nil || state == nil {
		return nil
	}
	out := make(map[model.FieldName][]string)
	for _, name := range e.order {
		if msgs := e.FieldErrors(state, name); len(msgs) > 0 {
			out[name] = msgs
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Valid reports whether every field passes its rules regardless of touched
// flags.
func (e *Engine) Valid(values form.Values) bool {
	if e == nil {
		return true
	}
	for _, name := range e.order {
		if len(e.Check(name, values)) > 0 {
			return false
		}
	}
	return true
}

// PasswordMatch returns the empty string when password equals its
// confirmation and the mismatch message otherwise.
func PasswordMatch(values form.Values) string {
	if values.Get(model.FieldPassword) != values.Get(model.FieldPasswordConfirm) {
		return PasswordMismatchMessage
	}
	return ""
}

func compileField(field model.Field) (RuleSet, error) {
	set := make(RuleSet, 0, len(field.Validations))
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleRequired:
			set = append(set, Required(messageFor(field, rule, 0)))
		case model.ValidationRuleFormat:
			format := rule.Params["format"]
			if format == "" {
				format = field.Format
			}
			if format != model.FormatEmail {
				return nil, fmt.Errorf("unsupported format %q", format)
			}
			set = append(set, Email(messageFor(field, rule, 0)))
		case model.ValidationRuleMinLength:
			n, err := strconv.Atoi(strings.TrimSpace(rule.Params["value"]))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid minLength %q", rule.Params["value"])
			}
			set = append(set, MinLength(n, messageFor(field, rule, n)))
		case model.ValidationRuleCaseMix:
			set = append(set, CaseMix(messageFor(field, rule, 0)))
		case model.ValidationRuleContainsName:
			set = append(set, NotContainsName(messageFor(field, rule, 0), splitFields(rule.Params["fields"])...))
		default:
			return nil, fmt.Errorf("unknown rule %q", rule.Kind)
		}
	}
	return set, nil
}

func splitFields(raw string) []model.FieldName {
	if strings.TrimSpace(raw) == "" {
		return []model.FieldName{model.FieldFirstName, model.FieldLastName}
	}
	parts := strings.Split(raw, ",")
	out := make([]model.FieldName, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, model.FieldName(trimmed))
		}
	}
	return out
}
