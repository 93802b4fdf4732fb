package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-signup/pkg/model"
)

// ErrUnknownField is returned when a caller addresses a field the state does
// not track.
var ErrUnknownField = errors.New("form: unknown field")

// Values is a snapshot of field values keyed by field name. Validators receive
// it as their read-only view of sibling fields.
type Values map[model.FieldName]string

// Get returns the value for name, or the empty string when absent.
func (v Values) Get(name model.FieldName) string {
	if v == nil {
		return ""
	}
	return v[name]
}

// State tracks the current value and touched flag of every form field. It is
// owned by a single control flow and takes no locks.
type State struct {
	fields  []model.FieldName
	values  map[model.FieldName]string
	touched map[model.FieldName]bool
}

// New creates an empty, untouched state for the given fields. With no fields
// it tracks the signup form fields.
func New(fields ...model.FieldName) *State {
	if len(fields) == 0 {
		fields = model.FieldNames()
	}
	s := &State{
		fields: append([]model.FieldName(nil), fields...),
	}
	s.Reset()
	return s
}

// Fields returns the tracked field names in declaration order.
func (s *State) Fields() []model.FieldName {
	if s == nil {
		return nil
	}
	return append([]model.FieldName(nil), s.fields...)
}

// Set writes the current value of a field.
func (s *State) Set(name model.FieldName, value string) error {
	if err := s.check(name); err != nil {
		return err
	}
	s.values[name] = value
	return nil
}

// Touch marks a field as having received and lost focus.
func (s *State) Touch(name model.FieldName) error {
	if err := s.check(name); err != nil {
		return err
	}
	s.touched[name] = true
	return nil
}

// Value returns the current value of a field.
func (s *State) Value(name model.FieldName) string {
	if s == nil {
		return ""
	}
	return s.values[name]
}

// Touched reports whether the field has been touched.
func (s *State) Touched(name model.FieldName) bool {
	if s == nil {
		return false
	}
	return s.touched[name]
}

// Values returns a copy of the current values.
func (s *State) Values() Values {
	if s == nil {
		return nil
	}
	out := make(Values, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// FullName joins the first and last name the way the form displays it.
func (s *State) FullName() string {
	return fmt.Sprintf("%s %s", s.Value(model.FieldFirstName), s.Value(model.FieldLastName))
}

// Reset clears every value and touched flag.
func (s *State) Reset() {
	if s == nil {
		return
	}
	s.values = make(map[model.FieldName]string, len(s.fields))
	s.touched = make(map[model.FieldName]bool, len(s.fields))
	for _, name := range s.fields {
		s.values[name] = ""
		s.touched[name] = false
	}
}

// Pristine reports whether every field is empty and untouched.
func (s *State) Pristine() bool {
	if s == nil {
		return true
	}
	for _, name := range s.fields {
		if s.values[name] != "" || s.touched[name] {
			return false
		}
	}
	return true
}

func (s *State) check(name model.FieldName) error {
	if s == nil {
		return errors.New("form: state is nil")
	}
	if _, ok := s.values[name]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, strings.TrimSpace(string(name)))
	}
	return nil
}
