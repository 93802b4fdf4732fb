package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
)

func validValues() form.Values {
	return form.Values{
		model.FieldFirstName:       "John",
		model.FieldLastName:        "Doe",
		model.FieldEmail:           "john@example.com",
		model.FieldPassword:        "Secret123",
		model.FieldPasswordConfirm: "Secret123",
	}
}

func stateWith(t *testing.T, values form.Values, touched ...model.FieldName) *form.State {
	t.Helper()
	state := form.New()
	for name, value := range values {
		if err := state.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	for _, name := range touched {
		if err := state.Touch(name); err != nil {
			t.Fatalf("touch %s: %v", name, err)
		}
	}
	return state
}

func TestFieldErrors_UntouchedFieldsAreSilent(t *testing.T) {
	engine := Default()
	state := stateWith(t, form.Values{
		model.FieldEmail:    "not-an-email",
		model.FieldPassword: "abc",
	})

	for _, name := range model.FieldNames() {
		if got := engine.FieldErrors(state, name); len(got) != 0 {
			t.Fatalf("expected no errors for untouched %s, got %v", name, got)
		}
		if engine.FieldInvalid(state, name) {
			t.Fatalf("expected untouched %s to not be reported invalid", name)
		}
	}
	if got := engine.Errors(state); got != nil {
		t.Fatalf("expected no surfaced errors, got %v", got)
	}
}

func TestFieldErrors_Email(t *testing.T) {
	engine := Default()
	cases := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "empty", value: "", want: []string{"Email is required"}},
		{name: "malformed", value: "john.example.com", want: []string{"Email is not valid"}},
		{name: "valid", value: "john@example.com", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := stateWith(t, form.Values{model.FieldEmail: tc.value}, model.FieldEmail)
			if diff := cmp.Diff(tc.want, engine.FieldErrors(state, model.FieldEmail)); diff != "" {
				t.Fatalf("email errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldErrors_Password(t *testing.T) {
	engine := Default()
	cases := []struct {
		name   string
		values form.Values
		want   []string
	}{
		{
			name:   "empty reports only required",
			values: form.Values{model.FieldFirstName: "John", model.FieldLastName: "Doe"},
			want:   []string{"Password is required"},
		},
		{
			name:   "short and single case",
			values: form.Values{model.FieldPassword: "abc"},
			want: []string{
				"Password should not be less than 8 characters",
				"Password should contain lowercase and uppercase characters",
			},
		},
		{
			name: "contains first name regardless of case",
			values: form.Values{
				model.FieldFirstName: "John",
				model.FieldLastName:  "Doe",
				model.FieldPassword:  "MyJOHNpass",
			},
			want: []string{"Password should not contains lastname or firstname"},
		},
		{
			name: "all failures at once",
			values: form.Values{
				model.FieldLastName: "doe",
				model.FieldPassword: "doe1",
			},
			want: []string{
				"Password should not be less than 8 characters",
				"Password should contain lowercase and uppercase characters",
				"Password should not contains lastname or firstname",
			},
		},
		{
			name:   "empty names never match",
			values: form.Values{model.FieldPassword: "Secret123"},
			want:   nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := stateWith(t, tc.values, model.FieldPassword)
			if diff := cmp.Diff(tc.want, engine.FieldErrors(state, model.FieldPassword)); diff != "" {
				t.Fatalf("password errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldErrors_PasswordConfirmSharesPasswordRules(t *testing.T) {
	engine := Default()
	state := stateWith(t, form.Values{}, model.FieldPasswordConfirm)

	want := []string{"Password confirmation is required"}
	if diff := cmp.Diff(want, engine.FieldErrors(state, model.FieldPasswordConfirm)); diff != "" {
		t.Fatalf("confirm errors mismatch (-want +got):\n%s", diff)
	}

	_ = state.Set(model.FieldPasswordConfirm, "alllower")
	got := engine.Check(model.FieldPasswordConfirm, state.Values())
	if len(got) != 1 || got[0].Tag != model.ValidationRuleCaseMix {
		t.Fatalf("expected caseMix failure on confirmation, got %#v", got)
	}
}

func TestCaseMix_SingleCaseAlwaysFails(t *testing.T) {
	rule := CaseMix("case")
	for _, value := range []string{"abcdefgh", "ABCDEFGH", "lower123", "UPPER-456", "ß"} {
		failure, failed := rule(value, nil)
		if !failed || failure.Tag != model.ValidationRuleCaseMix {
			t.Fatalf("expected caseMix failure for %q", value)
		}
	}
	if _, failed := rule("Mixed", nil); failed {
		t.Fatalf("expected mixed case value to pass")
	}
}

func TestNotContainsName(t *testing.T) {
	rule := NotContainsName("name", model.FieldFirstName, model.FieldLastName)

	siblings := form.Values{model.FieldFirstName: "doe", model.FieldLastName: "john"}
	failure, failed := rule("johndoe123", siblings)
	if !failed || failure.Tag != model.ValidationRuleContainsName {
		t.Fatalf("expected containsName failure, got %#v (failed=%v)", failure, failed)
	}

	if _, failed := rule("johndoe123", form.Values{}); failed {
		t.Fatalf("empty sibling names must not match")
	}
	if _, failed := rule("Unrelated1", siblings); failed {
		t.Fatalf("unexpected containsName failure")
	}
}

func TestPasswordMatch(t *testing.T) {
	values := form.Values{model.FieldPassword: "password123", model.FieldPasswordConfirm: "password123"}
	if got := PasswordMatch(values); got != "" {
		t.Fatalf("expected empty string for matching passwords, got %q", got)
	}

	values[model.FieldPasswordConfirm] = "password124"
	if got := PasswordMatch(values); got != PasswordMismatchMessage {
		t.Fatalf("expected mismatch message, got %q", got)
	}

	if got := PasswordMatch(form.Values{}); got != "" {
		t.Fatalf("expected empty passwords to match, got %q", got)
	}
}

func TestValid(t *testing.T) {
	engine := Default()

	if !engine.Valid(validValues()) {
		t.Fatalf("expected valid values to pass: %v", engine.Messages(model.FieldPassword, validValues()))
	}

	missing := validValues()
	missing[model.FieldLastName] = ""
	if engine.Valid(missing) {
		t.Fatalf("expected missing last name to fail")
	}

	leaked := validValues()
	leaked[model.FieldPassword] = "Doe12345"
	if engine.Valid(leaked) {
		t.Fatalf("expected password containing last name to fail")
	}
}

func TestErrors_OnlyTouchedFailingFields(t *testing.T) {
	engine := Default()
	values := validValues()
	values[model.FieldEmail] = "broken"
	values[model.FieldFirstName] = ""
	state := stateWith(t, values, model.FieldEmail, model.FieldPassword)

	want := map[model.FieldName][]string{
		model.FieldEmail: {"Email is not valid"},
	}
	if diff := cmp.Diff(want, engine.Errors(state)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEngine_RejectsUnknownRules(t *testing.T) {
	def := model.FormModel{Fields: []model.Field{{
		Name:        model.FieldEmail,
		Validations: []model.ValidationRule{{Kind: "pattern"}},
	}}}
	if _, err := NewEngine(def); err == nil {
		t.Fatalf("expected unknown rule error")
	}

	def.Fields[0].Validations = []model.ValidationRule{{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "x"}}}
	if _, err := NewEngine(def); err == nil {
		t.Fatalf("expected invalid minLength error")
	}
}
