package model

import "strconv"

// FieldName identifies one of the signup form inputs.
type FieldName string

const (
	FieldFirstName       FieldName = "firstName"
	FieldLastName        FieldName = "lastName"
	FieldEmail           FieldName = "email"
	FieldPassword        FieldName = "password"
	FieldPasswordConfirm FieldName = "passwordConfirm"
)

const (
	FormatEmail    = "email"
	FormatPassword = "password"
)

const (
	ValidationRuleRequired     = "required"
	ValidationRuleFormat       = "format"
	ValidationRuleMinLength    = "minLength"
	ValidationRuleCaseMix      = "caseMix"
	ValidationRuleContainsName = "containsName"
)

// DefaultPasswordMinLength is the minimum password length enforced by the
// signup form.
const DefaultPasswordMinLength = 8

// ValidationRule represents a single validation constraint applied to a field.
// Use the ValidationRule* constants for Kind. Length limits encode their
// threshold in Params["value"]; containsName lists the sibling fields to check
// in Params["fields"] as a comma separated list.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field describes one input of the signup form.
type Field struct {
	Name        FieldName        `json:"name"`
	Format      string           `json:"format,omitempty"`
	Label       string           `json:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Description string           `json:"description,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
}

// Secret reports whether the field should be masked when prompted.
func (f Field) Secret() bool {
	return f.Format == FormatPassword
}

// Required reports whether the field carries a required rule.
func (f Field) Required() bool {
	for _, rule := range f.Validations {
		if rule.Kind == ValidationRuleRequired {
			return true
		}
	}
	return false
}

// FormModel is the ordered set of fields plus the endpoint metadata the
// submission pipeline targets.
type FormModel struct {
	OperationID string  `json:"operationId"`
	Summary     string  `json:"summary,omitempty"`
	Fields      []Field `json:"fields"`
}

// Field looks up a field by name.
func (m FormModel) Field(name FieldName) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (m FormModel) Names() []FieldName {
	out := make([]FieldName, 0, len(m.Fields))
	for _, field := range m.Fields {
		out = append(out, field.Name)
	}
	return out
}

// FieldNames returns the signup field names in prompt order.
func FieldNames() []FieldName {
	return []FieldName{
		FieldFirstName,
		FieldLastName,
		FieldEmail,
		FieldPassword,
		FieldPasswordConfirm,
	}
}

// SignupForm returns the canonical signup form definition.
func SignupForm() FormModel {
	return FormModel{
		OperationID: "signup",
		Summary:     "Create an account",
		Fields: []Field{
			{
				Name:        FieldFirstName,
				Label:       "First name",
				Validations: []ValidationRule{{Kind: ValidationRuleRequired}},
			},
			{
				Name:        FieldLastName,
				Label:       "Last name",
				Validations: []ValidationRule{{Kind: ValidationRuleRequired}},
			},
			{
				Name:        FieldEmail,
				Format:      FormatEmail,
				Label:       "Email",
				Placeholder: "name@example.com",
				Validations: []ValidationRule{
					{Kind: ValidationRuleRequired},
					{Kind: ValidationRuleFormat, Params: map[string]string{"format": FormatEmail}},
				},
			},
			{
				Name:        FieldPassword,
				Format:      FormatPassword,
				Label:       "Password",
				Description: "At least 8 characters, mixing lowercase and uppercase letters.",
				Validations: PasswordRules(DefaultPasswordMinLength),
			},
			{
				Name:        FieldPasswordConfirm,
				Format:      FormatPassword,
				Label:       "Password confirmation",
				Validations: PasswordRules(DefaultPasswordMinLength),
			},
		},
	}
}

// PasswordRules returns the ordered rule list shared by the password and
// password confirmation fields.
func PasswordRules(minLength int) []ValidationRule {
	return []ValidationRule{
		{Kind: ValidationRuleRequired},
		{Kind: ValidationRuleMinLength, Params: map[string]string{"value": strconv.Itoa(minLength)}},
		{Kind: ValidationRuleCaseMix},
		{Kind: ValidationRuleContainsName, Params: map[string]string{
			"fields": string(FieldFirstName) + "," + string(FieldLastName),
		}},
	}
}
