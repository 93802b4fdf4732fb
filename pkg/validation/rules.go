package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
)

var validate = validator.New()

// Failure is a single failed rule: the canonical tag plus the message shown
// next to the field.
type Failure struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Rule inspects a field value and a read-only view of its sibling values. It
// reports a failure when the value does not satisfy the rule.
type Rule func(value string, siblings form.Values) (Failure, bool)

// RuleSet is an ordered list of rules evaluated independently.
type RuleSet []Rule

// Evaluate runs every rule and returns all failures in rule order.
func (rs RuleSet) Evaluate(value string, siblings form.Values) []Failure {
	var out []Failure
	for _, rule := range rs {
		if rule == nil {
			continue
		}
		if failure, failed := rule(value, siblings); failed {
			out = append(out, failure)
		}
	}
	return out
}

// Required fails on an empty value.
func Required(message string) Rule {
	return func(value string, _ form.Values) (Failure, bool) {
		if value == "" {
			return Failure{Tag: model.ValidationRuleRequired, Message: message}, true
		}
		return Failure{}, false
	}
}

// Email fails on a non-empty value that is not a syntactically valid address.
func Email(message string) Rule {
	return func(value string, _ form.Values) (Failure, bool) {
		if value == "" {
			return Failure{}, false
		}
		if err := validate.Var(value, "email"); err != nil {
			return Failure{Tag: model.ValidationRuleFormat, Message: message}, true
		}
		return Failure{}, false
	}
}

// MinLength fails on a non-empty value shorter than n characters.
func MinLength(n int, message string) Rule {
	return func(value string, _ form.Values) (Failure, bool) {
		if value == "" {
			return Failure{}, false
		}
		if utf8.RuneCountInString(value) < n {
			return Failure{Tag: model.ValidationRuleMinLength, Message: message}, true
		}
		return Failure{}, false
	}
}

// CaseMix fails on a non-empty value lacking either a lowercase or an
// uppercase letter.
func CaseMix(message string) Rule {
	return func(value string, _ form.Values) (Failure, bool) {
		if value == "" {
			return Failure{}, false
		}
		var hasLower, hasUpper bool
		for _, char := range value {
			switch {
			case unicode.IsLower(char):
				hasLower = true
			case unicode.IsUpper(char):
				hasUpper = true
			}
		}
		if hasLower && hasUpper {
			return Failure{}, false
		}
		return Failure{Tag: model.ValidationRuleCaseMix, Message: message}, true
	}
}

// NotContainsName fails when the lowercased value contains the lowercased
// value of any of the given sibling fields. Empty siblings are skipped since
// every string contains the empty string.
func NotContainsName(message string, fields ...model.FieldName) Rule {
	return func(value string, siblings form.Values) (Failure, bool) {
		if value == "" {
			return Failure{}, false
		}
		lowered := strings.ToLower(value)
		for _, name := range fields {
			sibling := strings.ToLower(siblings.Get(name))
			if sibling == "" {
				continue
			}
			if strings.Contains(lowered, sibling) {
				return Failure{Tag: model.ValidationRuleContainsName, Message: message}, true
			}
		}
		return Failure{}, false
	}
}
