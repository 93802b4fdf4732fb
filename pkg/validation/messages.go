package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-signup/pkg/model"
)

// PasswordMismatchMessage is returned by PasswordMatch when the password and
// its confirmation differ.
const PasswordMismatchMessage = "Password does not match"

const (
	containsNameMessage = "Password should not contains lastname or firstname"
	caseMixMessage      = "Password should contain lowercase and uppercase characters"
)

func messageFor(field model.Field, rule model.ValidationRule, threshold int) string {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		label = string(field.Name)
	}
	switch rule.Kind {
	case model.ValidationRuleRequired:
		return fmt.Sprintf("%s is required", label)
	case model.ValidationRuleFormat:
		return fmt.Sprintf("%s is not valid", label)
	case model.ValidationRuleMinLength:
		return fmt.Sprintf("Password should not be less than %d characters", threshold)
	case model.ValidationRuleCaseMix:
		return caseMixMessage
	case model.ValidationRuleContainsName:
		return containsNameMessage
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
