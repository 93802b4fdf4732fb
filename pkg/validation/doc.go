// Package validation compiles the rules declared on a model.FormModel into
// pure predicates and reports failures per field. Cross-field rules receive
// the full form.Values snapshot as an explicit parameter.
package validation
