// Package model defines the typed signup form description shared by the
// validation engine, the form state and the terminal front end. Validation
// rules expose canonical identifiers (required, format, minLength, caseMix,
// containsName) with string parameters so the engine can compile them into
// predicates without the form definition depending on it.
package model
