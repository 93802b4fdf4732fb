// Package form holds the mutable signup form state: one value and one touched
// flag per field. Error visibility is derived from the touched flags by the
// validation package; this package only stores what the user entered.
package form
