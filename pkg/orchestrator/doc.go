// Package orchestrator drives the two-step signup submission: fetch a remote
// profile keyed by the last name length, then create the user with the
// profile's image reference, then reset the form. The sequence is modelled as
// a looplab/fsm state machine (idle, awaiting_profile, awaiting_user_creation)
// so overlapping submits are rejected instead of interleaved.
package orchestrator
