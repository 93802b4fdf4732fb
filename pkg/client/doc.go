// Package client implements the two outbound calls of the signup pipeline:
// fetching a remote profile keyed by a size hint and creating the user. Both
// calls are fail-open by contract: failures are logged and turned into a
// neutral result, which hides genuine transport errors from the caller.
package client
