// Package lifecycle validates membership and session transitions locally,
// rejecting illegal transitions before any network call is attempted.
//
// Every guard leaves state untouched and returns a structured, recoverable
// error; the server remains the final authority on each transition.
package lifecycle
