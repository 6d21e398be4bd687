package security

import "fmt"

// InvalidArgumentError reports a value that violates an operation's
// contract, such as a nil security manager handed to registration.
type InvalidArgumentError struct {
	// Argument is the name of the offending argument.
	Argument string

	// Message describes the violated contract.
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Argument, e.Message)
}

// IllegalStateError reports an operation attempted against state that
// cannot support it. Security activation returns this when the cache's
// security service cannot be switched to integrated security.
type IllegalStateError struct {
	// Message describes the illegal state.
	Message string
}

// Error implements the error interface.
func (e *IllegalStateError) Error() string {
	return e.Message
}

// AuthenticationError reports a failed authentication attempt.
// It carries the last realm failure, if any, as its cause.
type AuthenticationError struct {
	// Principal is the identity that failed to authenticate.
	Principal string

	// Cause is the last underlying realm error (nil when no realm
	// supported the token).
	Cause error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed for principal %q: %v", e.Principal, e.Cause)
	}
	return fmt.Sprintf("authentication failed for principal %q: no realm accepted the token", e.Principal)
}

// Unwrap returns the underlying error for error chain support.
func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}

// AuthorizationError reports a denied permission check.
type AuthorizationError struct {
	// Principal is the identity that was denied.
	Principal string

	// Permission is the permission that was required.
	Permission string
}

// Error implements the error interface.
func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("principal %q is not permitted %q", e.Principal, e.Permission)
}
