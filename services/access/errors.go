package access

import "fmt"

// AuthenticationReason says why a credential was not accepted.
type AuthenticationReason string

const (
	CredentialMissing AuthenticationReason = "MISSING"
	CredentialInvalid AuthenticationReason = "INVALID"
)

// AuthenticationError is terminal for the request; it is never retried.
type AuthenticationError struct {
	Reason AuthenticationReason
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Reason)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Is matches any AuthenticationError with the same reason.
func (e *AuthenticationError) Is(target error) bool {
	t, ok := target.(*AuthenticationError)
	return ok && t.Reason == e.Reason
}

// AuthorizationReason is surfaced to callers as-is; it is never collapsed into
// a generic "forbidden".
type AuthorizationReason string

const (
	ReasonAccountNotFound    AuthorizationReason = "ACCOUNT_NOT_FOUND"
	ReasonSuspended          AuthorizationReason = "SUSPENDED"
	ReasonBlocked            AuthorizationReason = "BLOCKED"
	ReasonRoleMismatch       AuthorizationReason = "ROLE_MISMATCH"
	ReasonProfileNotFound    AuthorizationReason = "PROFILE_NOT_FOUND"
	ReasonProfileNotVerified AuthorizationReason = "PROFILE_NOT_VERIFIED"
	ReasonInvalidRole        AuthorizationReason = "INVALID_ROLE"
	ReasonNotParticipant     AuthorizationReason = "NOT_PARTICIPANT"
)

// AuthorizationError rejects an authenticated principal for a specific reason.
type AuthorizationError struct {
	Reason AuthorizationReason
	Detail string
}

func (e *AuthorizationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("authorization denied (%s): %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("authorization denied (%s)", e.Reason)
}

// Is matches any AuthorizationError with the same reason.
func (e *AuthorizationError) Is(target error) bool {
	t, ok := target.(*AuthorizationError)
	return ok && t.Reason == e.Reason
}

var (
	ErrCredentialMissing = &AuthenticationError{Reason: CredentialMissing}
	ErrCredentialInvalid = &AuthenticationError{Reason: CredentialInvalid}

	ErrAccountNotFound    = &AuthorizationError{Reason: ReasonAccountNotFound}
	ErrAccountSuspended   = &AuthorizationError{Reason: ReasonSuspended}
	ErrAccountBlocked     = &AuthorizationError{Reason: ReasonBlocked}
	ErrRoleMismatch       = &AuthorizationError{Reason: ReasonRoleMismatch}
	ErrProfileNotFound    = &AuthorizationError{Reason: ReasonProfileNotFound}
	ErrProfileNotVerified = &AuthorizationError{Reason: ReasonProfileNotVerified}
	ErrInvalidRole        = &AuthorizationError{Reason: ReasonInvalidRole}
	ErrNotParticipant     = &AuthorizationError{Reason: ReasonNotParticipant}
)

// Deny builds an AuthorizationError carrying a human readable detail.
func Deny(reason AuthorizationReason, format string, args ...any) error {
	return &AuthorizationError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
