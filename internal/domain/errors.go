package domain

import "errors"

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPINRequired      = errors.New("pin is required")
	ErrPINTooLong       = errors.New("pin exceeds maximum length")
	ErrActionNotAllowed = errors.New("action not allowed in current step")
	ErrActionInFlight   = errors.New("request already in progress")
)

var rejections = []error{
	ErrUsernameRequired,
	ErrPINRequired,
	ErrPINTooLong,
	ErrActionNotAllowed,
	ErrActionInFlight,
}

// IsRejection reports whether err is a client-side refusal of a user action,
// as opposed to an infrastructure failure.
func IsRejection(err error) bool {
	for _, rejection := range rejections {
		if errors.Is(err, rejection) {
			return true
		}
	}

	return false
}
