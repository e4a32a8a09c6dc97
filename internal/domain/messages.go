package domain

import "errors"

const (
	MessageMissingTransactionID = "No transaction ID found in URL"
	MessageNetworkError         = "Network error. Please try again."
	MessageUserValidationFailed = "User validation failed"
	MessageTransactionFailed    = "Transaction failed"
	MessageUnexpectedError      = "An unexpected error occurred."
)

// UserMessage maps a rejection to the text shown next to the form.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUsernameRequired):
		return "Please enter your username."
	case errors.Is(err, ErrPINRequired):
		return "Please enter your PIN."
	case errors.Is(err, ErrPINTooLong):
		return "PIN must be at most 4 characters."
	case errors.Is(err, ErrActionInFlight):
		return "A request is already in progress."
	case errors.Is(err, ErrActionNotAllowed):
		return "That action is not available right now."
	default:
		return MessageUnexpectedError
	}
}

// MessageOr returns the server-provided message or fallback when it is empty.
func MessageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}

	return message
}
