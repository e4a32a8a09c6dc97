package domain

import (
	"strings"
	"unicode/utf8"
)

const MaxPINLength = 4

func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func ValidateUsername(username string) error {
	if NormalizeUsername(username) == "" {
		return ErrUsernameRequired
	}

	return nil
}

// ValidatePIN enforces presence and the length cap only; digits are not required.
func ValidatePIN(pin string) error {
	if pin == "" {
		return ErrPINRequired
	}
	if utf8.RuneCountInString(pin) > MaxPINLength {
		return ErrPINTooLong
	}

	return nil
}
