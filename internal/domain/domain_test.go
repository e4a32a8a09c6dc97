package domain

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionIDFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want TransactionID
	}{
		{name: "full url", raw: "https://pay.example.com/checkout?transactionId=T1", want: "T1"},
		{name: "bare query", raw: "?transactionId=T2&lang=en", want: "T2"},
		{name: "missing parameter", raw: "https://pay.example.com/checkout?foo=bar", want: ""},
		{name: "empty parameter", raw: "/?transactionId=", want: ""},
		{name: "no query", raw: "https://pay.example.com/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TransactionIDFromURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != "", got.Present())
		})
	}
}

func TestTransactionIDFromURLRejectsMalformedURL(t *testing.T) {
	t.Parallel()

	_, err := TransactionIDFromURL("http://[::1")
	assert.ErrorContains(t, err, "parse navigation url")
}

func TestTransactionDetailsLabelsFallBack(t *testing.T) {
	t.Parallel()

	var missing *TransactionDetails
	assert.Equal(t, "0.00", missing.AmountLabel())
	assert.Equal(t, "Unknown", missing.BillerLabel())
	assert.Equal(t, "No description", missing.DescriptionLabel())

	details := &TransactionDetails{Amount: decimal.NewFromInt(50), BillerName: "Acme", Description: "Invoice"}
	assert.Equal(t, "50", details.AmountLabel())
	assert.Equal(t, "Acme", details.BillerLabel())
	assert.Equal(t, "Invoice", details.DescriptionLabel())
}

func TestStateTransitions(t *testing.T) {
	t.Parallel()

	details := &TransactionDetails{Amount: decimal.RequireFromString("12.50"), BillerName: "Acme"}

	pin := UsernameState{}.Validated("alice", details)
	assert.Equal(t, StepPIN, pin.Step())
	assert.Equal(t, "alice", pin.Username)
	require.NotNil(t, pin.Details)
	assert.NotSame(t, details, pin.Details)

	success := pin.Completed()
	assert.Equal(t, StepSuccess, success.Step())
	assert.Equal(t, "alice", success.Username)
	assert.True(t, success.Step().Terminal())

	failed := NewErrorState("")
	assert.Equal(t, MessageUnexpectedError, failed.Message)
	assert.True(t, failed.Step().Terminal())
}

func TestSessionStoredOmitsInitialStepAndTransientFields(t *testing.T) {
	t.Parallel()

	session := NewSession("T1")
	session.Username = "alice"
	session.PIN = "1234"
	session.Error = "boom"

	stored := session.Stored()
	assert.Equal(t, StoredSession{TransactionID: "T1", Username: "alice"}, stored)

	session.State = UsernameState{}.Validated("alice", &TransactionDetails{BillerName: "Acme"})
	stored = session.Stored()
	assert.Equal(t, StepPIN, stored.Step)
	require.NotNil(t, stored.Details)
	assert.Equal(t, "Acme", stored.Details.BillerName)
}

func TestStepValid(t *testing.T) {
	t.Parallel()

	for _, step := range []Step{StepUsername, StepPIN, StepSuccess, StepError} {
		assert.True(t, step.Valid(), step)
	}
	assert.False(t, Step("review").Valid())
	assert.False(t, Step("").Valid())
}

func TestValidatePIN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pin     string
		wantErr error
	}{
		{name: "four digits", pin: "1234"},
		{name: "single character", pin: "7"},
		{name: "letters allowed", pin: "ab12"},
		{name: "empty", pin: "", wantErr: ErrPINRequired},
		{name: "too long", pin: "12345", wantErr: ErrPINTooLong},
		{name: "multibyte within cap", pin: "ñññ1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePIN(tt.pin)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateUsernameTrimsWhitespace(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ValidateUsername("   "), ErrUsernameRequired)
	assert.NoError(t, ValidateUsername(" alice "))
	assert.Equal(t, "alice", NormalizeUsername(" alice "))
}

func TestIsRejection(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRejection(fmt.Errorf("submit: %w", ErrPINTooLong)))
	assert.True(t, IsRejection(ErrActionInFlight))
	assert.False(t, IsRejection(fmt.Errorf("disk full")))
	assert.False(t, IsRejection(nil))
}

func TestMessageOr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Invalid user", MessageOr("Invalid user", MessageUserValidationFailed))
	assert.Equal(t, MessageUserValidationFailed, MessageOr("", MessageUserValidationFailed))
}
