package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrSendOTP means the provider could not send a code.
	ErrSendOTP = errors.New("failed to send OTP")
	// ErrInvalidCode means the submitted code was not approved. The caller may retry.
	ErrInvalidCode = errors.New("invalid OTP")
	// ErrVerificationFailed means the provider could not check the code.
	ErrVerificationFailed = errors.New("failed to verify OTP")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Msg: "is required"}
}
