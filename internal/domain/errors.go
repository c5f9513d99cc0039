package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrSessionExpired       = errors.New("session expired")
	ErrCredentialNotFound   = errors.New("credential not found")
	ErrSecretNotFound       = errors.New("secret not found")
	ErrInterviewNotFound    = errors.New("interview not found")
	ErrSubmitInFlight       = errors.New("round submission already in flight")
	ErrInterviewFinished    = errors.New("interview already finished")
	ErrMalformedOutcome     = errors.New("malformed round outcome")
	ErrInvalidQuestionIndex = errors.New("invalid question index")
	ErrValidation           = errors.New("validation failed")
)

// ValidationError is reported inline and never reaches the network.
type ValidationError struct {
	Field   string
	Indexes []int
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Indexes) == 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	positions := make([]string, 0, len(e.Indexes))
	for _, idx := range e.Indexes {
		positions = append(positions, fmt.Sprintf("%d", idx+1))
	}

	return fmt.Sprintf("%s: %s (questions %s)", e.Field, e.Message, strings.Join(positions, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
