package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Submission errors
	ErrValidation         = fmt.Errorf("validation failed")
	ErrTransport          = fmt.Errorf("backend request failed")
	ErrSubmissionInFlight = fmt.Errorf("a submission is already in progress")

	// Backend errors
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrRecordNotFound     = fmt.Errorf("record not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
