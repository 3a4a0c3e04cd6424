package service

// ValidationError marks missing or malformed client input. Handlers map it
// to a 400 response; everything unexpected becomes a generic server error.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}
