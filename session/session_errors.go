package session

import "errors"

// InvalidCredentialsErr marks a login or password change rejected for
// credential reasons. The API has no distinct error code for this, so it
// wraps the underlying request failure rather than inventing a stronger
// contract.
var InvalidCredentialsErr = errors.New("invalid credentials")

// RegistrationError aggregates the field-level validation messages a
// rejected registration returns.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string {
	return "registration failed: " + e.Message
}
