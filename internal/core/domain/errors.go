package domain

import "errors"

// Error kinds. Every error a service returns to the HTTP layer matches one of
// these with errors.Is.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error pairs a kind with the message shown to API callers.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewValidationError returns an ErrValidation carrying msg.
func NewValidationError(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

var (
	ErrMissingClientFields = NewValidationError("All fields are required")
	ErrInvalidStatus       = NewValidationError("Invalid status")
	ErrMissingEventFields  = NewValidationError("Title and date are required")
	ErrInvalidEventDate    = NewValidationError("Date must be in YYYY-MM-DD format")
	ErrClientsNotFound     = NewValidationError("Some clients not found")
	ErrInvalidCaseType     = NewValidationError("Case type must be contract or constitutional")
	ErrMissingPasswords    = NewValidationError("All fields are required.")
	ErrMissingNewEmail     = NewValidationError("New email is required.")
	ErrMissingCredentials  = NewValidationError("Email and password are required")
	ErrInvalidRole         = NewValidationError("Role must be lawyer or client")

	ErrClientExists = &Error{Kind: ErrConflict, Message: "Client already exists"}
	ErrEmailInUse   = &Error{Kind: ErrConflict, Message: "Email already in use."}
	ErrUserExists   = &Error{Kind: ErrConflict, Message: "User already exists"}

	ErrClientNotFound  = &Error{Kind: ErrNotFound, Message: "Client not found"}
	ErrEventNotFound   = &Error{Kind: ErrNotFound, Message: "Event not found"}
	ErrAccountNotFound = &Error{Kind: ErrNotFound, Message: "User not found."}

	ErrWrongPassword  = &Error{Kind: ErrInvalidCredentials, Message: "Current password is incorrect."}
	ErrBadCredentials = &Error{Kind: ErrInvalidCredentials, Message: "Invalid credentials"}
	ErrAccountOnHold  = &Error{Kind: ErrForbidden, Message: "Account is on hold"}
)
