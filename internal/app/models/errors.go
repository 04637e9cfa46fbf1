package models

import (
	"errors"
	"fmt"
)

// Domain specific errors for authentication, preferences and payments.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrValidation      = errors.New("validation failed")

	ErrInvalidCurrency    = fmt.Errorf("%w: unsupported currency", ErrValidation)
	ErrInvalidTheme       = fmt.Errorf("%w: unsupported theme mode", ErrValidation)
	ErrMissingCredentials = fmt.Errorf("%w: email and password are required", ErrValidation)
	ErrPasswordTooLong    = fmt.Errorf("%w: password must be at most 72 bytes", ErrValidation)
	ErrGatewayUnavailable = errors.New("payment gateway not configured")
)
