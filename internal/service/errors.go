package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrAlreadyExists      = errors.New("customer already exists")
	ErrCustomerInactive   = errors.New("customer inactive")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")

	ErrEmptyItems      = errors.New("empty items")
	ErrQuantityInvalid = errors.New("quantity must be > 0")
	ErrOrderNotFound   = errors.New("order not found")
	ErrGateway         = errors.New("payment gateway failed")

	ErrInvalidStatus   = errors.New("unknown delivery status")
	ErrActorNotAllowed = errors.New("actor not allowed to change delivery status")

	ErrAddressNotFound = errors.New("address not found")
	ErrUFInvalid       = errors.New("unknown UF")
)
