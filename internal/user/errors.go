package user

import "errors"

var (
	ErrNotFound      = errors.New("user not found")
	ErrMissingFields = errors.New("all fields are required")
)
