package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSessionNotFound = errors.New("registration session not found")
	ErrCannotLikeSelf  = errors.New("cannot like yourself")
	ErrInvalidDecision = errors.New("invalid decision")
	ErrInvalidToken    = errors.New("invalid token")
	ErrForbidden       = errors.New("forbidden")
)
