package model

import "errors"

// Sentinel kinds for registry errors. Callers match them with errors.Is.
var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrAlreadySignedUp     = errors.New("student is already signed up")
	ErrParticipantNotFound = errors.New("participant not found in this activity")
	ErrInvalidActivity     = errors.New("invalid activity")
)
