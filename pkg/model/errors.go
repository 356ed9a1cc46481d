package model

import "errors"

var (
	// Input and lookup errors
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")

	// Submission errors
	ErrDuplicateSubmission = errors.New("candidate has already submitted a response")

	// User errors
	ErrEmailTaken = errors.New("email already in use")

	// Upstream errors (artifact store, scorer)
	ErrUpstream = errors.New("upstream service error")
)
