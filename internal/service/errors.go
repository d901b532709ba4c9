package service

import "errors"

// Failure taxonomy. Every user-facing failure resolves to a transient
// notification; none are fatal to the process.
var (
	// ErrInvalidCredentials is returned when no account matches the
	// email, password and role exactly.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail is returned at signup when any account, of any
	// role, already uses the email.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrAlreadyPending is returned when an account requests the admin
	// role while an earlier request is still pending.
	ErrAlreadyPending = errors.New("admin request already pending")

	// ErrNotFound is returned when a request or account id resolves to
	// nothing.
	ErrNotFound = errors.New("not found")

	// ErrNotPending is returned when approving or rejecting a request
	// that already reached a terminal status.
	ErrNotPending = errors.New("request is not pending")

	// ErrNoDataset is returned when a chart is requested before any
	// upload has been decoded.
	ErrNoDataset = errors.New("no active dataset")
)
