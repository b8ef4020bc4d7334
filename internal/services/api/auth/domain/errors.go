package domain

import perr "airwatch/internal/platform/errors"

// ErrInvalidCredentials covers both an unknown email and a wrong password
func ErrInvalidCredentials() error { return perr.Unauthorizedf("Invalid credentials") }

// ErrUserNotFound is returned when no user has the requested id
func ErrUserNotFound() error { return perr.NotFoundf("User not found") }

// ErrTokenUser is returned when a valid token names a user that no longer exists
func ErrTokenUser() error { return perr.Unauthorizedf("User not found") }

// ErrDuplicateUser maps a unique violation on email or recorder_id
func ErrDuplicateUser(err error) error {
	return perr.AttachFieldFromPg(perr.Wrap(err, perr.ErrorCodeDuplicateKey, "Email or recorderId already exists"))
}

// ErrEmptyUpdate rejects a patch with no fields
func ErrEmptyUpdate() error { return perr.Validationf("at least one field is required") }
