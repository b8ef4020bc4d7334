package domain

import perr "airwatch/internal/platform/errors"

// ErrEventNotFound is returned when no event has the requested id
func ErrEventNotFound() error { return perr.NotFoundf("Event not found") }

// ErrInvalidRange rejects a start bound after the end bound
func ErrInvalidRange() error {
	return perr.WithField(perr.Validationf("startDate must not be after endDate"), "startDate")
}
