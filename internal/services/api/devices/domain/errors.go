package domain

import perr "airwatch/internal/platform/errors"

// ErrDuplicateDeviceID is returned when the device id is already registered
func ErrDuplicateDeviceID(err error) error {
	return perr.WithField(perr.Wrap(err, perr.ErrorCodeDuplicateKey, "Device ID already exists"), "device_id")
}

// ErrDeviceNotFound is returned when no device has the requested id
func ErrDeviceNotFound() error { return perr.NotFoundf("Device not found") }

// ErrDeviceInUse maps a foreign key violation on delete
func ErrDeviceInUse(err error) error {
	return perr.Wrap(err, perr.ErrorCodeConflict, "Device is in use and cannot be deleted")
}
