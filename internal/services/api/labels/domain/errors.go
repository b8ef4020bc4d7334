package domain

import (
	"strconv"
	"strings"

	perr "airwatch/internal/platform/errors"
)

// ErrEventsNotFound names the requested events that do not exist
func ErrEventsNotFound(missing []int64) error {
	ids := make([]string, len(missing))
	for i, id := range missing {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return perr.WithField(perr.NotFoundf("Events not found: %s", strings.Join(ids, ", ")), "event_ids")
}

// ErrLabelNotFound is returned when no label has the requested id
func ErrLabelNotFound() error { return perr.NotFoundf("Label not found") }

// ErrDeviceNotFound is returned when no event references the device
func ErrDeviceNotFound() error {
	return perr.WithField(perr.NotFoundf("Invalid device ID"), "deviceId")
}

// ErrLabelOperationFailed wraps an unexpected persistence failure
func ErrLabelOperationFailed(err error, op string) error {
	return perr.Wrapf(err, perr.ErrorCodeUnknown, "Failed to %s label", op)
}
