package labeltree

import (
	"strconv"
	"strings"

	perr "airwatch/internal/platform/errors"
)

// InvalidLabelType is returned for subtype names outside the closed set
func InvalidLabelType(name string) error {
	return perr.WithField(perr.Validationf("Invalid label type: %q", name), "label_type")
}

// SubtypeMismatch is returned when the payloads do not match the declared subtype
func SubtypeMismatch() error {
	return perr.WithField(
		perr.Integrityf("Corresponding label details are required, and only one label type should be provided"),
		"label_type",
	)
}

// MissingField is returned when a required payload field is absent
func MissingField(s Subtype, name string) error {
	return perr.WithField(perr.Validationf("%s is required", name), string(s)+"."+name)
}

// InconsistentDeviceIDs is returned when a label's events span more than one device
func InconsistentDeviceIDs(labelID int64, ids []string) error {
	return perr.Integrityf("Label %s has events from multiple devices: %s",
		strconv.FormatInt(labelID, 10), strings.Join(ids, ", "))
}
