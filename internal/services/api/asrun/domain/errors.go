package domain

import perr "airwatch/internal/platform/errors"

// ErrUnsupportedFormat rejects uploads that are not csv, xlsx or xls
func ErrUnsupportedFormat() error {
	return perr.WithField(perr.Validationf("Unsupported file format. Only CSV and Excel files are allowed."), "file")
}

// ErrStorage wraps an object storage failure
func ErrStorage(err error) error {
	if perr.Known(err) {
		return err
	}
	return perr.Upstreamf(err, "Failed to upload file to storage")
}
