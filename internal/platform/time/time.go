// Package time contains time related helpers
package time

import (
	"strconv"
	"strings"
	"time"

	perr "airwatch/internal/platform/errors"
)

// layouts accepted by ParseInstant after plain epoch seconds
var layouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", time.DateOnly}

// ParseInstant reads epoch seconds or an RFC3339 style timestamp into epoch seconds
// layouts without a zone are read as UTC
func ParseInstant(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, perr.Validationf("timestamp is required")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, perr.Validationf("invalid timestamp %q", s)
}

// Bound parses an optional range bound; blank input is nil
// field names the query parameter on failure
func Bound(s, field string) (*int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := ParseInstant(s)
	if err != nil {
		return nil, perr.WithField(err, field)
	}
	return &n, nil
}
