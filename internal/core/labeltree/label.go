package labeltree

import (
	"sort"
	"strconv"
	"time"

	perr "airwatch/internal/platform/errors"
)

// EventRef is the slice of an event a label needs
type EventRef struct {
	ID        int64
	DeviceID  string
	Timestamp int64
	ImagePath *string
}

// Label is a stored label with its hierarchy loaded
type Label struct {
	ID        int64
	Category  Category
	Subtype   Subtype
	CreatedBy string
	CreatedAt time.Time
	StartTime int64
	EndTime   int64
	Notes     *string
	Events    []EventRef
	Payloads  Payloads
}

// View is the flattened API shape of a label
type View struct {
	ID         int64     `json:"id"`
	EventIDs   []string  `json:"event_ids"`
	LabelType  Subtype   `json:"label_type" example:"movie"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	StartTime  int64     `json:"start_time,string" example:"1000"`
	EndTime    int64     `json:"end_time,string" example:"2000"`
	Notes      *string   `json:"notes"`
	ImagePaths []*string `json:"image_paths"`
	DeviceID   string    `json:"device_id,omitempty"`
	Payloads
}

// SortEvents orders events by timestamp then id
func SortEvents(evs []EventRef) []EventRef {
	out := append([]EventRef(nil), evs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Span returns the min and max timestamp over evs; ok is false for no events
func Span(evs []EventRef) (start, end int64, ok bool) {
	for i, e := range evs {
		if i == 0 || e.Timestamp < start {
			start = e.Timestamp
		}
		if i == 0 || e.Timestamp > end {
			end = e.Timestamp
		}
	}
	return start, end, len(evs) > 0
}

// DeriveSubtype returns the stored discriminator, or for rows written without one
// the first populated payload in inspection order; "" when nothing is populated
func DeriveSubtype(l Label) Subtype {
	if l.Subtype.Valid() {
		return l.Subtype
	}
	order := All()
	if l.Category.Valid() {
		order = Children(l.Category)
	}
	for _, s := range order {
		if l.Payloads.Get(s) != nil {
			return s
		}
	}
	return ""
}

// Flatten collapses a label into its API view
func Flatten(l Label) View {
	evs := SortEvents(l.Events)
	ids := make([]string, len(evs))
	paths := make([]*string, len(evs))
	for i, e := range evs {
		ids[i] = strconv.FormatInt(e.ID, 10)
		paths[i] = e.ImagePath
	}
	st := DeriveSubtype(l)
	return View{
		ID:         l.ID,
		EventIDs:   ids,
		LabelType:  st,
		CreatedBy:  l.CreatedBy,
		CreatedAt:  l.CreatedAt,
		StartTime:  l.StartTime,
		EndTime:    l.EndTime,
		Notes:      l.Notes,
		ImagePaths: paths,
		Payloads:   l.Payloads.Only(st),
	}
}

// DeviceOf returns the single device the label's events come from
// no devices yields "" and a nil error; more than one is an integrity error
func DeviceOf(l Label) (string, error) {
	seen := map[string]struct{}{}
	var ids []string
	for _, e := range l.Events {
		if e.DeviceID == "" {
			continue
		}
		if _, ok := seen[e.DeviceID]; ok {
			continue
		}
		seen[e.DeviceID] = struct{}{}
		ids = append(ids, e.DeviceID)
	}
	switch len(ids) {
	case 0:
		return "", nil
	case 1:
		return ids[0], nil
	}
	sort.Strings(ids)
	return "", InconsistentDeviceIDs(l.ID, ids)
}

// DayWindow returns the epoch second bounds of a whole UTC day given as YYYY-MM-DD
// the end is 23:59:59.999 truncated to seconds
func DayWindow(date string) (from, to int64, err error) {
	d, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, 0, perr.WithField(perr.Validationf("Invalid date format, expected YYYY-MM-DD"), "date")
	}
	end := d.Add(24*time.Hour - time.Millisecond)
	return d.Unix(), end.Unix(), nil
}
