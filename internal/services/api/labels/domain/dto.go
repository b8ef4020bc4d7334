// Package domain holds label inputs and outputs
package domain

import (
	"bytes"
	"encoding/json"
	"strconv"

	"airwatch/internal/core/labeltree"
	"airwatch/internal/modkit/repokit"
	perr "airwatch/internal/platform/errors"
)

// EventID is an event id that travels as a decimal string
// bare JSON numbers are accepted on input
type EventID int64

// UnmarshalJSON accepts "123" and 123
func (id *EventID) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return perr.WithField(perr.Validationf("Invalid event id: %s", s), "event_ids")
	}
	*id = EventID(n)
	return nil
}

// MarshalJSON writes the id as a decimal string
func (id EventID) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(id), 10))
}

// CreateInput is the POST /labels body
// exactly one payload key matching label_type must be present
type CreateInput struct {
	EventIDs  []EventID `json:"event_ids" validate:"required,min=1" swaggertype:"array,string" example:"100231,100232"`
	LabelType string    `json:"label_type" validate:"required" example:"movie"`
	Notes     *string   `json:"notes"`
	labeltree.Payloads
}

// UpdateInput is the PUT /labels/{id} body; every field is optional
type UpdateInput struct {
	EventIDs  []EventID `json:"event_ids" swaggertype:"array,string"`
	LabelType string    `json:"label_type" example:"song"`
	Notes     *string   `json:"notes"`
	labeltree.Payloads
}

// ListInput filters GET /labels
type ListInput struct {
	repokit.Paging `query:",squash"`
	LabelType      string `query:"labelType" example:"movie"`
	CreatedBy      string `query:"createdBy" example:"Jane Annotator"`
	DeviceID       string `query:"deviceId" example:"dev-kathmandu-01"`
	StartDate      string `query:"startDate" example:"2024-06-01T00:00:00Z"`
	EndDate        string `query:"endDate" example:"1717286399"`
	Sort           string `query:"sort" validate:"omitempty,oneof=asc desc" example:"asc"`
}

// BulkDeleteInput is the DELETE /labels/bulk body
type BulkDeleteInput struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// BulkDeleteResult reports how many labels were removed
type BulkDeleteResult struct {
	Deleted int64 `json:"deleted"`
}

// LabelList is one page of labels
type LabelList struct {
	Labels []labeltree.View
	Total  int64
}

// ProgramGuide is the labels of one device on one UTC day
type ProgramGuide struct {
	Date   string           `json:"date" example:"2024-06-01"`
	Labels []labeltree.View `json:"labels"`
}

// Ints converts event ids, dropping duplicates and keeping first-seen order
func Ints(ids []EventID) []int64 {
	seen := make(map[EventID]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, int64(id))
	}
	return out
}
