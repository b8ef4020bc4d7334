// Package domain holds as-run upload records
package domain

import (
	"io"
	"time"

	"airwatch/internal/modkit/repokit"
)

// AsRun is one uploaded playback log converted to JSON in object storage
type AsRun struct {
	ID          int64     `json:"id" example:"3"`
	UploadedBy  string    `json:"uploaded_by" example:"Admin"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ChannelName string    `json:"channel_name" example:"NTV"`
	Date        string    `json:"date" example:"2024-06-01"`
	FileURL     string    `json:"file_url" example:"https://bucket.s3.ap-south-1.amazonaws.com/asrun-files/ntv-1717200000000.json"`
	ObjectKey   string    `json:"-"`
}

// UploadInput is the text part of the multipart upload
type UploadInput struct {
	ChannelName string `form:"channel_name" validate:"required,max=255" example:"NTV"`
	Date        string `form:"date" validate:"required,datetime=2006-01-02" example:"2024-06-01"`
}

// File is the uploaded spreadsheet
type File struct {
	Name string
	Ext  string
	Body io.Reader
}

// ListInput filters GET /asrun
type ListInput struct {
	repokit.Paging `query:",squash"`
	ChannelName    string `query:"channel_name" example:"NTV"`
}

// AsRunList is one page of as-run records
type AsRunList struct {
	AsRuns []AsRun
	Total  int64
}

// DeleteInput is the DELETE /asrun/delete-file body
type DeleteInput struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// DeleteResult lists the ids that were removed
type DeleteResult struct {
	DeletedIDs []int64 `json:"deletedIds"`
}
