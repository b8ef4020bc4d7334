package domain

import "context"

// ServicePort is the as-run API surface
type ServicePort interface {
	Upload(ctx context.Context, in UploadInput, f File, uploadedBy string) (AsRun, error)
	List(ctx context.Context, in ListInput) (AsRunList, error)
	// Delete removes the given records and their objects; unknown ids are skipped
	Delete(ctx context.Context, ids []int64) ([]int64, error)
}
