package domain

import (
	"context"

	"airwatch/internal/core/labeltree"
	eventsdomain "airwatch/internal/services/api/events/domain"
)

// ServicePort is the label API surface
type ServicePort interface {
	Create(ctx context.Context, in CreateInput, createdBy string) (labeltree.View, error)
	Update(ctx context.Context, id int64, in UpdateInput) (labeltree.View, error)
	Get(ctx context.Context, id int64) (labeltree.View, error)
	List(ctx context.Context, in ListInput) (LabelList, error)
	Delete(ctx context.Context, id int64) error
	DeleteBulk(ctx context.Context, ids []int64) (int64, error)
	ProgramGuide(ctx context.Context, date, deviceID string) (ProgramGuide, error)
	Unlabeled(ctx context.Context, in eventsdomain.ListInput) (eventsdomain.EventList, error)
}

// EventsPort is the part of the events module labels depend on
type EventsPort interface {
	Unlabeled(ctx context.Context, in eventsdomain.ListInput) (eventsdomain.EventList, error)
}
