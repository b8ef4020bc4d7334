package domain

import "context"

// ServicePort is the event API surface
type ServicePort interface {
	List(ctx context.Context, in ListInput) (EventList, error)
	Get(ctx context.Context, id int64) (Event, error)
	// Unlabeled lists events no label references yet
	Unlabeled(ctx context.Context, in ListInput) (EventList, error)
}
