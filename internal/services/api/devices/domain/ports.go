package domain

import "context"

// ServicePort is the device API surface
type ServicePort interface {
	Register(ctx context.Context, in RegisterInput) (Device, error)
	Update(ctx context.Context, id string, in UpdateInput) (Device, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Device, error)
	List(ctx context.Context, in ListInput) (DeviceList, error)
}
