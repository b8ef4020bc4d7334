package domain

import (
	"context"

	pnet "airwatch/internal/platform/net"
)

// ServicePort is the auth API surface
type ServicePort interface {
	Login(ctx context.Context, in LoginInput) (Session, error)
	Me(ctx context.Context, id int64) (User, error)

	CreateUser(ctx context.Context, in CreateUserInput, createdBy *int64) (User, error)
	EnsureUser(ctx context.Context, in CreateUserInput) (User, bool, error)
	UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (User, error)
	DeleteUser(ctx context.Context, id int64) error
	GetUser(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context, in ListUsersInput) (UserList, error)

	// Resolve turns a raw bearer token into the caller it names
	Resolve(ctx context.Context, token string) (pnet.Principal, error)
}
