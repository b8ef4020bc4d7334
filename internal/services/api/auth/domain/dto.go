// Package domain holds the user and session types for the auth API
package domain

import (
	"time"

	"airwatch/internal/modkit/repokit"
)

// Roles a user can hold
const (
	RoleAdmin     = "ADMIN"
	RoleAnnotator = "ANNOTATOR"
)

// User is the public view of an account; the password hash never leaves the repo
type User struct {
	ID         int64     `json:"id" example:"1"`
	Name       string    `json:"name" example:"Mateen"`
	Email      string    `json:"email" example:"admin@airwatch.local"`
	Role       string    `json:"role" example:"ADMIN"`
	RecorderID *string   `json:"recorderId" example:"rec-01"`
	CreatedBy  *int64    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// LoginInput is the body of POST /auth/login
type LoginInput struct {
	Email    string `json:"email" validate:"required,email" example:"admin@airwatch.local"`
	Password string `json:"password" validate:"required" example:"changeme123"`
}

// Session is a successful login
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// CreateUserInput is the body of POST /auth/users
type CreateUserInput struct {
	Name       string  `json:"name" validate:"required,min=2" example:"Ann Otator"`
	Email      string  `json:"email" validate:"required,email" example:"ann@airwatch.local"`
	Password   string  `json:"password" validate:"required,min=8" example:"s3cretpass"`
	Role       string  `json:"role" validate:"required,oneof=ADMIN ANNOTATOR" example:"ANNOTATOR"`
	RecorderID *string `json:"recorderId" validate:"omitempty,min=1" example:"rec-01"`
}

// UpdateUserInput patches the fields that are present
type UpdateUserInput struct {
	Name       *string `json:"name" validate:"omitempty,min=2"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
	RecorderID *string `json:"recorderId" validate:"omitempty,min=1"`
}

// Empty reports whether the patch changes nothing
func (in UpdateUserInput) Empty() bool {
	return in.Name == nil && in.Email == nil && in.Password == nil && in.RecorderID == nil
}

// ListUsersInput filters GET /auth/users
type ListUsersInput struct {
	repokit.Paging `query:",squash"`
	Role           string `query:"role" validate:"omitempty,oneof=ADMIN ANNOTATOR" example:"ANNOTATOR"`
	Search         string `query:"search" validate:"omitempty,max=200" example:"ann"`
}

// UserList is one page of users
type UserList struct {
	Users []User
	Total int64
}
