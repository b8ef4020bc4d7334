package repokit

import "strings"

// Default page size and the hard ceiling for list endpoints
const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

// Paging is the page and limit pair every list endpoint accepts
type Paging struct {
	Page  int `query:"page" json:"page" validate:"omitempty,min=1" example:"1"`
	Limit int `query:"limit" json:"limit" validate:"omitempty,min=1,max=1000" example:"10"`
}

// Norm fills defaults and clamps the limit
func (p Paging) Norm() Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the row offset of the normalized page
func (p Paging) Offset() int {
	n := p.Norm()
	return (n.Page - 1) * n.Limit
}

// Order maps a sort parameter onto a SQL direction; anything but asc is desc
func Order(sort string) string {
	if strings.EqualFold(strings.TrimSpace(sort), "asc") {
		return "asc"
	}
	return "desc"
}
