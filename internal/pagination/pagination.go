// Package pagination normalizes page/per_page query parameters and
// builds the pagination metadata returned with list responses.
package pagination

import (
	"strconv"

	"booklib/internal/apperr"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Params is a validated (page, per_page) pair.
type Params struct {
	Page    int
	PerPage int
}

// Parse validates raw page/per_page values. Empty strings fall back to
// the defaults; anything non-numeric or out of range fails with a
// field-tagged validation error rather than being silently clamped.
func Parse(page, perPage string) (Params, error) {
	p := Params{Page: DefaultPage, PerPage: DefaultPerPage}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return Params{}, apperr.Validation("page", "Page must be a number")
		}
		if n < 1 {
			return Params{}, apperr.Validation("page", "Page must be >= 1")
		}
		p.Page = n
	}

	if perPage != "" {
		n, err := strconv.Atoi(perPage)
		if err != nil {
			return Params{}, apperr.Validation("per_page", "Per page must be a number")
		}
		if n < 1 {
			return Params{}, apperr.Validation("per_page", "Per page must be >= 1")
		}
		if n > MaxPerPage {
			return Params{}, apperr.Validation("per_page", "Per page must be <= %d", MaxPerPage)
		}
		p.PerPage = n
	}

	return p, nil
}

// Limit returns the SQL LIMIT value.
func (p Params) Limit() int { return p.PerPage }

// Offset returns the SQL OFFSET value.
func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// Meta carries the pagination metadata for a list response.
type Meta struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewMeta computes the metadata for total matching rows under p.
func NewMeta(total int, p Params) Meta {
	pages := (total + p.PerPage - 1) / p.PerPage
	return Meta{
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Pages:   pages,
		HasNext: p.Page < pages,
		HasPrev: p.Page > 1,
	}
}
