package domain

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListParams drives every tenant list endpoint. SortBy is checked against a
// per-entity allow-list in the repository.
type ListParams struct {
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	SortBy   string        `json:"sort_by,omitempty"`
	SortDir  SortDirection `json:"sort_dir,omitempty"`
	Search   string        `json:"search,omitempty"`
}

// FromURLParams reads page, page_size, sort_by, sort_dir and search
func (p *ListParams) FromURLParams(values url.Values) error {
	p.Page = 1
	p.PageSize = DefaultPageSize

	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return NewValidationError("page must be a positive integer")
		}
		p.Page = page
	}

	if v := values.Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return NewValidationError("page_size must be a positive integer")
		}
		p.PageSize = size
	}

	p.SortBy = strings.TrimSpace(values.Get("sort_by"))
	p.Search = strings.TrimSpace(values.Get("search"))

	switch dir := SortDirection(strings.ToLower(values.Get("sort_dir"))); dir {
	case "":
		p.SortDir = SortDesc
	case SortAsc, SortDesc:
		p.SortDir = dir
	default:
		return NewValidationError("sort_dir must be asc or desc")
	}

	p.Normalize()
	return nil
}

// Normalize clamps page and page size into range
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.SortDir != SortAsc {
		p.SortDir = SortDesc
	}
}

// Offset is the number of rows skipped for the current page
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ListResult is one page of T plus the total match count
type ListResult[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Patch maps column names to new values for a partial update.
// Keys are set only by request types in this package, never from user input.
type Patch map[string]interface{}
