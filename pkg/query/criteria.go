package query

import (
	"errors"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var (
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("pageSize must be between 1 and 100")
)

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByTitle     SortField = "title"
)

// Policy selects the ordering family applied after filtering.
type Policy int

const (
	// PolicySearch orders by the requested sort field with id as tiebreak.
	PolicySearch Policy = iota
	// PolicyPopularity orders by rating count, average, recency, then id.
	PolicyPopularity
)

// Criteria is a conjunctive filter plus ordering and paging for notes.
// Zero-valued string filters are ignored.
type Criteria struct {
	Title  string
	Topic  string
	Class  string
	Year   *int
	Author string

	// AuthorID restricts results to one author's notes (exact CWID match).
	AuthorID string

	SortBy    string
	SortOrder string

	Page     int
	PageSize int
}

func NewCriteria() Criteria {
	return Criteria{Page: DefaultPage, PageSize: DefaultPageSize}
}

func (c Criteria) Validate() error {
	if c.Page < 1 {
		return ErrInvalidPage
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	return nil
}

func (c Criteria) Offset() int {
	return (c.Page - 1) * c.PageSize
}

// Sort resolves SortBy/SortOrder. Unknown or missing fields fall back to
// createdAt descending regardless of the requested order.
func (c Criteria) Sort() (SortField, bool) {
	switch strings.ToLower(strings.TrimSpace(c.SortBy)) {
	case "title":
		return SortByTitle, !strings.EqualFold(strings.TrimSpace(c.SortOrder), "asc")
	case "createdat":
		return SortByCreatedAt, !strings.EqualFold(strings.TrimSpace(c.SortOrder), "asc")
	default:
		return SortByCreatedAt, true
	}
}

// Page is one slice of an ordered, filtered result set.
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}
