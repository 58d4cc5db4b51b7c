package customer

import (
	"math"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "created_at"
)

var sortableColumns = map[string]struct{}{
	"first_name":   {},
	"last_name":    {},
	"phone":        {},
	"city":         {},
	"state":        {},
	"pincode":      {},
	"email":        {},
	"account_type": {},
	"created_at":   {},
	"updated_at":   {},
}

// ListQuery holds the filters, ordering and page window of a customer listing.
type ListQuery struct {
	City                  string
	State                 string
	Pincode               string
	Search                string
	OnlyMultipleAddresses bool
	SortBy                string
	SortDir               string
	Page                  int
	PageSize              int
}

// maxOffset keeps OFFSET inside PostgreSQL's int4 range.
const maxOffset = math.MaxInt32

// Normalize clamps paging and replaces an unknown sort column or direction
// with the defaults. The result is safe to interpolate into ORDER BY.
func (q ListQuery) Normalize() ListQuery {
	q.City = strings.TrimSpace(q.City)
	q.State = strings.TrimSpace(q.State)
	q.Pincode = strings.TrimSpace(q.Pincode)
	q.Search = strings.TrimSpace(q.Search)

	if _, ok := sortableColumns[q.SortBy]; !ok {
		q.SortBy = DefaultSortBy
	}
	if strings.EqualFold(q.SortDir, "asc") {
		q.SortDir = "ASC"
	} else {
		q.SortDir = "DESC"
	}

	if q.Page < 1 {
		q.Page = DefaultPage
	}
	switch {
	case q.PageSize < 1:
		q.PageSize = DefaultPageSize
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	if maxPage := maxOffset/q.PageSize + 1; q.Page > maxPage {
		q.Page = maxPage
	}
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ParseBoolish accepts the usual truthy spellings used in query strings.
func ParseBoolish(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

type ListResult struct {
	Total     int
	Page      int
	PageSize  int
	Customers []*Summary
}
