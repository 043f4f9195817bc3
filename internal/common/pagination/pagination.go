package pagination

import (
	"net/http"
	"strconv"
)

// Params represents pagination parameters
type Params struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Limit    int `json:"-"` // Calculated from PageSize
	Offset   int `json:"-"` // Calculated from Page and PageSize
}

// DefaultPageSize is the default number of items per page
const DefaultPageSize = 50

// MaxPageSize is the maximum allowed items per page
const MaxPageSize = 100

// ParseParams extracts pagination parameters from an HTTP request.
// page < 1 resets to 1; pageSize <= 0 resets to the default; pageSize above
// the maximum clamps to the maximum.
func ParseParams(r *http.Request) Params {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Params{
		Page:     page,
		PageSize: pageSize,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}
}
