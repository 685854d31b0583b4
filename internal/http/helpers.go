package http

import (
	"net/http"
	"strconv"
	"strings"

	"farmdash/internal/core"
)

// listQuery holds the filter and sort state for a records view.
type listQuery struct {
	Type     core.RecordType
	Category string
	Sort     core.SortDirection
	ByAmount bool
}

// parseListQuery extracts filter/sort parameters for a records request.
// Missing or invalid values fall back to the defaults the views start with:
// expense tab, all categories, newest first.
func parseListQuery(r *http.Request) listQuery {
	q := listQuery{
		Type:     core.Expense,
		Category: core.FilterAll,
		Sort:     core.SortDesc,
	}

	if v := strings.TrimSpace(r.URL.Query().Get("type")); v != "" {
		if t := core.RecordType(v); t.IsValid() {
			q.Type = t
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		if v == core.FilterAll || core.Category(v).IsValid() {
			q.Category = v
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("sort")); v != "" {
		if d := core.SortDirection(v); d.IsValid() {
			q.Sort = d
			q.ByAmount = true
		}
	}

	return q
}

// parseProjectID extracts the {id} path value.
func parseProjectID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// capitalize upper-cases the first ASCII letter.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
