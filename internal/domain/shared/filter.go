package shared

import "strings"

// Filter carries the list query options shared by all repositories.
// Filters holds column-specific criteria each repository interprets itself.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// Paginates reports whether the filter requests a bounded page.
func (f Filter) Paginates() bool {
	return f.Page > 0 && f.PageSize > 0
}

// Offset returns the row offset of the requested page.
func (f Filter) Offset() int {
	if !f.Paginates() {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// OrderClause renders an ORDER BY fragment. The direction defaults to ASC
// unless OrderDir is "desc"; fallback is used when no column was requested.
func (f Filter) OrderClause(fallback string) string {
	if f.OrderBy == "" {
		return fallback
	}
	dir := "ASC"
	if strings.EqualFold(f.OrderDir, "desc") {
		dir = "DESC"
	}
	return f.OrderBy + " " + dir
}
