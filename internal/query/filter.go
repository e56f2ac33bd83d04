// Package query builds list-request query parameters from filter criteria.
// The server is the single filtering authority: search and category matching
// happen server-side, the client only encodes the criteria.
package query

import "net/url"

// Filter holds search/category/sort criteria for a list request. The zero
// value means "no filtering".
type Filter struct {
	// Search is a case-insensitive substring matched against product name
	// and description.
	Search string

	// Category is an exact-match category filter.
	Category string

	// Sort is the field name to order results by.
	Sort string
}

// Values encodes the filter as request query parameters. Empty fields are
// omitted rather than sent as empty strings. The same Filter always yields
// the same values.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	return v
}

// IsZero reports whether no criteria are set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}
