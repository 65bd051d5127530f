package common

import "strings"

// NormalizePage clamps page/perPage and derives the offset.
func NormalizePage(number, perPage, defaultPerPage, maxPerPage int) (page int, limit int, offset int) {
	page = number
	if page <= 0 {
		page = 1
	}
	limit = perPage
	if limit <= 0 {
		limit = defaultPerPage
	}
	if maxPerPage > 0 && limit > maxPerPage {
		limit = maxPerPage
	}
	offset = (page - 1) * limit
	return page, limit, offset
}

// ComputeTotalPages is ceil(total / perPage) with perPage<=0 guarded.
func ComputeTotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	if total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// TrimPtr trims the pointed-at string, returning nil when empty.
func TrimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
