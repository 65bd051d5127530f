package usecase

import "strings"

// trimPtr trims a patch string in place; nil passes through.
func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
