package config

import "strings"

// Selector picks a project, and optionally a page, from a "PROJECT" or
// "PROJECT:PAGE" string.
type Selector struct {
	Project string
	Page    string
}

// ParseSelector splits s at the first colon. Surrounding whitespace is
// ignored.
func ParseSelector(s string) Selector {
	project, page, _ := strings.Cut(strings.TrimSpace(s), ":")
	return Selector{
		Project: strings.TrimSpace(project),
		Page:    strings.TrimSpace(page),
	}
}

// IsZero reports whether no project was selected.
func (s Selector) IsZero() bool {
	return s.Project == ""
}

func (s Selector) String() string {
	if s.Page == "" {
		return s.Project
	}
	return s.Project + ":" + s.Page
}
