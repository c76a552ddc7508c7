package validation

import (
	"sort"
	"strings"
)

// Errors maps a form field to its violation messages. Keys follow the form
// names, with an index for file fields ("documents.0").
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// orNil returns nil for an empty set so callers can return it as an error.
func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
