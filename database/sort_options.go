package database

import "strings"

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	DefaultSortField = "created_at"
	DefaultSortOrder = SortDesc
)

// CaseSortFields lists the case columns a listing may be ordered by.
var CaseSortFields = []string{
	"created_at", "updated_at", "case_number", "title",
	"status", "priority", "category", "incident_date",
}

// PersonnelSortFields lists the personnel columns a listing may be ordered by.
var PersonnelSortFields = []string{
	"created_at", "updated_at", "badge_number", "first_name", "last_name",
	"email", "rank", "department", "status", "hire_date",
}

// IsValidSortOrder checks if a string is a valid sort direction
func IsValidSortOrder(order string) bool {
	switch order {
	case SortAsc, SortDesc:
		return true
	default:
		return false
	}
}

// ResolveSort maps caller supplied sort parameters onto a whitelisted column
// and direction. Anything unknown falls back to the defaults.
func ResolveSort(allowed []string, field, order string) (string, string) {
	column := DefaultSortField
	field = strings.TrimSpace(field)
	for _, f := range allowed {
		if f == field {
			column = f
			break
		}
	}

	order = strings.ToLower(strings.TrimSpace(order))
	if !IsValidSortOrder(order) {
		order = DefaultSortOrder
	}
	return column, order
}
