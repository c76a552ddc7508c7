package repository

import (
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// filled returns the trimmed parameter; blank means the filter is absent.
func filled(v string) string {
	return strings.TrimSpace(v)
}

// whereScope applies a squirrel condition to a GORM query. An empty
// condition leaves the query untouched.
func whereScope(cond sq.Sqlizer) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		query, args, err := cond.ToSql()
		if err != nil {
			_ = db.AddError(err)
			return db
		}
		if query == "" {
			return db
		}
		return db.Where(query, args...)
	}
}

// orderScope sorts by a whitelisted column, then by id in the same direction
// so rows with equal sort keys keep a stable order across pages.
func orderScope(column, order string) func(*gorm.DB) *gorm.DB {
	desc := order == "desc"
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
		if column != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
		}
		return db
	}
}

// updateColumns returns the allowed columns that appear in fields, in
// allow-list order, followed by the attachment column which is always
// rewritten with the appended list.
func updateColumns(allowed, fields []string, attachments string) []string {
	cols := make([]string, 0, len(allowed)+1)
	for _, c := range allowed {
		if slices.Contains(fields, c) {
			cols = append(cols, c)
		}
	}
	return append(cols, attachments)
}
