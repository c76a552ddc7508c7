package database

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Builder produces statements with '?' placeholders, which GORM rebinds for
// the active dialect.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so the term matches literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// ContainsFold matches rows where column contains term, ignoring case.
// Both sides are folded by the database's LOWER so they always agree; on
// sqlite that is the Unicode-aware replacement registered in sqlite.go.
func ContainsFold(column, term string) sq.Sqlizer {
	pattern := "%" + EscapeLike(term) + "%"
	return sq.Expr(fmt.Sprintf(`LOWER(%s) LIKE LOWER(?) ESCAPE '\'`, column), pattern)
}

// AnyContainsFold matches rows where at least one of columns contains term.
func AnyContainsFold(columns []string, term string) sq.Sqlizer {
	or := sq.Or{}
	for _, c := range columns {
		or = append(or, ContainsFold(c, term))
	}
	return or
}
