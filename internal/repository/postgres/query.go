package postgres

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereBuilder collects optional filter predicates as parameterized fragments.
// Column names always come from code; user input only ever travels as an argument.
type whereBuilder struct {
	clauses []string
	args    []any
}

// eq adds "column = $n" when value is non-empty.
func (w *whereBuilder) eq(column, value string) {
	if value == "" {
		return
	}
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

// search adds a case-insensitive substring match across columns when term is non-empty.
func (w *whereBuilder) search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}
	w.args = append(w.args, "%"+likeEscaper.Replace(term)+"%")
	n := len(w.args)
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", c, n)
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
}

// where renders the WHERE clause, or "" when no filter is active.
func (w *whereBuilder) where() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.clauses, " AND ")
}

// page appends LIMIT and OFFSET placeholders and returns the clause with the full argument list.
func (w *whereBuilder) page(limit, offset int) (string, []any) {
	n := len(w.args)
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", n+1, n+2), args
}
