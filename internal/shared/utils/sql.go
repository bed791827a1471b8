package utils

import (
	"fmt"
	"strings"
)

// WhereBuilder accumulates AND-ed conditions with numbered pgx placeholders
type WhereBuilder struct {
	clauses []string
	args    []any
}

// Add appends a condition. Every %s in format is replaced by the
// placeholder of value, so one value may be referenced several times.
func (w *WhereBuilder) Add(format string, value any) {
	w.args = append(w.args, value)
	ph := fmt.Sprintf("$%d", len(w.args))
	w.clauses = append(w.clauses, strings.ReplaceAll(format, "%s", ph))
}

// SQL renders " WHERE a AND b", or "" without conditions
func (w *WhereBuilder) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// Args returns the bound values in placeholder order
func (w *WhereBuilder) Args() []any {
	out := make([]any, len(w.args))
	copy(out, w.args)
	return out
}
