package repository

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// whereBuilder collects AND-ed conditions. Each "?" in a condition is
// replaced by the next positional parameter.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(cond string, args ...interface{}) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// next returns the placeholder for a parameter appended after the conditions
func (w *whereBuilder) next(arg interface{}) string {
	w.args = append(w.args, arg)
	return "$" + strconv.Itoa(len(w.args))
}

// likePattern escapes LIKE wildcards and wraps the term for a substring match
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func int64Array(values []int) interface{} {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return pq.Array(out)
}
