package stores

import (
	"fmt"
	"strings"

	"github.com/colonyops/journey/internal/core/todo"
)

const todoColumns = "id, title, description, category, priority, due_date, progress, created_at, updated_at"

// filterColumns whitelists the columns a predicate may reference. Values
// never reach the SQL text; they are always bound as arguments.
var filterColumns = map[todo.Field]string{
	todo.FieldTitle:       "title",
	todo.FieldDescription: "description",
	todo.FieldCategory:    "category",
	todo.FieldPriority:    "priority",
	todo.FieldProgress:    "progress",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListQuery folds predicates into a parameterized SELECT. Fields of a
// single predicate are OR'ed; predicates are AND'ed.
func buildListQuery(preds []todo.Predicate) (string, []any, error) {
	var (
		sb      strings.Builder
		clauses = make([]string, 0, len(preds))
		args    = make([]any, 0, len(preds))
	)

	for i, p := range preds {
		if len(p.Fields) == 0 {
			return "", nil, fmt.Errorf("predicate %d has no fields", i)
		}

		parts := make([]string, 0, len(p.Fields))
		for _, f := range p.Fields {
			col, ok := filterColumns[f]
			if !ok {
				return "", nil, fmt.Errorf("predicate %d: unknown field %q", i, f)
			}

			switch p.Op {
			case todo.OpEquals:
				parts = append(parts, col+" = ?")
				args = append(args, p.Value)
			case todo.OpContains:
				parts = append(parts, col+` LIKE ? ESCAPE '\'`)
				args = append(args, "%"+likeEscaper.Replace(p.Value)+"%")
			default:
				return "", nil, fmt.Errorf("predicate %d: unsupported op %s", i, p.Op)
			}
		}

		if len(parts) == 1 {
			clauses = append(clauses, parts[0])
		} else {
			clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
		}
	}

	sb.WriteString("SELECT ")
	sb.WriteString(todoColumns)
	sb.WriteString(" FROM todos")
	if len(clauses) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(clauses, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")

	return sb.String(), args, nil
}
