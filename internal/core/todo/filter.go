package todo

// Field names a filterable Todo column.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldPriority    Field = "priority"
	FieldProgress    Field = "progress"
)

// Op is the comparison a Predicate applies.
type Op int

const (
	// OpEquals matches the column value exactly.
	OpEquals Op = iota
	// OpContains matches when Value is a substring of the column value.
	OpContains
)

func (o Op) String() string {
	switch o {
	case OpEquals:
		return "equals"
	case OpContains:
		return "contains"
	default:
		return "unknown"
	}
}

// Predicate is one condition of a list query. When Fields holds more than
// one column the predicate matches if any of them matches. Predicates in a
// list are combined with AND.
type Predicate struct {
	Fields []Field
	Op     Op
	Value  string
}

// Filter controls which items are returned by List. Empty strings mean
// the filter is not applied.
type Filter struct {
	Category string `json:"category,omitempty"`
	Priority string `json:"priority,omitempty"`
	Progress string `json:"progress,omitempty"`
	Search   string `json:"search,omitempty"`
}

// IsEmpty reports whether no filter is applied.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Predicates converts the filter into the predicate list a store folds into
// its query.
func (f Filter) Predicates() []Predicate {
	var preds []Predicate

	if f.Category != "" {
		preds = append(preds, Predicate{Fields: []Field{FieldCategory}, Op: OpEquals, Value: f.Category})
	}
	if f.Priority != "" {
		preds = append(preds, Predicate{Fields: []Field{FieldPriority}, Op: OpEquals, Value: f.Priority})
	}
	if f.Progress != "" {
		preds = append(preds, Predicate{Fields: []Field{FieldProgress}, Op: OpEquals, Value: f.Progress})
	}
	if f.Search != "" {
		preds = append(preds, Predicate{
			Fields: []Field{FieldTitle, FieldDescription},
			Op:     OpContains,
			Value:  f.Search,
		})
	}

	return preds
}
