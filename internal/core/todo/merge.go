package todo

// New builds the record to insert from a create input, applying defaults
// for omitted or unrecognised fields. ID and timestamps are left for the
// caller and the store.
func New(in Input) (Todo, error) {
	if err := ValidateCreate(in); err != nil {
		return Todo{}, err
	}

	return Todo{
		Title:       in.Title.Value,
		Description: nullable(in.Description),
		Category:    nullable(in.Category),
		Priority:    priorityOr(in.Priority, DefaultPriority),
		DueDate:     parseNullableDate(in.DueDate),
		Progress:    progressOr(in.Progress, DefaultProgress),
	}, nil
}

// Apply merges a sparse update onto existing. Keys present in the input
// replace the stored value; absent keys keep it. Nullable fields sent as
// null or "" are cleared.
func Apply(existing Todo, in Input) (Todo, error) {
	if err := ValidateUpdate(in); err != nil {
		return Todo{}, err
	}

	merged := existing

	if in.Title.Set {
		merged.Title = in.Title.Value
	}
	if in.Description.Set {
		merged.Description = nullable(in.Description)
	}
	if in.Category.Set {
		merged.Category = nullable(in.Category)
	}
	if in.DueDate.Set {
		merged.DueDate = parseNullableDate(in.DueDate)
	}

	// Legacy rows may hold an empty enum; fall back to the defaults.
	storedPriority := existing.Priority
	if !storedPriority.IsValid() {
		storedPriority = DefaultPriority
	}
	storedProgress := existing.Progress
	if !storedProgress.IsValid() {
		storedProgress = DefaultProgress
	}
	merged.Priority = priorityOr(in.Priority, storedPriority)
	merged.Progress = progressOr(in.Progress, storedProgress)

	return merged, nil
}

func priorityOr(o Optional[string], fallback Priority) Priority {
	if p := Priority(o.Value); o.Present() && p.IsValid() {
		return p
	}
	return fallback
}

func progressOr(o Optional[string], fallback Progress) Progress {
	if p := Progress(o.Value); o.Present() && p.IsValid() {
		return p
	}
	return fallback
}

// parseNullableDate expects an already validated value.
func parseNullableDate(o Optional[string]) *Date {
	s := nullable(o)
	if s == nil {
		return nil
	}
	d, err := ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}
