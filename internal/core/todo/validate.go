package todo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

var (
	errTitleRequired = errors.New("Title is required")
	errDueDateFormat = errors.New("Invalid dueDate, expected YYYY-MM-DD")
)

// Title validates a title is non-empty after trimming whitespace. The
// stored title is never trimmed; trimming only decides emptiness.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errTitleRequired
	}
	return nil
}

// ValidateCreate checks a create input. Title must be present; an absent
// or null title fails the same way an empty one does.
func ValidateCreate(in Input) error {
	var errs criterio.FieldErrorsBuilder

	if !in.Title.Present() {
		errs = errs.Append("title", errTitleRequired)
	} else if err := Title(in.Title.Value); err != nil {
		errs = errs.Append("title", err)
	}

	if err := dueDate(in.DueDate); err != nil {
		errs = errs.Append("dueDate", err)
	}

	return wrapValidation(errs.ToError())
}

// ValidateUpdate checks an update input. Title is only checked when the
// key was sent.
func ValidateUpdate(in Input) error {
	var errs criterio.FieldErrorsBuilder

	if in.Title.Set {
		if in.Title.Null {
			errs = errs.Append("title", errTitleRequired)
		} else if err := Title(in.Title.Value); err != nil {
			errs = errs.Append("title", err)
		}
	}

	if err := dueDate(in.DueDate); err != nil {
		errs = errs.Append("dueDate", err)
	}

	return wrapValidation(errs.ToError())
}

// Messages returns the human readable messages of a validation error, in
// field order. Returns nil for errors that carry no field errors.
func Messages(err error) []string {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Err.Error())
	}
	return msgs
}

func dueDate(o Optional[string]) error {
	if !o.Present() || o.Value == "" {
		return nil
	}
	if _, err := ParseDate(o.Value); err != nil {
		return errDueDateFormat
	}
	return nil
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
