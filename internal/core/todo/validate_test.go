package todo

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain title", "Buy milk", false},
		{"surrounding spaces", "  Buy milk  ", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs and newlines", "\t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Title(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Title(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantFields []string
	}{
		{"valid minimal", Input{Title: Some("Buy milk")}, nil},
		{"missing title", Input{}, []string{"title"}},
		{"null title", Input{Title: Null[string]()}, []string{"title"}},
		{"whitespace title", Input{Title: Some("  ")}, []string{"title"}},
		{"valid due date", Input{Title: Some("x"), DueDate: Some("2025-12-01")}, nil},
		{"cleared due date", Input{Title: Some("x"), DueDate: Some("")}, nil},
		{"bad due date", Input{Title: Some("x"), DueDate: Some("tomorrow")}, []string{"dueDate"}},
		{"both invalid", Input{DueDate: Some("tomorrow")}, []string{"title", "dueDate"}},
		{"unknown enums are not errors", Input{Title: Some("x"), Priority: Some("urgent"), Progress: Some("done")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(tt.input)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrValidation)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, len(tt.wantFields))
			for i, field := range tt.wantFields {
				assert.Equal(t, field, fieldErrs[i].Field)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr bool
	}{
		{"empty update", Input{}, false},
		{"title omitted", Input{Category: Some("LeetCode")}, false},
		{"title present and valid", Input{Title: Some("New")}, false},
		{"title present and empty", Input{Title: Some("")}, true},
		{"title present and whitespace", Input{Title: Some(" \t")}, true},
		{"title null", Input{Title: Null[string]()}, true},
		{"bad due date", Input{DueDate: Some("31/12/2025")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdate(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestMessages(t *testing.T) {
	err := ValidateCreate(Input{})
	assert.Equal(t, []string{"Title is required"}, Messages(err))

	assert.Nil(t, Messages(ErrNotFound))
	assert.Nil(t, Messages(nil))
}
