package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// StdinPath is the --file value that reads the document from stdin.
const StdinPath = "-"

// FileReader decodes a JSON document named by a --file flag. The zero
// value reads stdin from [os.Stdin].
type FileReader[T any] struct {
	fileFlagValue string

	// Stdin overrides os.Stdin. When set, the terminal check is skipped.
	Stdin io.Reader
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (use - to read from stdin)",
		Destination: &fr.fileFlagValue,
	}
}

// Provided reports whether --file was given.
func (fr *FileReader[T]) Provided() bool {
	return fr.fileFlagValue != ""
}

func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T

	switch {
	case fr.fileFlagValue == "":
		return input, errors.New("no input provided; use -f <path> or -f - to read stdin")
	case fr.fileFlagValue != StdinPath:
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	case fr.Stdin != nil:
		reader = fr.Stdin
	default:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); pipe JSON input or use -f <path>")
		}
		reader = os.Stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
