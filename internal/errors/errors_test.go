package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err      error
		expected int
	}{
		"nil":          {err: nil, expected: ExitSuccess},
		"no files":     {err: fmt.Errorf("discover: %w", ErrNoFilesMatched), expected: ExitNoFilesMatched},
		"empty set":    {err: ErrEmptyInputSet, expected: ExitEmptyInputSet},
		"header":       {err: fmt.Errorf("merge: %w", &HeaderMismatchError{Index: -1}), expected: ExitHeaderMismatch},
		"column count": {err: &ColumnCountMismatchError{Expected: 36, Found: 40}, expected: ExitColumnCountMismatch},
		"invalid arg":  {err: InvalidArgument("negative group count %d", -1), expected: ExitInvalidArgument},
		"generic":      {err: fmt.Errorf("disk full"), expected: ExitFailure},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, ExitCode(test.err))
		})
	}
}

func TestHeaderMismatchErrorMessage(t *testing.T) {
	err := &HeaderMismatchError{
		Path:          "in/f2.csv",
		ReferencePath: "in/f1.csv",
		Expected:      []string{"x", "y"},
		Found:         []string{"x", "z"},
		Index:         1,
	}

	msg := Format(fmt.Errorf("merge: %w", err))
	assert.Contains(t, msg, "header mismatch in in/f2.csv")
	assert.Contains(t, msg, `Expected (from in/f1.csv): ["x", "y"]`)
	assert.Contains(t, msg, `Found: ["x", "z"]`)
	assert.Contains(t, msg, "column 2")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "ERROR: no files matched", Format(ErrNoFilesMatched))
	assert.Contains(t, Format(&ColumnCountMismatchError{Expected: 41, Found: 43, Groups: 1}), "Column alignment error")
}
