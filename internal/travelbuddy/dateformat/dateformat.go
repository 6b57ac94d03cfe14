package dateformat

import (
	"fmt"
	"time"
)

// Layout is the canonical form every downstream pricing API expects.
const Layout = "2006-01-02"

// layouts are tried in order; the first match wins. Exactly two input forms
// are accepted, nothing else is guessed at.
var layouts = []string{"02/01/2006", Layout}

// InvalidFormatError reports an input matching neither accepted form.
type InvalidFormatError struct {
	Input string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("date format not recognized: %q, expected DD/MM/YYYY or YYYY-MM-DD", e.Input)
}

// Normalize converts a caller-supplied date string to YYYY-MM-DD.
func Normalize(input string) (string, error) {
	t, err := Parse(input)
	if err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

// Parse resolves a caller-supplied date string to a calendar date.
func Parse(input string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidFormatError{Input: input}
}
