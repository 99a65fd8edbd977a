package errors

import (
	"fmt"
)

// newError prefixes the message and keeps err in the chain, so callers can match
// on the sentinel with errors.Is.
func newError(err error, format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", text, err)
	}

	return fmt.Errorf("%s", text)
}
