package lexicon

import "fmt"

// FormatError reports a malformed lexicon line. It is fatal at load
// time; a store is never built from partially valid input.
type FormatError struct {
	Line int    // 1-based line number in the source
	Msg  string // What was wrong with the line
	Err  error  // Underlying parse error, if any
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lexicon line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("lexicon line %d: %s", e.Line, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
