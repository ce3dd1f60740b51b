package domain

import "errors"

// ErrConfiguration marks fatal setup problems: no dataset file in any
// candidate location, or the required reviews column missing. Callers
// wrap it with detail via fmt.Errorf("...: %w", ErrConfiguration).
var ErrConfiguration = errors.New("configuration error")

// WarnNoMatches is the display-only signal for an empty filter result.
// It is informational, never an error.
const WarnNoMatches = "no reviews match the current filter selection"
