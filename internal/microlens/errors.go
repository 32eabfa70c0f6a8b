package microlens

import "errors"

// Precondition violations reported by constructors and Search. Callers match
// them with errors.Is; the wrapped message names the offending value.
var (
	ErrInvalidRegion    = errors.New("invalid region")
	ErrInvalidSource    = errors.New("invalid source")
	ErrInvalidLensField = errors.New("invalid lens field")
	ErrTooDeep          = errors.New("search too deep")
	ErrInvalidConfig    = errors.New("invalid config")
)
