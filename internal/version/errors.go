package version

import "errors"

// ErrInvalidFormat is wrapped into every parse failure; callers can test
// for it with errors.Is regardless of which substring is reported.
var ErrInvalidFormat = errors.New("invalid version format")
