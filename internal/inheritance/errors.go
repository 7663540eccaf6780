package inheritance

import "errors"

// ErrNotFound is returned when no layer in the chain holds a
// requested token path.
var ErrNotFound = errors.New("token not found")
