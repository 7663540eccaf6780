package governance

import "fmt"

// ErrTokenLocked is returned when an override is attempted against a
// token a lock forbids.
type ErrTokenLocked struct {
	Token string
	Level LockLevel
}

func (e *ErrTokenLocked) Error() string {
	return fmt.Sprintf("token %q is locked at level %s", e.Token, e.Level)
}
