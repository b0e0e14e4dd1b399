package sim

import "fmt"

// InvariantError reports a broken engine invariant, such as occupying a
// non-vacant cell or relocating a satisfied agent. It indicates a bug in the
// engine rather than a recoverable runtime condition.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Op, e.Detail)
}
