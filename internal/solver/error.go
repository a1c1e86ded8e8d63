package solver

// AssertionError marks a violated internal invariant. It is raised via
// panic: a sentence that claims more mines than it has cells means the
// caller fed the agent inconsistent facts, which is a bug, not a runtime
// condition to recover from.
type AssertionError struct {
	message string
}

func (e AssertionError) Error() string {
	return e.message
}
