package order

import "fmt"

// ValidationError reports a malformed placement request. It is raised before
// any reservation, so a rejected request has no side effects to undo.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PersistenceError reports a storage failure after every reservation
// succeeded. All reservations are released before it is returned, so the
// caller may retry safely.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
