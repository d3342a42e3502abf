package gateway

import "fmt"

// ConnectionError marks a failed fetch. The app surfaces it as a full-page
// retry prompt rather than a partial render.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// MutationError marks a failed write. Vote and bookmark failures are reverted
// silently; creation failures are surfaced to the user.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

func connErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ConnectionError{Op: op, Err: err}
}

func mutErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &MutationError{Op: op, Err: err}
}
