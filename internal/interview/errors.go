package interview

import "fmt"

// NotFoundError indicates an unknown session id. No mutation happened.
type NotFoundError struct {
	SessionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// Conflict reasons reported by ConflictError.
const (
	ReasonSessionClosed     = "session is closed"
	ReasonNoPendingQuestion = "no pending question to answer"
)

// ConflictError indicates an append attempted against a closed session, or
// an answer submitted when every asked question already has one.
type ConflictError struct {
	SessionID string
	Reason    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("session %s: %s", e.SessionID, e.Reason)
}

// InvalidInputError indicates a missing or empty required field. The
// operation was not attempted.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s - %s", e.Field, e.Message)
}

// StorageError indicates the durable store was unreachable or rejected the
// operation. Fatal to the operation; no partial state was written.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
