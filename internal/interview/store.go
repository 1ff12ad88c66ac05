package interview

import "context"

// Store is the durable keyed storage contract for session records.
//
// Implementations must make every array mutation a single conditional write:
// two concurrent appends against the same session may serialize in either
// order but neither may be lost, and a response/feedback pair is always
// appended together or not at all.
type Store interface {
	// CreateOrGet creates the session if it does not exist and returns it;
	// if it already exists the existing record is returned unchanged.
	// Concurrent first calls with the same id converge to one record.
	CreateOrGet(ctx context.Context, sessionID, identityRef, resumeText string) (*Session, error)

	// Get returns the session or *NotFoundError.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// AppendQuestion atomically appends to Questions and recomputes
	// QuestionIndex. Returns *ConflictError if the session is closed.
	AppendQuestion(ctx context.Context, sessionID, question string) (*Session, error)

	// AppendAnswer atomically appends one element to both Responses and
	// Feedbacks. Returns *ConflictError if the session is closed or there is
	// no pending question.
	AppendAnswer(ctx context.Context, sessionID, response, feedback string) (*Session, error)

	// Close sets Active to false. Closing an already-closed session is a
	// no-op returning the current record.
	Close(ctx context.Context, sessionID string) (*Session, error)

	// ListForIdentity returns session summaries for an identity, newest
	// first. Unknown identities yield an empty slice, not an error.
	ListForIdentity(ctx context.Context, identityRef string) ([]SessionSummary, error)
}
