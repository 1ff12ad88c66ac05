package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-coach/internal/interview"
)

// SessionStore implements interview.Store on PostgreSQL. Every array
// mutation is a single conditional UPDATE guarded in SQL, so concurrent
// appends against the same session serialize on the row and none are lost.
type SessionStore struct {
	db *DB
}

// NewSessionStore returns a session store over an open connection pool.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

const sessionColumns = `session_id, COALESCE(identity_ref, ''), resume_text,
	questions, responses, feedbacks, question_index, active, created_at`

// scanSession scans one session row.
func scanSession(row pgx.Row) (*interview.Session, error) {
	var s interview.Session
	err := row.Scan(&s.SessionID, &s.IdentityRef, &s.ResumeText,
		&s.Questions, &s.Responses, &s.Feedbacks, &s.QuestionIndex, &s.Active, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateOrGet inserts the session with the seed question, relying on the
// primary key to make retried creations converge to one record. An existing
// record is returned unchanged; the retry's resume text is discarded.
func (s *SessionStore) CreateOrGet(ctx context.Context, sessionID, identityRef, resumeText string) (*interview.Session, error) {
	row := s.db.pool.QueryRow(ctx,
		`INSERT INTO sessions (session_id, identity_ref, resume_text, questions)
		 VALUES ($1, NULLIF($2, ''), $3, ARRAY[$4])
		 ON CONFLICT (session_id) DO NOTHING
		 RETURNING `+sessionColumns,
		sessionID, identityRef, resumeText, interview.SeedQuestion,
	)
	session, err := scanSession(row)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, &interview.StorageError{Op: "create session", Cause: err}
	}
	// Conflict: the record already exists, return it as-is.
	return s.Get(ctx, sessionID)
}

// Get returns the session or *interview.NotFoundError.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*interview.Session, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = $1`, sessionID)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &interview.NotFoundError{SessionID: sessionID}
		}
		return nil, &interview.StorageError{Op: "get session", Cause: err}
	}
	return session, nil
}

// AppendQuestion appends in one conditional write. The SET expressions
// evaluate against the pre-update row, so cardinality(questions) is exactly
// the new question's index.
func (s *SessionStore) AppendQuestion(ctx context.Context, sessionID, question string) (*interview.Session, error) {
	row := s.db.pool.QueryRow(ctx,
		`UPDATE sessions
		 SET questions = array_append(questions, $2),
		     question_index = cardinality(questions)
		 WHERE session_id = $1 AND active
		 RETURNING `+sessionColumns,
		sessionID, question,
	)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.appendRefusal(ctx, sessionID, false)
		}
		return nil, &interview.StorageError{Op: "append question", Cause: err}
	}
	return session, nil
}

// AppendAnswer appends the response/feedback pair in one conditional write;
// the pending-question guard lives in the WHERE clause so two concurrent
// answers can never cross-pair or overrun the questions array.
func (s *SessionStore) AppendAnswer(ctx context.Context, sessionID, response, feedback string) (*interview.Session, error) {
	row := s.db.pool.QueryRow(ctx,
		`UPDATE sessions
		 SET responses = array_append(responses, $2),
		     feedbacks = array_append(feedbacks, $3)
		 WHERE session_id = $1 AND active
		   AND cardinality(responses) < cardinality(questions)
		 RETURNING `+sessionColumns,
		sessionID, response, feedback,
	)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.appendRefusal(ctx, sessionID, true)
		}
		return nil, &interview.StorageError{Op: "append answer", Cause: err}
	}
	return session, nil
}

// appendRefusal resolves why a guarded append matched no row: the session is
// absent, closed, or (for answers) fully answered.
func (s *SessionStore) appendRefusal(ctx context.Context, sessionID string, answer bool) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.Active {
		return &interview.ConflictError{SessionID: sessionID, Reason: interview.ReasonSessionClosed}
	}
	if answer && len(session.Responses) >= len(session.Questions) {
		return &interview.ConflictError{SessionID: sessionID, Reason: interview.ReasonNoPendingQuestion}
	}
	// The guard refused but the current row looks appendable: a concurrent
	// writer changed the row between the two statements. Report it as a
	// storage-level failure so the caller can retry.
	return &interview.StorageError{Op: "append", Cause: fmt.Errorf("conditional write refused for session %s", sessionID)}
}

// Close clears the active flag. The unconditional UPDATE makes it
// idempotent: closing a closed session rewrites false over false and
// returns the current record.
func (s *SessionStore) Close(ctx context.Context, sessionID string) (*interview.Session, error) {
	row := s.db.pool.QueryRow(ctx,
		`UPDATE sessions SET active = FALSE WHERE session_id = $1
		 RETURNING `+sessionColumns,
		sessionID,
	)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &interview.NotFoundError{SessionID: sessionID}
		}
		return nil, &interview.StorageError{Op: "close session", Cause: err}
	}
	return session, nil
}

// ListForIdentity returns summaries newest first. Responses are not
// selected; history surfaces only questions and feedback.
func (s *SessionStore) ListForIdentity(ctx context.Context, identityRef string) ([]interview.SessionSummary, error) {
	rows, err := s.db.pool.Query(ctx,
		`SELECT session_id, question_index, active, created_at, questions, feedbacks
		 FROM sessions WHERE identity_ref = $1
		 ORDER BY created_at DESC`,
		identityRef,
	)
	if err != nil {
		return nil, &interview.StorageError{Op: "list sessions", Cause: err}
	}
	defer rows.Close()

	summaries := []interview.SessionSummary{}
	for rows.Next() {
		var sum interview.SessionSummary
		if err := rows.Scan(&sum.SessionID, &sum.QuestionIndex, &sum.Active,
			&sum.CreatedAt, &sum.Questions, &sum.Feedbacks); err != nil {
			return nil, &interview.StorageError{Op: "scan session summary", Cause: err}
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, &interview.StorageError{Op: "list sessions", Cause: err}
	}
	return summaries, nil
}
