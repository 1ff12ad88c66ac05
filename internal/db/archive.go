package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ResumeArchive stores the original uploaded resume bytes keyed by a
// generated content id. Archival is best effort: callers log a failure and
// carry on, it never blocks session creation.
type ResumeArchive struct {
	db *DB
}

// NewResumeArchive returns an archive over an open connection pool.
func NewResumeArchive(db *DB) *ResumeArchive {
	return &ResumeArchive{db: db}
}

// Save stores the upload and returns its content id.
func (a *ResumeArchive) Save(ctx context.Context, sessionID, filename string, content []byte) (uuid.UUID, error) {
	id := uuid.New()
	_, err := a.db.pool.Exec(ctx,
		`INSERT INTO resume_files (id, session_id, filename, content)
		 VALUES ($1, $2, $3, $4)`,
		id, sessionID, filename, content,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to archive resume %s: %w", filename, err)
	}
	return id, nil
}
