package interview

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process Store with the same conditional-write
// semantics as the Postgres implementation. It backs tests and
// database-less development serving.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	order    map[string]int64 // creation sequence, breaks CreatedAt ties
	seq      int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		order:    make(map[string]int64),
	}
}

// CreateOrGet creates the session under the lock, so concurrent first calls
// converge to exactly one record.
func (m *MemoryStore) CreateOrGet(_ context.Context, sessionID, identityRef, resumeText string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[sessionID]; ok {
		return existing.Clone(), nil
	}

	s := &Session{
		SessionID:     sessionID,
		IdentityRef:   identityRef,
		ResumeText:    resumeText,
		Questions:     []string{SeedQuestion},
		Responses:     []string{},
		Feedbacks:     []string{},
		QuestionIndex: 0,
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	}
	m.seq++
	m.sessions[sessionID] = s
	m.order[sessionID] = m.seq
	return s.Clone(), nil
}

// Get returns a copy of the session or *NotFoundError.
func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, &NotFoundError{SessionID: sessionID}
	}
	return s.Clone(), nil
}

// AppendQuestion appends under the lock; the closed check and the append are
// one atomic step.
func (m *MemoryStore) AppendQuestion(_ context.Context, sessionID, question string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, &NotFoundError{SessionID: sessionID}
	}
	if !s.Active {
		return nil, &ConflictError{SessionID: sessionID, Reason: ReasonSessionClosed}
	}

	s.Questions = append(s.Questions, question)
	s.QuestionIndex = len(s.Questions) - 1
	return s.Clone(), nil
}

// AppendAnswer appends the response/feedback pair together or not at all.
func (m *MemoryStore) AppendAnswer(_ context.Context, sessionID, response, feedback string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, &NotFoundError{SessionID: sessionID}
	}
	if !s.Active {
		return nil, &ConflictError{SessionID: sessionID, Reason: ReasonSessionClosed}
	}
	if len(s.Responses) >= len(s.Questions) {
		return nil, &ConflictError{SessionID: sessionID, Reason: ReasonNoPendingQuestion}
	}

	s.Responses = append(s.Responses, response)
	s.Feedbacks = append(s.Feedbacks, feedback)
	return s.Clone(), nil
}

// Close is idempotent; closing a closed session returns the current record.
func (m *MemoryStore) Close(_ context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, &NotFoundError{SessionID: sessionID}
	}
	s.Active = false
	return s.Clone(), nil
}

// ListForIdentity returns summaries newest first.
func (m *MemoryStore) ListForIdentity(_ context.Context, identityRef string) ([]SessionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	summaries := []SessionSummary{}
	for _, s := range m.sessions {
		if identityRef != "" && s.IdentityRef == identityRef {
			summaries = append(summaries, s.Summary())
		}
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return m.order[a.SessionID] > m.order[b.SessionID]
	})
	return summaries, nil
}
