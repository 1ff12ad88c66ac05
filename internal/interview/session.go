// Package interview implements the interview session engine: the session
// entity, its lifecycle state machine, and the question/feedback generation
// contracts it drives. Persistence and LLM access are injected through
// interfaces so the engine can run against Postgres and Gemini in production
// and in-memory fakes in tests.
package interview

import "time"

// SeedQuestion is the fixed first question of every session. It is inserted
// at creation time, never generated.
const SeedQuestion = "Introduce yourself."

// Session is the sole persisted entity of the engine. Questions, Responses
// and Feedbacks are append-only; Responses and Feedbacks always have equal
// length and never outgrow Questions.
type Session struct {
	SessionID   string    `json:"session_id"`
	IdentityRef string    `json:"user_id,omitempty"`
	ResumeText  string    `json:"resume_text"`
	Questions   []string  `json:"questions"`
	Responses   []string  `json:"responses"`
	Feedbacks   []string  `json:"feedbacks"`
	// QuestionIndex always equals len(Questions)-1.
	QuestionIndex int       `json:"question_index"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Clone returns a deep copy so callers can never mutate stored state through
// a returned record.
func (s *Session) Clone() *Session {
	c := *s
	c.Questions = append([]string(nil), s.Questions...)
	c.Responses = append([]string(nil), s.Responses...)
	c.Feedbacks = append([]string(nil), s.Feedbacks...)
	return &c
}

// Transcript returns the three transcript arrays as they stand.
func (s *Session) Transcript() Transcript {
	return Transcript{
		Questions: append([]string(nil), s.Questions...),
		Responses: append([]string(nil), s.Responses...),
		Feedbacks: append([]string(nil), s.Feedbacks...),
	}
}

// Transcript is the canonical export of everything asked, answered and
// evaluated in a session.
type Transcript struct {
	Questions []string `json:"questions"`
	Responses []string `json:"responses"`
	Feedbacks []string `json:"feedbacks"`
}

// SessionSummary is the history projection of a session. Responses are
// intentionally omitted; history surfaces only questions and feedback.
type SessionSummary struct {
	SessionID     string    `json:"session_id"`
	QuestionIndex int       `json:"question_index"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	Questions     []string  `json:"questions"`
	Feedbacks     []string  `json:"feedbacks"`
}

// Summary projects the session into its history form.
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		SessionID:     s.SessionID,
		QuestionIndex: s.QuestionIndex,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
		Questions:     append([]string(nil), s.Questions...),
		Feedbacks:     append([]string(nil), s.Feedbacks...),
	}
}
