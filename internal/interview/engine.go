package interview

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultGenerationTimeout bounds each call to the generation service. The
// engine never blocks on generation without a deadline.
const DefaultGenerationTimeout = 30 * time.Second

// CompletionNotice is returned by Next for a session that has already ended.
// Asking for a question on a finished interview is a valid, harmless query,
// not an error.
const CompletionNotice = "Interview complete"

// Engine is the session state machine. Each operation is an independent,
// stateless request against the shared store; generation always happens
// before the store write, and the store write is the sole point of mutation.
type Engine struct {
	store     Store
	generator QuestionGenerator
	evaluator ResponseEvaluator
	timeout   time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithGenerationTimeout overrides the per-call generation deadline.
func WithGenerationTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine constructs the state machine from its collaborators.
func NewEngine(store Store, generator QuestionGenerator, evaluator ResponseEvaluator, opts ...EngineOption) *Engine {
	e := &Engine{
		store:     store,
		generator: generator,
		evaluator: evaluator,
		timeout:   DefaultGenerationTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start creates a session for the extracted resume text, or returns the
// existing one when the same session id is submitted again (retried uploads
// must not create a second record or reset the transcript).
func (e *Engine) Start(ctx context.Context, resumeText, identityRef, requestedSessionID string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", &InvalidInputError{Field: "resume_text", Message: "resume text is required"}
	}

	sessionID := requestedSessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if _, err := e.store.CreateOrGet(ctx, sessionID, identityRef, resumeText); err != nil {
		return "", err
	}
	return sessionID, nil
}

// NextResult is the outcome of Next: either the generated question or a
// completion notice for an ended session.
type NextResult struct {
	Question string
	Done     bool
}

// Next generates and appends the next question. On an ended session it
// returns the completion notice without mutating state. A generation failure
// is recorded as the question text itself (degrade-to-content), so the
// interview advances either way.
func (e *Engine) Next(ctx context.Context, sessionID string) (NextResult, error) {
	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return NextResult{}, err
	}
	if !session.Active {
		return NextResult{Question: CompletionNotice, Done: true}, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	result := e.generator.Generate(genCtx, session.ResumeText, session.Questions)
	cancel()
	if result.Degraded {
		log.Printf("[engine] question generation degraded for session %s: %v", sessionID, result.Err)
	}

	if _, err := e.store.AppendQuestion(ctx, sessionID, result.Text); err != nil {
		// The session may have been ended between the read and the append;
		// that is the same harmless query as asking after end.
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return NextResult{Question: CompletionNotice, Done: true}, nil
		}
		return NextResult{}, err
	}
	return NextResult{Question: result.Text}, nil
}

// Answer evaluates the response against the most recently asked question and
// appends the response/feedback pair atomically, returning the feedback.
func (e *Engine) Answer(ctx context.Context, sessionID, responseText string) (string, error) {
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return "", &InvalidInputError{Field: "response", Message: "response text is required"}
	}

	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !session.Active {
		return "", &ConflictError{SessionID: sessionID, Reason: ReasonSessionClosed}
	}
	if len(session.Responses) >= len(session.Questions) {
		return "", &ConflictError{SessionID: sessionID, Reason: ReasonNoPendingQuestion}
	}

	// The answer binds to whatever question is last in the list; Questions is
	// non-empty from creation on.
	question := session.Questions[len(session.Questions)-1]

	evalCtx, cancel := context.WithTimeout(ctx, e.timeout)
	result := e.evaluator.Evaluate(evalCtx, session.ResumeText, question, responseText)
	cancel()
	if result.Degraded {
		log.Printf("[engine] response evaluation degraded for session %s: %v", sessionID, result.Err)
	}

	if _, err := e.store.AppendAnswer(ctx, sessionID, responseText, result.Text); err != nil {
		return "", err
	}
	return result.Text, nil
}

// End closes the session (idempotently) and returns the full transcript.
// Repeated calls return the same content.
func (e *Engine) End(ctx context.Context, sessionID string) (Transcript, error) {
	session, err := e.store.Close(ctx, sessionID)
	if err != nil {
		return Transcript{}, err
	}
	return session.Transcript(), nil
}

// History lists session summaries for an identity, newest first. An identity
// with no sessions yields an empty list.
func (e *Engine) History(ctx context.Context, identityRef string) ([]SessionSummary, error) {
	return e.store.ListForIdentity(ctx, identityRef)
}
