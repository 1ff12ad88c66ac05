package interview

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMemoryStore_ConcurrentCreateOrGetConverges(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		resume := fmt.Sprintf("resume variant %d", i)
		g.Go(func() error {
			_, err := store.CreateOrGet(ctx, "sess-1", "user-1", resume)
			return err
		})
	}
	require.NoError(t, g.Wait())

	summaries, err := store.ListForIdentity(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, summaries, 1, "concurrent creations must converge to one record")

	session, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{SeedQuestion}, session.Questions)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.SessionID)
}

func TestMemoryStore_AppendQuestionClosedSession(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.CreateOrGet(ctx, "sess-1", "", "resume")
	require.NoError(t, err)
	_, err = store.Close(ctx, "sess-1")
	require.NoError(t, err)

	_, err = store.AppendQuestion(ctx, "sess-1", "another question")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ReasonSessionClosed, conflict.Reason)
}

func TestMemoryStore_AppendAnswerGuards(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.CreateOrGet(ctx, "sess-1", "", "resume")
	require.NoError(t, err)

	// Seed question is pending, so one answer fits.
	session, err := store.AppendAnswer(ctx, "sess-1", "resp", "fb")
	require.NoError(t, err)
	assert.Equal(t, []string{"resp"}, session.Responses)
	assert.Equal(t, []string{"fb"}, session.Feedbacks)

	_, err = store.AppendAnswer(ctx, "sess-1", "resp2", "fb2")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ReasonNoPendingQuestion, conflict.Reason)

	// The refused pair must not be half-applied.
	session, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, session.Responses, 1)
	assert.Len(t, session.Feedbacks, 1)
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.CreateOrGet(ctx, "sess-1", "", "resume")
	require.NoError(t, err)

	first, err := store.Close(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, first.Active)

	second, err := store.Close(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMemoryStore_ReturnedSessionsAreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.CreateOrGet(ctx, "sess-1", "", "resume")
	require.NoError(t, err)
	created.Questions[0] = "tampered"
	created.Responses = append(created.Responses, "tampered")

	session, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{SeedQuestion}, session.Questions)
	assert.Empty(t, session.Responses)
}

func TestMemoryStore_ListForIdentityNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.CreateOrGet(ctx, fmt.Sprintf("sess-%d", i), "user-1", "resume")
		require.NoError(t, err)
	}
	_, err := store.CreateOrGet(ctx, "other", "user-2", "resume")
	require.NoError(t, err)

	summaries, err := store.ListForIdentity(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "sess-2", summaries[0].SessionID)
	assert.Equal(t, "sess-1", summaries[1].SessionID)
	assert.Equal(t, "sess-0", summaries[2].SessionID)
}

func TestMemoryStore_ListForIdentityIgnoresAnonymous(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.CreateOrGet(ctx, "anon", "", "resume")
	require.NoError(t, err)

	summaries, err := store.ListForIdentity(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, summaries, "anonymous sessions are not listable by identity")
}
