package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/llm"
	"github.com/heartmarshall/nova-backend/pkg/ctxutil"
)

//go:generate moq -out mocks_test.go -pkg chat . generator

func userCtx() (context.Context, uuid.UUID) {
	id := uuid.New()
	return ctxutil.WithIdentity(context.Background(), domain.Identity{UserID: id}), id
}

func isTitlePrompt(req llm.Request) bool {
	return len(req.Messages) == 1 && strings.HasPrefix(req.Messages[0].Content, "Generate a short, descriptive title")
}

// scriptedGen replies "title" to title prompts and echoes otherwise.
func scriptedGen(title string) *generatorMock {
	return &generatorMock{
		GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
			if isTitlePrompt(req) {
				return title, nil
			}
			return "reply: " + req.Messages[len(req.Messages)-1].Content, nil
		},
	}
}

func newTestService(repo sessionRepo, gen generator, opts Options) *Service {
	return NewService(slog.Default(), repo, gen, nil, opts)
}

// ---------------------------------------------------------------------------
// Create / Get / List / Delete
// ---------------------------------------------------------------------------

func TestCreateSession_SeedsPersona(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo, scriptedGen("x"), Options{})
	ctx, userID := userCtx()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultChatTitle, sess.Title)
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, uuid.Version(4), sess.ID.Version())
	assert.Equal(t, sess.CreatedAt, sess.UpdatedAt)
	assert.Empty(t, sess.Messages)

	stored := repo.session(sess.ID)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, domain.ChatRoleSystem, stored.Messages[0].Role)
	assert.Equal(t, domain.AssistantPersona, stored.Messages[0].Content)
}

func TestCreateSession_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo(), scriptedGen("x"), Options{})
	_, err := svc.CreateSession(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetSession_NotOwned(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo, scriptedGen("x"), Options{})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	other, _ := userCtx()
	_, err = svc.GetSession(other, sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetSession(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSessions_OrderAndValidation(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo, scriptedGen("Title"), Options{})
	ctx, _ := userCtx()

	first, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	second, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	base := time.Now()
	svc.now = func() time.Time { return base.Add(time.Hour) }
	_, err = svc.AppendMessage(ctx, SendInput{SessionID: first.ID, Content: "hello"})
	require.NoError(t, err)

	list, err := svc.ListSessions(ctx, ListInput{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	_, err = svc.ListSessions(ctx, ListInput{Limit: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteSession_ThenGetIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo(), scriptedGen("x"), Options{})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, sess.ID))

	_, err = svc.GetSession(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, sess.ID), domain.ErrNotFound)

	_, err = svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: "still there?"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// AppendMessage
// ---------------------------------------------------------------------------

func TestAppendMessage_FirstMessage(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	gen := scriptedGen(`"Morning Sickness Remedies"`)
	svc := newTestService(repo, gen, Options{})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	reply, err := svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: "How do I ease nausea?"})
	require.NoError(t, err)

	assert.Equal(t, "reply: How do I ease nausea?", reply.Content)
	assert.Equal(t, "Morning Sickness Remedies", reply.Title)
	assert.False(t, reply.Replayed)

	var chatReq llm.Request
	for _, c := range gen.GenerateCalls() {
		if !isTitlePrompt(c.Req) {
			chatReq = c.Req
		}
	}
	assert.Equal(t, domain.AssistantPersona, chatReq.System)
	require.Len(t, chatReq.Messages, 1)
	assert.Equal(t, llm.RoleUser, chatReq.Messages[0].Role)

	got, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning Sickness Remedies", got.Title)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, domain.ChatRoleUser, got.Messages[0].Role)
	assert.Equal(t, domain.ChatRoleAssistant, got.Messages[1].Role)
	assert.True(t, got.Messages[0].Seq < got.Messages[1].Seq)
}

func TestAppendMessage_TitleOnlyOnFirstMessage(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	gen := scriptedGen("First Title")
	svc := newTestService(repo, gen, Options{})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: "one"})
	require.NoError(t, err)
	reply, err := svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: "two"})
	require.NoError(t, err)
	assert.Equal(t, "First Title", reply.Title)

	titleCalls := 0
	for _, c := range gen.GenerateCalls() {
		if isTitlePrompt(c.Req) {
			titleCalls++
		}
	}
	assert.Equal(t, 1, titleCalls)

	last := gen.GenerateCalls()[len(gen.GenerateCalls())-1].Req
	require.Len(t, last.Messages, 3)
	assert.Equal(t, "one", last.Messages[0].Content)
	assert.Equal(t, "reply: one", last.Messages[1].Content)
	assert.Equal(t, "two", last.Messages[2].Content)
}

func TestAppendMessage_TitleFailureFallsBack(t *testing.T) {
	t.Parallel()

	gen := &generatorMock{
		GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
			if isTitlePrompt(req) {
				return "", errors.New("title model down")
			}
			return "ok", nil
		},
	}
	svc := newTestService(newMemRepo(), gen, Options{})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	reply, err := svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Content)
	assert.Equal(t, domain.DefaultChatTitle, reply.Title)
}

func TestAppendMessage_Validation(t *testing.T) {
	t.Parallel()

	gen := scriptedGen("x")
	svc := newTestService(newMemRepo(), gen, Options{MaxMessageLength: 5})
	ctx, _ := userCtx()
	nilID := uuid.Nil

	tests := []struct {
		name  string
		input SendInput
		field string
	}{
		{name: "empty", input: SendInput{SessionID: uuid.New(), Content: "   "}, field: "content"},
		{name: "too long", input: SendInput{SessionID: uuid.New(), Content: "abcdef"}, field: "content"},
		{name: "no session", input: SendInput{Content: "hi"}, field: "session_id"},
		{name: "nil message id", input: SendInput{SessionID: uuid.New(), Content: "hi", MessageID: &nilID}, field: "message_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AppendMessage(ctx, tt.input)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
	assert.Empty(t, gen.GenerateCalls())
}

func TestAppendMessage_IdempotentReplay(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	gen := scriptedGen("Title")
	svc := newTestService(repo, gen, Options{})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	msgID := uuid.New()
	in := SendInput{SessionID: sess.ID, Content: "Is fish safe?", MessageID: &msgID}

	first, err := svc.AppendMessage(ctx, in)
	require.NoError(t, err)
	callsAfterFirst := len(gen.GenerateCalls())

	second, err := svc.AppendMessage(ctx, in)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, msgID, second.MessageID)
	assert.Len(t, gen.GenerateCalls(), callsAfterFirst)
	assert.Len(t, repo.session(sess.ID).Messages, 3)
}

func TestAppendMessage_GenerationTimeout(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	gen := &generatorMock{
		GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	svc := newTestService(repo, gen, Options{Timeout: 20 * time.Millisecond, TitleTimeout: 20 * time.Millisecond})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: "hello"})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Len(t, repo.session(sess.ID).Messages, 1, "nothing is committed when generation fails")
}

func TestAppendMessage_DownstreamError(t *testing.T) {
	t.Parallel()

	gen := &generatorMock{
		GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
			if isTitlePrompt(req) {
				return "t", nil
			}
			return "", errors.New("malformed response")
		},
	}
	svc := newTestService(newMemRepo(), gen, Options{})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: "hello"})
	assert.ErrorIs(t, err, domain.ErrDownstream)
}

func TestAppendMessage_RetriesOnConflict(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo, scriptedGen("Title"), Options{AppendAttempts: 3})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	repo.conflicts = 2
	repo.getCalls = 0

	_, err = svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.getCalls)
	assert.Len(t, repo.session(sess.ID).Messages, 3)
}

func TestAppendMessage_GivesUpAfterAttempts(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo, scriptedGen("Title"), Options{AppendAttempts: 2})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	repo.conflicts = 5
	_, err = svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: "hello"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAppendMessage_ConcurrentAppendsLoseNothing(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo, scriptedGen("Title"), Options{})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: fmt.Sprintf("msg %d", i)})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored := repo.session(sess.ID)
	require.Len(t, stored.Messages, 1+2*writers)

	seen := make(map[int64]bool)
	for i, m := range stored.Messages {
		assert.Equal(t, int64(i+1), m.Seq)
		assert.False(t, seen[m.Seq])
		seen[m.Seq] = true
	}
	assert.Equal(t, 0, svc.sessLocks.len())
}

func TestAppendMessage_HistoryLimit(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	gen := scriptedGen("Title")
	svc := newTestService(repo, gen, Options{HistoryLimit: 2})
	ctx, _ := userCtx()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	for _, c := range []string{"a", "b", "c"} {
		_, err := svc.AppendMessage(ctx, SendInput{SessionID: sess.ID, Content: c})
		require.NoError(t, err)
	}

	last := gen.GenerateCalls()[len(gen.GenerateCalls())-1].Req
	require.Len(t, last.Messages, 3)
	assert.Equal(t, "b", last.Messages[0].Content)
	assert.Equal(t, "reply: b", last.Messages[1].Content)
	assert.Equal(t, "c", last.Messages[2].Content)
	assert.Equal(t, domain.AssistantPersona, last.System)
}

// ---------------------------------------------------------------------------
// Legacy single-conversation surface
// ---------------------------------------------------------------------------

func TestLatestHistory_Empty(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo(), scriptedGen("x"), Options{})
	ctx, _ := userCtx()

	msgs, err := svc.LatestHistory(ctx)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestSendLatest_CreatesThenReuses(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo, scriptedGen("Title"), Options{})
	ctx, _ := userCtx()

	first, err := svc.SendLatest(ctx, "hello", nil)
	require.NoError(t, err)
	second, err := svc.SendLatest(ctx, "again", nil)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	list, err := svc.ListSessions(ctx, ListInput{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	history, err := svc.LatestHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "reply: again", history[3].Content)
}

func TestSendLatest_ReplayedMessageIDStoresOnce(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo(), scriptedGen("Title"), Options{})
	ctx, _ := userCtx()
	mid := uuid.New()

	first, err := svc.SendLatest(ctx, "hello", &mid)
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	retry, err := svc.SendLatest(ctx, "hello", &mid)
	require.NoError(t, err)
	assert.True(t, retry.Replayed)
	assert.Equal(t, first.Content, retry.Content)
	assert.Equal(t, first.SessionID, retry.SessionID)
	assert.Equal(t, mid, retry.MessageID)

	history, err := svc.LatestHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSendLatest_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo(), scriptedGen("x"), Options{})
	ctx, _ := userCtx()

	_, err := svc.SendLatest(ctx, "", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	nilID := uuid.Nil
	_, err = svc.SendLatest(ctx, "hello", &nilID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Title cleanup
// ---------------------------------------------------------------------------

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 20)

	tests := []struct {
		in   string
		want string
	}{
		{in: `"Prenatal Vitamins Guide"`, want: "Prenatal Vitamins Guide"},
		{in: "'Sleep Tips'", want: "Sleep Tips"},
		{in: "  Back Pain Relief  \nextra line", want: "Back Pain Relief"},
		{in: `""`, want: domain.DefaultChatTitle},
		{in: "", want: domain.DefaultChatTitle},
		{in: long, want: strings.TrimSpace(long[:domain.MaxChatTitleLength])},
	}
	for _, tt := range tests {
		got := cleanTitle(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.LessOrEqual(t, len([]rune(got)), domain.MaxChatTitleLength)
	}
}
