package chat

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lunaris-labs/converse/internal/domain"
	"github.com/lunaris-labs/converse/internal/repository/message"
	"github.com/lunaris-labs/converse/internal/services/ai"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

// stubProvider returns a canned reply or failure and records the context
// it was handed.
type stubProvider struct {
	reply    string
	err      error
	received []openai.ChatCompletionMessage
}

func (s *stubProvider) GetChatCompletion(_ context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	s.received = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newChatService(t *testing.T, provider ai.CompletionProvider) (*ChatService, message.MessageRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Message{}))

	repo := message.NewMessageRepository(db)
	return NewChatService(repo, provider, noopLogger{}), repo
}

func TestRequestAssistantTurn_Success(t *testing.T) {
	provider := &stubProvider{reply: "hello there"}
	svc, _ := newChatService(t, provider)
	ctx := context.Background()

	reply, err := svc.RequestAssistantTurn(ctx, 1, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello there", reply)

	history, err := svc.History(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "hi", history[0].Content)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)
	assert.Equal(t, "hello there", history[1].Content)
}

func TestRequestAssistantTurn_ContextContainsFullHistory(t *testing.T) {
	provider := &stubProvider{reply: "second reply"}
	svc, _ := newChatService(t, provider)
	ctx := context.Background()

	require.NoError(t, svc.AppendUserTurn(ctx, 1, "earlier question"))
	_, err := svc.RequestAssistantTurn(ctx, 1, "follow-up")
	require.NoError(t, err)

	// The provider sees the whole log including the just-appended turn.
	require.Len(t, provider.received, 2)
	assert.Equal(t, openai.ChatMessageRoleUser, provider.received[0].Role)
	assert.Equal(t, "earlier question", provider.received[0].Content)
	assert.Equal(t, "follow-up", provider.received[1].Content)
}

func TestRequestAssistantTurn_CompletionFailureKeepsUserTurnOnly(t *testing.T) {
	provider := &stubProvider{err: &ai.AIError{Type: ai.ErrTypeNetwork, Operation: "completion", Message: "unreachable"}}
	svc, _ := newChatService(t, provider)
	ctx := context.Background()

	_, err := svc.RequestAssistantTurn(ctx, 1, "hi")
	require.Error(t, err)

	var chatErr *ChatError
	require.True(t, errors.As(err, &chatErr))
	assert.Equal(t, ErrTypeCompletion, chatErr.Type)

	// The user's message is persisted; no synthetic assistant turn is.
	history, err := svc.History(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleUser, history[0].Role)
}

func TestAppendUserTurn_RejectsEmptyContent(t *testing.T) {
	svc, _ := newChatService(t, &stubProvider{})

	err := svc.AppendUserTurn(context.Background(), 1, "")
	var chatErr *ChatError
	require.True(t, errors.As(err, &chatErr))
	assert.Equal(t, ErrTypeValidation, chatErr.Type)
}

func TestClearHistoryAndCount(t *testing.T) {
	provider := &stubProvider{reply: "hello"}
	svc, _ := newChatService(t, provider)
	ctx := context.Background()

	_, err := svc.RequestAssistantTurn(ctx, 1, "hi")
	require.NoError(t, err)

	count, err := svc.Count(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, svc.ClearHistory(ctx, 1))

	count, err = svc.Count(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSummary(t *testing.T) {
	provider := &stubProvider{reply: "hello"}
	svc, _ := newChatService(t, provider)
	ctx := context.Background()

	summary, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.False(t, summary.HasHistory)
	assert.Zero(t, summary.TotalMessages)
	assert.Nil(t, summary.FirstMessage)

	_, err = svc.RequestAssistantTurn(ctx, 1, "hi")
	require.NoError(t, err)

	summary, err = svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.True(t, summary.HasHistory)
	assert.EqualValues(t, 2, summary.TotalMessages)
	require.NotNil(t, summary.FirstMessage)
	assert.Equal(t, "hi", summary.FirstMessage.Content)
}

func TestScenario_RegisterLoginChatClear(t *testing.T) {
	// End-to-end over the conversation surface: append, reply, order, clear.
	provider := &stubProvider{reply: "hello"}
	svc, _ := newChatService(t, provider)
	ctx := context.Background()

	require.NoError(t, svc.AppendUserTurn(ctx, 1, "hi"))
	provider.reply = "hello"
	_, err := svc.RequestAssistantTurn(ctx, 1, "how are you?")
	require.NoError(t, err)

	history, err := svc.History(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []string{"hi", "how are you?", "hello"},
		[]string{history[0].Content, history[1].Content, history[2].Content})

	require.NoError(t, svc.ClearHistory(ctx, 1))
	count, err := svc.Count(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}
