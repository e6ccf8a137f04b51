package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type queuedReply struct {
	resp *genai.GenerateContentResponse
	err  error
}

type recordingChat struct {
	reply    queuedReply
	messages []string
}

func (c *recordingChat) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, part := range parts {
		c.messages = append(c.messages, part.Text)
	}
	return c.reply.resp, c.reply.err
}

type scriptedChats struct {
	mu      sync.Mutex
	replies []queuedReply
	configs []*genai.GenerateContentConfig
	opened  []*recordingChat
}

func (s *scriptedChats) push(resp *genai.GenerateContentResponse, err error) {
	s.replies = append(s.replies, queuedReply{resp: resp, err: err})
}

func (s *scriptedChats) Create(_ context.Context, _ string, config *genai.GenerateContentConfig, _ []*genai.Content) (chatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.replies) == 0 {
		return nil, errors.New("unexpected call")
	}
	chat := &recordingChat{reply: s.replies[0]}
	s.replies = s.replies[1:]
	s.configs = append(s.configs, config)
	s.opened = append(s.opened, chat)
	return chat, nil
}

func textReply(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	original := sleep
	sleep = func(d time.Duration) { waits = append(waits, d) }
	t.Cleanup(func() { sleep = original })
	return &waits
}

func TestGeneratorRetriesTemporaryErrors(t *testing.T) {
	waits := stubSleep(t)

	chats := &scriptedChats{}
	chats.push(nil, genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"})
	chats.push(textReply(`{"ok": true}`), nil)

	g := &Generator{chats: chats, model: "gemini-test", maxRetries: 3, logger: zap.NewNop()}

	out, err := g.GenerateContent(context.Background(), "explain", "payload")
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)
	assert.Equal(t, []time.Duration{baseRetryDelay}, *waits)

	require.Len(t, chats.configs, 2)
	for i, config := range chats.configs {
		require.NotNil(t, config.SystemInstruction)
		assert.Equal(t, "explain", config.SystemInstruction.Parts[0].Text)
		assert.Equal(t, "application/json", config.ResponseMIMEType)
		assert.Equal(t, []string{"payload"}, chats.opened[i].messages)
	}
}

func TestGeneratorGivesUpAfterMaxRetries(t *testing.T) {
	stubSleep(t)

	chats := &scriptedChats{}
	for i := 0; i < 2; i++ {
		chats.push(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	}

	g := &Generator{chats: chats, model: "gemini-test", maxRetries: 2, logger: zap.NewNop()}

	_, err := g.GenerateContent(context.Background(), "", "payload")
	require.Error(t, err)
	assert.Len(t, chats.opened, 2)
}

func TestGeneratorDoesNotRetryPermanentErrors(t *testing.T) {
	stubSleep(t)

	tests := []struct {
		name string
		err  error
	}{
		{name: "bad request", err: genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}},
		{name: "long quota delay", err: genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED", Message: "quota exhausted, retry after 60 seconds"}},
		{name: "not an api error", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chats := &scriptedChats{}
			chats.push(nil, tt.err)
			chats.push(textReply("unused"), nil)

			g := &Generator{chats: chats, model: "gemini-test", maxRetries: 3, logger: zap.NewNop()}

			_, err := g.GenerateContent(context.Background(), "sys", "payload")
			require.Error(t, err)
			assert.Len(t, chats.opened, 1)
		})
	}
}

func TestGeneratorRejectsEmptyInput(t *testing.T) {
	g := &Generator{chats: &scriptedChats{}, model: "gemini-test", maxRetries: 1, logger: zap.NewNop()}

	_, err := g.GenerateContent(context.Background(), "sys", "   ")
	assert.Error(t, err)

	var missing *Generator
	_, err = missing.GenerateContent(context.Background(), "sys", "payload")
	assert.Error(t, err)
}

func TestRetryDelay(t *testing.T) {
	delay, ok := retryDelay(genai.APIError{Code: http.StatusTooManyRequests, Message: "Please retry in 12s"}, 1)
	assert.True(t, ok)
	assert.Equal(t, 12*time.Second, delay)

	delay, ok = retryDelay(genai.APIError{Code: http.StatusTooManyRequests, Message: `"retryDelay": "45s"`}, 1)
	assert.False(t, ok)
	assert.Zero(t, delay)

	delay, ok = retryDelay(genai.APIError{Code: http.StatusBadGateway}, 3)
	assert.True(t, ok)
	assert.Equal(t, 4*baseRetryDelay, delay)
}
