package main

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-chat/chat"
)

func dialChat(t *testing.T) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(newTestServer(t, nil, nil).router())
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/chat", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f wsFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

// readAnswer collects frames up to and including the done frame.
func readAnswer(t *testing.T, conn *websocket.Conn) (string, *chat.Reply) {
	t.Helper()
	require.Equal(t, frameThinking, readFrame(t, conn).Type)

	var b strings.Builder
	for {
		f := readFrame(t, conn)
		switch f.Type {
		case frameDelta:
			b.WriteString(f.Text)
		case frameDone:
			return b.String(), f.Reply
		default:
			t.Fatalf("unexpected frame %q", f.Type)
		}
	}
}

func TestChatSocket_GreetingAndSuggestions(t *testing.T) {
	conn := dialChat(t)

	f := readFrame(t, conn)
	assert.Equal(t, frameGreeting, f.Type)
	assert.Equal(t, "Hi, I'm Kan!", f.Text)
	assert.NotEmpty(t, f.Session)

	f = readFrame(t, conn)
	assert.Equal(t, frameSuggestions, f.Type)
	assert.Equal(t, []string{"Who are you?", "Where are you from?", "What do you do?"}, f.Questions)
}

func TestChatSocket_Ask(t *testing.T) {
	conn := dialChat(t)
	readFrame(t, conn)
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(wsFrame{Type: frameAsk, Text: "How old are you?"}))

	typed, reply := readAnswer(t, conn)
	require.NotNil(t, reply)
	assert.Equal(t, chat.TopicAge, reply.Topic)
	assert.True(t, reply.Matched)
	assert.Equal(t, reply.Answer, typed)
	assert.True(t, strings.HasPrefix(typed, "I'm 22 years old"))

	f := readFrame(t, conn)
	assert.Equal(t, frameSuggestions, f.Type)
	assert.Equal(t, []string{"Who are you?", "Where are you from?", "What do you do?"}, f.Questions)
}

func TestChatSocket_QuestionRotatesSuggestions(t *testing.T) {
	conn := dialChat(t)
	readFrame(t, conn)
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(wsFrame{Type: frameQuestion, Text: "Who are you?"}))

	_, reply := readAnswer(t, conn)
	require.NotNil(t, reply)
	assert.Equal(t, chat.TopicIntroduction, reply.Topic)
	assert.Equal(t, chat.SourceSuggestion, reply.Source)

	f := readFrame(t, conn)
	assert.Equal(t, []string{"Where are you from?", "What do you do?", "How old are you?"}, f.Questions)
}

func TestChatSocket_Errors(t *testing.T) {
	conn := dialChat(t)
	readFrame(t, conn)
	readFrame(t, conn)

	for _, in := range []wsFrame{
		{Type: frameAsk, Text: "  "},
		{Type: frameQuestion, Text: "Do you like cats?"},
		{Type: "dance"},
	} {
		require.NoError(t, conn.WriteJSON(in))
		f := readFrame(t, conn)
		assert.Equal(t, frameError, f.Type, in.Type)
		assert.NotEmpty(t, f.Error)
	}

	// the session survives bad frames
	require.NoError(t, conn.WriteJSON(wsFrame{Type: frameAsk, Text: "asdkjasd qweqwe"}))
	typed, reply := readAnswer(t, conn)
	require.NotNil(t, reply)
	assert.False(t, reply.Matched)
	assert.Equal(t, chat.Fallback, typed)
}
