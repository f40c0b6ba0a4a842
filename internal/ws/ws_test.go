package ws

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Showcase/entity"
	"Showcase/internal/lib/api/cont"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoHandler struct {
	hub *Hub
}

func (e *echoHandler) Ask(_ context.Context, sessionID, requested, text string) (*entity.Exchange, error) {
	ex := &entity.Exchange{
		User:      entity.ChatTurn{Product: requested, Speaker: entity.SpeakerUser, Text: text},
		Assistant: entity.ChatTurn{Product: requested, Speaker: entity.SpeakerAssistant, Text: "answer to " + text},
	}
	e.hub.PublishTurns(sessionID, ex.Turns()...)
	return ex, nil
}

func (e *echoHandler) SetLanguage(_ context.Context, sessionID string, lang entity.Language) (entity.Language, error) {
	e.hub.PublishLanguage(sessionID, lang)
	return lang, nil
}

func startServer(t *testing.T) (*Hub, string) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(log)
	hub.SetHandler(&echoHandler{hub: hub})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := cont.PutSessionID(r.Context(), r.URL.Query().Get("session"))
		ServeWs(hub, log, w, r.WithContext(ctx))
	}))
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event map[string]any
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestAskBroadcastsTurnsInOrder(t *testing.T) {
	hub, url := startServer(t)
	conn := dial(t, url+"?session=s1&product=LED42")
	require.Eventually(t, func() bool { return hub.Clients("s1") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ask", "data": map[string]string{"text": "price?"}}))

	first := readEvent(t, conn)
	assert.Equal(t, EventTurn, first["type"])
	data := first["data"].(map[string]any)
	assert.Equal(t, "user", data["speaker"])
	assert.Equal(t, "LED42", data["product"])

	second := readEvent(t, conn)
	data = second["data"].(map[string]any)
	assert.Equal(t, "assistant", data["speaker"])
	assert.Equal(t, "answer to price?", data["text"])
}

func TestEventsStayWithinSession(t *testing.T) {
	hub, url := startServer(t)
	mine := dial(t, url+"?session=s1")
	other := dial(t, url+"?session=s2")
	require.Eventually(t, func() bool {
		return hub.Clients("s1") == 1 && hub.Clients("s2") == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, mine.WriteJSON(map[string]any{"type": "language", "data": map[string]string{"lang": "gu"}}))

	event := readEvent(t, mine)
	assert.Equal(t, EventLanguage, event["type"])
	assert.Equal(t, "gu-IN", event["data"].(map[string]any)["speech_tag"])

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err)
}
