package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusswap/internal/domain"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]domain.Identity

func (s stubVerifier) Verify(_ context.Context, token string) (domain.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return domain.Identity{}, domain.ErrTokenInvalid
}

type wsFixture struct {
	hub   *Hub
	srv   *httptest.Server
	alice domain.Identity
	bob   domain.Identity
}

func newFixture(t *testing.T) *wsFixture {
	t.Helper()
	f := &wsFixture{
		hub:   NewHub(HubConfig{SendBuffer: 16}),
		alice: domain.Identity{UserID: uuid.New(), Email: "alice@campus.edu"},
		bob:   domain.Identity{UserID: uuid.New(), Email: "bob@campus.edu"},
	}
	verifier := stubVerifier{"alice-token": f.alice, "bob-token": f.bob}
	f.srv = httptest.NewServer(NewHandler(f.hub, verifier, HandlerConfig{WriteTimeout: time.Second}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *wsFixture) dial(t *testing.T, query string, header http.Header) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + query
	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{HTTPHeader: header})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

// join dials and waits until the hub has admitted the connection.
func (f *wsFixture) join(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	before := f.hub.Count()
	conn := f.dial(t, "?token="+token, nil)
	require.Eventually(t, func() bool { return f.hub.Count() == before+1 }, 2*time.Second, 5*time.Millisecond)
	return conn
}

func readChat(t *testing.T, conn *websocket.Conn) ChatMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var env Envelope
	require.NoError(t, wsjson.Read(ctx, conn, &env))
	require.Equal(t, EventChatMessage, env.Event)
	var msg ChatMessage
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	return msg
}

func sendChat(t *testing.T, conn *websocket.Conn, data any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, conn, map[string]any{"event": EventChatMessage, "data": data}))
}

func closeStatus(t *testing.T, conn *websocket.Conn) (websocket.StatusCode, string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, err := conn.Read(ctx)
	require.Error(t, err)
	var ce websocket.CloseError
	require.ErrorAs(t, err, &ce)
	return ce.Code, ce.Reason
}

func TestHandshakeWithoutTokenIsRejected(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "", nil)

	code, reason := closeStatus(t, conn)
	require.Equal(t, StatusNoToken, code)
	require.Equal(t, "Unauthorized: No token provided.", reason)
	require.Equal(t, 0, f.hub.Count())
}

func TestHandshakeWithInvalidTokenIsRejected(t *testing.T) {
	f := newFixture(t)
	watcher := f.join(t, "bob-token")

	conn := f.dial(t, "?token=forged", nil)
	code, reason := closeStatus(t, conn)
	require.Equal(t, StatusInvalidToken, code)
	require.Equal(t, "Forbidden: Invalid token.", reason)
	require.Equal(t, 1, f.hub.Count())

	sendChat(t, watcher, "ping")
	require.Equal(t, "ping", readChat(t, watcher).Text)
}

func TestHandshakeAcceptsBearerHeader(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "", http.Header{"Authorization": {"Bearer alice-token"}})
	require.Eventually(t, func() bool { return f.hub.Count() == 1 }, 2*time.Second, 5*time.Millisecond)

	sendChat(t, conn, "via header")
	msg := readChat(t, conn)
	require.Equal(t, "alice@campus.edu", msg.User)
	require.Equal(t, "via header", msg.Text)
}

func TestHelloReachesEveryMemberOnce(t *testing.T) {
	f := newFixture(t)
	alice := f.join(t, "alice-token")
	bob := f.join(t, "bob-token")

	sent := time.Now().UTC()
	sendChat(t, alice, "hello")

	for _, conn := range []*websocket.Conn{alice, bob} {
		msg := readChat(t, conn)
		require.Equal(t, "alice@campus.edu", msg.User)
		require.Equal(t, "hello", msg.Text)
		ts, err := time.Parse(time.RFC3339Nano, msg.Timestamp)
		require.NoError(t, err)
		require.WithinDuration(t, sent, ts, 5*time.Second)
		require.True(t, strings.HasSuffix(msg.Timestamp, "Z"))
	}

	// A second message arriving next proves "hello" was delivered once.
	sendChat(t, bob, "second")
	require.Equal(t, "second", readChat(t, alice).Text)
	require.Equal(t, "second", readChat(t, bob).Text)
}

func TestMalformedPayloadsAreDropped(t *testing.T) {
	f := newFixture(t)
	alice := f.join(t, "alice-token")
	bob := f.join(t, "bob-token")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, alice.Write(ctx, websocket.MessageBinary, []byte(`{"event":"chat message","data":"bin"}`)))
	require.NoError(t, alice.Write(ctx, websocket.MessageText, []byte(`{not json`)))
	require.NoError(t, wsjson.Write(ctx, alice, map[string]any{"event": "typing", "data": "x"}))
	sendChat(t, alice, 42)
	sendChat(t, alice, "   ")
	sendChat(t, alice, "ok")

	require.Equal(t, "ok", readChat(t, bob).Text)
	require.Equal(t, "ok", readChat(t, alice).Text)
	require.Equal(t, 2, f.hub.Count())
}

func TestDisconnectedMemberLeavesHub(t *testing.T) {
	f := newFixture(t)
	alice := f.join(t, "alice-token")
	bob := f.join(t, "bob-token")

	require.NoError(t, bob.Close(websocket.StatusNormalClosure, "bye"))
	require.Eventually(t, func() bool { return f.hub.Count() == 1 }, 2*time.Second, 5*time.Millisecond)

	sendChat(t, alice, "anyone?")
	require.Equal(t, "anyone?", readChat(t, alice).Text)
}

func TestShutdownClosesWithGoingAway(t *testing.T) {
	f := newFixture(t)
	alice := f.join(t, "alice-token")

	f.hub.Shutdown()

	code, _ := closeStatus(t, alice)
	require.Equal(t, websocket.StatusGoingAway, code)

	late := f.dial(t, "?token=bob-token", nil)
	code, _ = closeStatus(t, late)
	require.Equal(t, websocket.StatusGoingAway, code)
}
