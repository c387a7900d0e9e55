package realtime

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"campusswap/internal/authz"
	"campusswap/internal/domain"
	"campusswap/internal/httpx"
	"campusswap/internal/observability/metrics"
	obsmw "campusswap/internal/observability/middleware"

	"github.com/coder/websocket"
)

// Close codes for rejected handshakes.
const (
	StatusNoToken      websocket.StatusCode = 4401
	StatusInvalidToken websocket.StatusCode = 4403
)

const (
	DefaultWriteTimeout = 10 * time.Second
	ReadLimit           = 64 << 10
)

type HandlerConfig struct {
	OriginPatterns []string
	WriteTimeout   time.Duration
}

// Handler upgrades GET /ws, authenticates the connection once and then
// relays chat messages between the socket and the hub.
type Handler struct {
	hub      *Hub
	verifier authz.TokenVerifier
	cfg      HandlerConfig
}

func NewHandler(hub *Hub, verifier authz.TokenVerifier, cfg HandlerConfig) *Handler {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	return &Handler{hub: hub, verifier: verifier, cfg: cfg}
}

// handshakeToken prefers the token query parameter over the Authorization header.
// Query strings reach proxy and access logs; clients that can set headers should send Authorization.
func handshakeToken(r *http.Request) string {
	if tok := r.URL.Query().Get("token"); tok != "" {
		return tok
	}
	tok, _ := httpx.BearerToken(r.Header.Get("Authorization"))
	return tok
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := obsmw.RequestIDFromContext(r.Context())
	tok := handshakeToken(r)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.cfg.OriginPatterns})
	if err != nil {
		slog.Warn("ws accept failed", "error", err, "request_id", reqID)
		return
	}
	conn.SetReadLimit(ReadLimit)

	id, err := authz.Authenticate(r.Context(), h.verifier, tok)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			h.reject(conn, "missing", StatusNoToken, authz.MsgNoToken)
			return
		}
		slog.Warn("ws handshake invalid token", "error", err, "request_id", reqID)
		h.reject(conn, "invalid", StatusInvalidToken, authz.MsgInvalidToken)
		return
	}

	sess, err := h.hub.Register(id)
	if err != nil {
		metrics.HubHandshakesTotal.WithLabelValues("closed").Inc()
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	metrics.AuthenticationAttemptsTotal.WithLabelValues("ws", "success").Inc()
	metrics.HubHandshakesTotal.WithLabelValues("success").Inc()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(ctx, cancel, conn, sess)
	}()

	h.readLoop(ctx, conn, sess)

	h.hub.Unregister(sess)
	<-writerDone
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

func (h *Handler) reject(conn *websocket.Conn, result string, code websocket.StatusCode, reason string) {
	metrics.AuthenticationAttemptsTotal.WithLabelValues("ws", result).Inc()
	metrics.HubHandshakesTotal.WithLabelValues(result).Inc()
	_ = conn.Close(code, reason)
}

// readLoop submits chat messages until the connection fails. Frames that do
// not carry a chat message are dropped without closing the connection.
func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, sess *Session) {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 {
				slog.Debug("ws read ended", "session_id", sess.ID, "error", err)
			}
			return
		}
		if typ != websocket.MessageText {
			metrics.HubMessagesTotal.WithLabelValues("dropped").Inc()
			continue
		}
		text, ok := parseInbound(data)
		if !ok {
			metrics.HubMessagesTotal.WithLabelValues("dropped").Inc()
			continue
		}
		if _, err := h.hub.Broadcast(sess, text); err != nil {
			metrics.HubMessagesTotal.WithLabelValues("rejected").Inc()
			return
		}
		metrics.HubMessagesTotal.WithLabelValues("broadcast").Inc()
	}
}

// writeLoop drains the session queue onto the socket. When the hub shuts
// down the connection is closed with going-away.
func (h *Handler) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, sess *Session) {
	for frame := range sess.Outbound() {
		writeCtx, cancelWrite := context.WithTimeout(ctx, h.cfg.WriteTimeout)
		err := conn.Write(writeCtx, websocket.MessageText, frame)
		cancelWrite()
		if err != nil {
			slog.Debug("ws write failed", "session_id", sess.ID, "error", err)
			cancel()
			h.hub.Unregister(sess)
			return
		}
	}
	if sess.GoingAway() {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}

// OriginPatterns turns CORS origins such as "https://app.example.edu" into the
// host patterns websocket.Accept matches against.
func OriginPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if i := strings.Index(o, "://"); i >= 0 {
			o = o[i+3:]
		}
		o = strings.TrimSuffix(o, "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
