package realtime

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"campusswap/internal/domain"
	"campusswap/internal/observability/metrics"

	"github.com/google/uuid"
)

var (
	ErrHubClosed = errors.New("realtime: hub is shut down")
	ErrNotMember = errors.New("realtime: session is not a member")
)

const DefaultSendBuffer = 32

type HubConfig struct {
	SendBuffer int              // per-session outbound queue; <= 0 means DefaultSendBuffer
	Now        func() time.Time // nil means time.Now
}

// Session is one admitted connection. Its outbound queue is closed when the
// session leaves the hub.
type Session struct {
	ID          uuid.UUID
	Identity    domain.Identity
	ConnectedAt time.Time

	send      chan []byte
	goingAway bool // set under Hub.mu before send is closed by Shutdown
}

// Outbound yields serialized frames for this session until it is unregistered.
func (s *Session) Outbound() <-chan []byte { return s.send }

// GoingAway reports whether the session was ended by hub shutdown. Only
// meaningful after Outbound has been closed.
func (s *Session) GoingAway() bool { return s.goingAway }

// Hub is the membership set of live sessions. A single mutex guards
// membership, and Broadcast holds it for the whole fan-out, so every member
// sees messages in the same order.
type Hub struct {
	mu      sync.Mutex
	members map[uuid.UUID]*Session
	closed  bool

	buffer int
	now    func() time.Time
}

func NewHub(cfg HubConfig) *Hub {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultSendBuffer
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Hub{
		members: make(map[uuid.UUID]*Session),
		buffer:  cfg.SendBuffer,
		now:     cfg.Now,
	}
}

// Register admits an authenticated identity.
func (h *Hub) Register(id domain.Identity) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHubClosed
	}
	s := &Session{
		ID:          uuid.New(),
		Identity:    id,
		ConnectedAt: h.now().UTC(),
		send:        make(chan []byte, h.buffer),
	}
	h.members[s.ID] = s
	metrics.HubConnections.Inc()
	slog.Info("realtime session joined", "session_id", s.ID, "user_id", id.UserID, "members", len(h.members))
	return s, nil
}

// Unregister removes s and closes its queue. Calling it again is a no-op.
func (h *Hub) Unregister(s *Session) {
	if s == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.members[s.ID]; !ok {
		return
	}
	h.remove(s)
	slog.Info("realtime session left", "session_id", s.ID, "user_id", s.Identity.UserID, "members", len(h.members))
}

// caller holds h.mu
func (h *Hub) remove(s *Session) {
	delete(h.members, s.ID)
	close(s.send)
	metrics.HubConnections.Dec()
}

// Broadcast stamps text with the sender's email and the hub clock and queues
// it for every current member, sender included. A member whose queue is full
// misses this message. It returns the number of members it was queued for.
func (h *Hub) Broadcast(from *Session, text string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if from == nil {
		return 0, ErrNotMember
	}
	if _, ok := h.members[from.ID]; !ok {
		return 0, ErrNotMember
	}

	frame, err := encodeChat(from.Identity.Email, text, h.now())
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, m := range h.members {
		select {
		case m.send <- frame:
			delivered++
		default:
			metrics.HubDeliveriesDroppedTotal.Inc()
			slog.Warn("realtime queue full, message dropped", "session_id", m.ID, "user_id", m.Identity.UserID)
		}
	}
	return delivered, nil
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.members)
}

// Shutdown ends every session and refuses further registrations.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	n := len(h.members)
	for _, s := range h.members {
		s.goingAway = true
		h.remove(s)
	}
	slog.Info("realtime hub shut down", "sessions_closed", n)
}
