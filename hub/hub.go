package hub

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub maintains the registry of live sessions and fans events out to all
// of them. Membership changes only on connect/disconnect; broadcasts are
// best-effort, at-most-once, with no replay for late joiners.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uint64]*Session
	logger   *zap.Logger
}

// New creates an empty Hub.
func New(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[uint64]*Session),
		logger:   logger,
	}
}

// Register adds a session to the registry.
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID] = s
	h.logger.Info("ws session registered", zap.Uint64("session_id", s.ID), zap.Int("total", len(h.sessions)))
}

// Unregister removes a session from the registry.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
	h.logger.Info("ws session unregistered", zap.Uint64("session_id", id), zap.Int("total", len(h.sessions)))
}

// Count returns the number of currently connected sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast sends pre-encoded bytes to every open session. Iteration runs
// over a snapshot so connects and disconnects during the fan-out cannot
// corrupt the registry. Closed sessions are skipped; a full send buffer
// drops the frame for that client rather than blocking the caller.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	snapshot := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		snapshot = append(snapshot, s)
	}
	h.mu.RUnlock()

	for _, s := range snapshot {
		if s.IsClosed() {
			continue
		}
		select {
		case s.SendChan <- data:
		default:
			h.logger.Warn("broadcast dropped frame for slow client", zap.Uint64("session_id", s.ID))
		}
	}
}

// BroadcastEvent marshals v and broadcasts the JSON text frame.
func (h *Hub) BroadcastEvent(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("failed to marshal broadcast event", zap.Error(err))
		return
	}
	h.Broadcast(data)
}
