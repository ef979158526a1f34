package httpapi

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/club-dashboard/internal/platform/logging"
	"github.com/riskibarqy/club-dashboard/internal/usecase"
)

const (
	liveWriteTimeout    = 5 * time.Second
	liveReadLimit       = 512
	liveSendBuffer      = 16
	defaultLiveWorkers  = 8
	liveCloseGracePause = time.Second
)

type matchSnapshotLoader interface {
	Get(ctx context.Context, matchID int64) (usecase.MatchDetail, error)
}

// liveClient owns a bounded outbox. At most one drain task runs per client,
// so frames reach the socket in the order they were queued.
type liveClient struct {
	conn    *websocket.Conn
	matchID int64
	send    chan []byte

	mu       sync.Mutex // serializes socket writes
	draining atomic.Bool
}

func (c *liveClient) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// enqueue reports false when the outbox is full.
func (c *liveClient) enqueue(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// LiveHub keeps websocket subscribers per match and pushes scoreboard
// updates to them. Frames carry a per-match sequence number; a subscriber
// whose outbox overflows is dropped rather than skipped.
type LiveHub struct {
	matches  matchSnapshotLoader
	logger   *logging.Logger
	upgrader websocket.Upgrader
	pool     *ants.Pool

	mu      sync.RWMutex
	clients map[int64]map[*liveClient]struct{}
	seq     map[int64]int64
}

func NewLiveHub(matches matchSnapshotLoader, allowedOrigins []string, workers int, logger *logging.Logger) (*LiveHub, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultLiveWorkers
	}

	// Blocking pool: a busy pool delays a drain task, it never discards it.
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	origins := append([]string(nil), allowedOrigins...)
	return &LiveHub{
		matches: matches,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(origins, r.Header.Get("Origin"))
			},
		},
		pool:    pool,
		clients: make(map[int64]map[*liveClient]struct{}),
		seq:     make(map[int64]int64),
	}, nil
}

// Serve upgrades the request and streams scoreboard frames for one match,
// starting with a snapshot of its current state.
func (h *LiveHub) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.LiveHub.Serve")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if _, err := h.matches.Get(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "live feed rejected", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.WarnContext(ctx, "live feed upgrade failed", "match_id", matchID, "error", err)
		return
	}

	// The client starts in the draining state: pushes published after
	// registration wait in the outbox until the snapshot is on the wire.
	client := &liveClient{conn: conn, matchID: matchID, send: make(chan []byte, liveSendBuffer)}
	client.draining.Store(true)
	seq := h.register(client)

	if err := h.sendSnapshot(ctx, client, seq); err != nil {
		h.logger.WarnContext(ctx, "live feed snapshot failed", "match_id", matchID, "error", err)
		h.drop(client)
		return
	}
	client.draining.Store(false)
	if len(client.send) > 0 {
		h.schedule(client)
	}

	h.logger.InfoContext(ctx, "live feed subscribed", "match_id", matchID, "subscribers", h.Subscribers(matchID))
	go h.readLoop(client)
}

func (h *LiveHub) sendSnapshot(ctx context.Context, c *liveClient, seq int64) error {
	detail, err := h.matches.Get(ctx, c.matchID)
	if err != nil {
		return err
	}
	msg := liveSnapshotFromDetail(detail)
	msg.Seq = seq
	payload, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	return c.write(payload)
}

// readLoop drains client frames so control messages are processed; any read
// error ends the subscription.
func (h *LiveHub) readLoop(c *liveClient) {
	c.conn.SetReadLimit(liveReadLimit)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(c)
}

// PublishScoreboard stamps the update with the match's next sequence number
// and queues it for every subscriber. Socket writes happen on the worker pool.
func (h *LiveHub) PublishScoreboard(ctx context.Context, update usecase.ScoreboardUpdate) {
	ctx, span := startSpan(ctx, "httpapi.LiveHub.PublishScoreboard")
	defer span.End()

	matchID := update.Match.ID
	msg := liveMessageFromUpdate(update)

	var ready, overflow []*liveClient
	h.mu.Lock()
	set := h.clients[matchID]
	if len(set) == 0 {
		h.mu.Unlock()
		return
	}
	h.seq[matchID]++
	msg.Seq = h.seq[matchID]
	payload, err := sonic.Marshal(msg)
	if err != nil {
		h.mu.Unlock()
		h.logger.ErrorContext(ctx, "encode live scoreboard failed", "match_id", matchID, "error", err)
		return
	}
	// Queueing under the hub lock gives every subscriber the same frame order.
	for c := range set {
		if c.enqueue(payload) {
			ready = append(ready, c)
		} else {
			overflow = append(overflow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range overflow {
		h.logger.WarnContext(ctx, "live outbox full, dropping subscriber", "match_id", matchID, "seq", msg.Seq)
		h.drop(c)
	}
	for _, c := range ready {
		h.schedule(c)
	}
}

// schedule submits a drain task unless one is already running for c.
func (h *LiveHub) schedule(c *liveClient) {
	if !c.draining.CompareAndSwap(false, true) {
		return
	}
	if err := h.pool.Submit(func() { h.drain(c) }); err != nil {
		h.logger.Warn("live drain submit failed, dropping subscriber", "match_id", c.matchID, "error", err)
		h.drop(c)
	}
}

func (h *LiveHub) drain(c *liveClient) {
	for {
		select {
		case payload := <-c.send:
			if err := c.write(payload); err != nil {
				h.logger.Warn("live push failed, dropping subscriber", "match_id", c.matchID, "error", err)
				h.drop(c)
				return
			}
		default:
			c.draining.Store(false)
			// A frame queued between the empty read and the store above would
			// otherwise wait for the next publish.
			if len(c.send) == 0 || !c.draining.CompareAndSwap(false, true) {
				return
			}
		}
	}
}

// Subscribers reports how many clients follow a match.
func (h *LiveHub) Subscribers(matchID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[matchID])
}

// Close disconnects every subscriber and stops the worker pool.
func (h *LiveHub) Close() {
	h.mu.Lock()
	all := h.clients
	h.clients = make(map[int64]map[*liveClient]struct{})
	h.seq = make(map[int64]int64)
	h.mu.Unlock()

	deadline := time.Now().Add(liveCloseGracePause)
	for _, set := range all {
		for c := range set {
			c.mu.Lock()
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
			c.mu.Unlock()
			_ = c.conn.Close()
		}
	}
	h.pool.Release()
}

// register adds c and returns the match's current sequence number, which the
// snapshot carries. Every later push for the match has a higher one.
func (h *LiveHub) register(c *liveClient) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.matchID]
	if !ok {
		set = make(map[*liveClient]struct{})
		h.clients[c.matchID] = set
	}
	set[c] = struct{}{}
	return h.seq[c.matchID]
}

func (h *LiveHub) drop(c *liveClient) {
	h.mu.Lock()
	if set, ok := h.clients[c.matchID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.matchID)
		}
	}
	h.mu.Unlock()

	_ = c.conn.Close()
}
