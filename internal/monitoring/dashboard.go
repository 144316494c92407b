package monitoring

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"flower-backend/internal/cache"
	"flower-backend/internal/repositories"
	"flower-backend/internal/timeutil"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DashboardHub pushes today's market snapshot to connected websocket
// clients. A background ticker refreshes the snapshot; Redis absorbs the
// query load when several clients connect.
type DashboardHub struct {
	repo       *repositories.DashboardRepository
	cache      *cache.Cache
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	interval   time.Duration
	done       chan struct{}
}

func NewDashboardHub(repo *repositories.DashboardRepository, c *cache.Cache) *DashboardHub {
	return &DashboardHub{
		repo:     repo,
		cache:    c,
		clients:  make(map[*websocket.Conn]bool),
		interval: 10 * time.Second,
		done:     make(chan struct{}),
	}
}

// Run broadcasts snapshots until Stop is called.
func (h *DashboardHub) Run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.broadcast()
		}
	}
}

func (h *DashboardHub) Stop() {
	close(h.done)
}

// HandleWebSocket upgrades the connection and sends the current snapshot
// immediately so clients do not wait for the next tick.
func (h *DashboardHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Dashboard] WebSocket upgrade failed: %v", err)
		return
	}

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	if payload, err := h.snapshotJSON(r.Context()); err == nil {
		conn.WriteMessage(websocket.TextMessage, payload)
	}

	go func() {
		defer func() {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *DashboardHub) broadcast() {
	h.clientsMux.Lock()
	n := len(h.clients)
	h.clientsMux.Unlock()
	if n == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, err := h.snapshotJSON(ctx)
	if err != nil {
		log.Printf("[Dashboard] Snapshot failed: %v", err)
		return
	}

	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *DashboardHub) snapshotJSON(ctx context.Context) ([]byte, error) {
	if cached, ok := h.cache.GetDashboard(ctx); ok {
		return []byte(cached), nil
	}

	snap, err := h.repo.Snapshot(ctx, timeutil.StartOfDay(timeutil.Now()))
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	h.cache.SetDashboard(ctx, string(payload))
	return payload, nil
}
