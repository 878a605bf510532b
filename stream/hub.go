package stream

import (
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/wavetrack/status"
)

// clientBuffer frames may queue per client before new ones are dropped
const clientBuffer = 16

// Hub fans encoded frames out to websocket subscribers
// The most recent frame is replayed to new subscribers
type Hub struct {
	upgrader websocket.Upgrader
	mutex    sync.RWMutex
	channels map[int]chan []byte
	nextID   int
	latest   []byte
	closed   bool

	metrics *status.Registry
	dropped *atomic.Int64
	clients *status.Gauge
}

// NewHub creates a hub recording its metrics in reg (a fresh registry when nil)
func NewHub(reg *status.Registry) *Hub {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Hub{
		upgrader: websocket.Upgrader{},
		channels: make(map[int]chan []byte),
		metrics:  reg,
		dropped:  reg.Counters.Get("frames_dropped"),
		clients:  reg.Gauges.Get("clients"),
	}
}

// Metrics returns the registry shared by the hub and its generator
func (h *Hub) Metrics() *status.Registry {
	return h.metrics
}

func (h *Hub) addChannel(ch chan []byte) (int, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.closed {
		return 0, false
	}
	id := h.nextID
	h.nextID++
	h.channels[id] = ch
	h.clients.Set(float64(len(h.channels)))
	if h.latest != nil {
		ch <- h.latest
	}
	return id, true
}

func (h *Hub) delChannel(id int) {
	h.mutex.Lock()
	if ch, ok := h.channels[id]; ok {
		close(ch)
		delete(h.channels, id)
		h.clients.Set(float64(len(h.channels)))
	}
	h.mutex.Unlock()
}

// Clients returns the number of connected subscribers
func (h *Hub) Clients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.channels)
}

// Broadcast queues msg for every subscriber; slow subscribers miss frames
func (h *Hub) Broadcast(msg []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.latest = msg
	for id, ch := range h.channels {
		select {
		case ch <- msg:
		default:
			h.dropped.Add(1)
			log.Printf("stream: client %d lagging, frame dropped", id)
		}
	}
}

// Close disconnects all subscribers and rejects new ones
func (h *Hub) Close() {
	h.mutex.Lock()
	for id, ch := range h.channels {
		close(ch)
		delete(h.channels, id)
	}
	h.closed = true
	h.clients.Set(0)
	h.mutex.Unlock()
}

// WebsocketHandler upgrades the request and streams frames until the client goes away
func (h *Hub) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer s.Close()

	ch := make(chan []byte, clientBuffer)
	id, ok := h.addChannel(ch)
	if !ok {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range ch {
			if err := s.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
		s.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
	}()

	// Clients never send; a read error means the peer left
	for {
		if _, _, err := s.ReadMessage(); err != nil {
			break
		}
	}
	h.delChannel(id)
	<-done
}
