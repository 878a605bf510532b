package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/lixenwraith/wavetrack/wfc"
)

const shutdownTimeout = 2 * time.Second

// Options configures a Server
type Options struct {
	Addr   string        // listen address, ":0" picks a free port
	Update time.Duration // interval between steps
	Hold   time.Duration // pause on a finished grid
}

type envJSON struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mode   string `json:"mode"`
}

// Server serves the viewer page, the env endpoint and the frame websocket
// Implements service.Service
type Server struct {
	mu     sync.Mutex
	opts   Options
	driver *wfc.Driver
	hub    *Hub
	gen    *Generator

	ln     net.Listener
	srv    *http.Server
	cancel context.CancelFunc
	done   chan struct{}
}

func NewServer(d *wfc.Driver, opts Options) *Server {
	if opts.Update <= 0 {
		opts.Update = 50 * time.Millisecond
	}
	hub := NewHub(nil)
	return &Server{
		opts:   opts,
		driver: d,
		hub:    hub,
		gen:    NewGenerator(d, hub, opts.Update, opts.Hold),
	}
}

func (s *Server) Hub() *Hub             { return s.hub }
func (s *Server) Generator() *Generator { return s.gen }

// Addr returns the bound address once started, the configured one before
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.opts.Addr
}

// Handler routes "/", "/env", "/metrics" and "/ws"
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.IndexHandler)
	mux.HandleFunc("/env", s.EnvHandler)
	mux.HandleFunc("/metrics", s.MetricsHandler)
	mux.HandleFunc("/ws", s.hub.WebsocketHandler)
	return mux
}

func (s *Server) EnvHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(envJSON{
		Width:  s.driver.Width(),
		Height: s.driver.Height(),
		Mode:   s.driver.Mode().String(),
	})
}

func (s *Server) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.hub.Metrics().Snapshot())
}

func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// Name implements service.Service
func (s *Server) Name() string {
	return "stream"
}

// Dependencies implements service.Service
func (s *Server) Dependencies() []string {
	return nil
}

// Init implements service.Service
// Optional args[0]: listen address overriding Options.Addr
func (s *Server) Init(args ...any) error {
	if len(args) > 0 {
		if addr, ok := args[0].(string); ok && addr != "" {
			s.opts.Addr = addr
		}
	}
	return nil
}

// Start implements service.Service: binds the listener and launches server and generator goroutines
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.srv = &http.Server{Handler: s.Handler()}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("stream: serve: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.gen.Run(ctx)
	}()

	log.Printf("stream: serving on %s", ln.Addr())
	return nil
}

// Stop implements service.Service
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}

	s.cancel()
	<-s.done
	s.hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)

	s.ln = nil
	s.srv = nil
	return err
}
