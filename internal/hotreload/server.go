package hotreload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/oxidekit/core/internal/logging"
)

var (
	ErrAlreadyRunning = errors.New("hotreload: server already running")
	ErrNotRunning     = errors.New("hotreload: server not running")
)

// Config controls the dev server's listen address and behavior.
type Config struct {
	Host            string
	Port            int
	MaxClients      int
	PingInterval    time.Duration
	HandshakeTimeout time.Duration
}

// DefaultConfig matches the original dev server's defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            7331,
		MaxClients:      10,
		PingInterval:    30 * time.Second,
		HandshakeTimeout: 10 * time.Second,
	}
}

// ClientInfo describes a connected client.
type ClientInfo struct {
	ID           string
	RemoteAddr   string
	ConnectedAt  time.Time
	Capabilities []string
	LastPing     *time.Time
}

// Server is the hot-reload WebSocket dev server: one accept loop
// (delegated to http.Server/gorilla's Upgrader) plus one goroutine per
// connection, a shared broadcaster fanning reload events out to every
// client, and a periodic ping ticker. The accept loop and the ping
// ticker run in an errgroup, so a fatal listener error also stops the
// ticker; per-connection goroutines are started by http.Server outside
// that group.
type Server struct {
	config      Config
	serverID    string
	broadcaster *Broadcaster
	overlay     *ErrorOverlay
	upgrader    websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*ClientInfo
	running bool

	httpServer *http.Server
	group      *errgroup.Group
	groupStop  context.CancelFunc
}

// New returns a server with the given config.
func New(config Config) *Server {
	return &Server{
		config:      config,
		serverID:    uuid.NewString(),
		broadcaster: NewBroadcaster(),
		overlay:     NewErrorOverlay(DefaultOverlayConfig()),
		clients:     make(map[string]*ClientInfo),
		upgrader: websocket.Upgrader{
			HandshakeTimeout: config.HandshakeTimeout,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
	}
}

// NewWithDefaults returns a server with DefaultConfig.
func NewWithDefaults() *Server {
	return New(DefaultConfig())
}

// Address returns the ws:// address the server listens on.
func (s *Server) Address() string {
	return fmt.Sprintf("ws://%s:%d", s.config.Host, s.config.Port)
}

// IsRunning reports whether Start has succeeded and Stop hasn't run yet.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// ClientCount returns the number of currently connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Clients returns a snapshot of connected client info.
func (s *Server) Clients() []ClientInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ClientInfo, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, *c)
	}
	return out
}

// Start binds the listen address and begins accepting connections. It
// returns once the listener is up; the accept loop, broadcaster, and
// ping ticker keep running in the background until Stop.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleUpgrade)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{Addr: addr, Handler: mux}

	groupCtx, cancel := context.WithCancel(ctx)
	s.groupStop = cancel
	group, groupCtx := errgroup.WithContext(groupCtx)
	s.group = group

	errCh := make(chan error, 1)
	group.Go(func() error {
		logging.Get(logging.CategoryHotReload).Infof("hot reload server listening on %s", s.Address())
		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
			return err
		}
		return nil
	})
	group.Go(func() error {
		return s.pingLoop(groupCtx)
	})

	select {
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// pingLoop periodically broadcasts a keepalive ping until ctx is done.
func (s *Server) pingLoop(ctx context.Context) error {
	if s.config.PingInterval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			s.broadcaster.Broadcast(PingMessage(t.UnixMilli()))
			s.overlay.Update()
		}
	}
}

// Stop broadcasts a goodbye, stops accepting new connections, and waits
// for the background goroutines to exit.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.running = false
	s.mu.Unlock()

	s.broadcaster.Broadcast(GoodbyeMessage("server shutting down"))

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	shutdownErr := s.httpServer.Shutdown(shutdownCtx)

	if s.groupStop != nil {
		s.groupStop()
	}
	groupErr := s.group.Wait()

	if shutdownErr != nil {
		return shutdownErr
	}
	if groupErr != nil && !errors.Is(groupErr, context.Canceled) {
		return groupErr
	}
	return nil
}

// Broadcast sends msg to every connected client and returns the number
// it was delivered to.
func (s *Server) Broadcast(msg ServerMessage) int {
	return s.broadcaster.Broadcast(msg)
}

// NotifyHotReload broadcasts a successful incremental recompile.
func (s *Server) NotifyHotReload(changedFiles, changedComponents []string, compileTimeMs int64) int {
	return s.Broadcast(HotReloadMessage(changedFiles, changedComponents, compileTimeMs))
}

// NotifyCompileError broadcasts a compile failure and raises the error
// overlay.
func (s *Server) NotifyCompileError(file string, errs []CompileErrorInfo) int {
	diagnostics := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		diagnostics = append(diagnostics, Diagnostic{
			File: file, Line: e.Line, Column: e.Column,
			Message: e.Message, Severity: e.Severity, Code: e.Code,
			Timestamp: time.Now(),
		})
	}
	s.overlay.Show(diagnostics)
	return s.Broadcast(CompileErrorMessage(file, errs))
}

// NotifyCompileSuccess broadcasts a cleared error state and dismisses
// the overlay.
func (s *Server) NotifyCompileSuccess() int {
	s.overlay.Dismiss()
	return s.Broadcast(CompileSuccessMessage())
}

// NotifyFullReload broadcasts that incremental reload isn't possible.
func (s *Server) NotifyFullReload(reason string) int {
	return s.Broadcast(FullReloadMessage(reason))
}

// Overlay exposes the server's error overlay state, for the TUI
// dashboard or a state_snapshot payload.
func (s *Server) Overlay() *ErrorOverlay { return s.overlay }

// handleUpgrade accepts a new WebSocket connection, subject to the
// configured client cap, then runs its read/write pump until it
// disconnects.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	full := len(s.clients) >= s.config.MaxClients
	s.mu.RUnlock()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Get(logging.CategoryHotReload).Errorf("upgrade failed: %v", err)
		return
	}

	if full {
		logging.Get(logging.CategoryHotReload).Warnf("closing connection from %s: max clients reached", r.RemoteAddr)
		conn.Close()
		return
	}

	s.serveClient(conn, r.RemoteAddr)
}

func (s *Server) serveClient(conn *websocket.Conn, remoteAddr string) {
	defer conn.Close()

	clientID := uuid.NewString()
	info := &ClientInfo{ID: clientID, RemoteAddr: remoteAddr, ConnectedAt: time.Now()}
	s.mu.Lock()
	s.clients[clientID] = info
	s.mu.Unlock()
	logging.Get(logging.CategoryHotReload).Infof("client %s connected from %s", clientID, remoteAddr)

	defer func() {
		s.mu.Lock()
		delete(s.clients, clientID)
		s.mu.Unlock()
		s.broadcaster.Unsubscribe(clientID)
		logging.Get(logging.CategoryHotReload).Infof("client %s disconnected", clientID)
	}()

	welcome, _ := WelcomeMessage(s.serverID).Encode()
	if err := conn.WriteMessage(websocket.TextMessage, welcome); err != nil {
		return
	}

	outbound := s.broadcaster.Subscribe(clientID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			msg, err := DecodeClientMessage(raw)
			if err != nil {
				continue
			}
			s.handleClientMessage(clientID, msg)
		}
	}()

	for {
		select {
		case <-done:
			return
		case msg, ok := <-outbound:
			if !ok {
				return
			}
			encoded, err := msg.Encode()
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, encoded); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleClientMessage(clientID string, msg ClientMessage) {
	log := logging.Get(logging.CategoryHotReload)
	switch msg.Type {
	case "ready":
		s.mu.Lock()
		if c, ok := s.clients[clientID]; ok {
			c.Capabilities = msg.Capabilities
		}
		s.mu.Unlock()
		log.Debugf("client %s ready with capabilities %v", clientID, msg.Capabilities)
	case "pong":
		s.mu.Lock()
		if c, ok := s.clients[clientID]; ok {
			now := time.Now()
			c.LastPing = &now
		}
		s.mu.Unlock()
	case "hot_reload_ack":
		if msg.Success {
			log.Debugf("client %s acknowledged hot reload", clientID)
		} else {
			log.Warnf("client %s failed hot reload: %s", clientID, msg.Error)
		}
	case "client_error":
		log.Errorf("client %s reported error: %s\n%s", clientID, msg.Message, msg.Stack)
	}
}
