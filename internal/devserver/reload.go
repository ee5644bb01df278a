package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ReloadMessageType is the type of a reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeError ReloadMessageType = "error"
)

// ReloadMessage is sent to browsers over the reload socket.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Files []string          `json:"files,omitempty"`
	Error string            `json:"error,omitempty"`
}

// ReloadServer tracks connected browsers and broadcasts reload messages.
type ReloadServer struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewReloadServer creates a reload server.
func NewReloadServer(logger *slog.Logger) *ReloadServer {
	if logger == nil {
		logger = slog.Default().With("component", "reload")
	}
	return &ReloadServer{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the request and holds the socket until the browser
// disconnects.
func (s *ReloadServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("reload upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.logger.Debug("reload client connected", "remote", r.RemoteAddr)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// NotifyReload tells every browser to reload. files lists what changed.
func (s *ReloadServer) NotifyReload(files []string) {
	s.broadcast(ReloadMessage{Type: ReloadTypeFull, Files: files})
}

// NotifyError shows msg in every browser without reloading.
func (s *ReloadServer) NotifyError(msg string) {
	s.broadcast(ReloadMessage{Type: ReloadTypeError, Error: msg})
}

func (s *ReloadServer) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			c.Close()
		}
	}
}

// ClientCount returns the number of connected browsers.
func (s *ReloadServer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close disconnects every browser.
func (s *ReloadServer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close()
		delete(s.clients, c)
	}
}

// ReloadPath is where the reload socket is mounted.
const ReloadPath = "/_marquee/reload"

// reloadScript is injected into index.html when live reload is enabled.
const reloadScript = `<script>
(function() {
  var delay = 1000;
  function connect() {
    var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(proto + '//' + location.host + '` + ReloadPath + `');
    ws.onopen = function() { delay = 1000; };
    ws.onmessage = function(e) {
      var msg;
      try { msg = JSON.parse(e.data); } catch (err) { return; }
      if (msg.type === 'reload') { location.reload(); }
      if (msg.type === 'error') { console.error('[marquee]', msg.error); }
    };
    ws.onclose = function() {
      setTimeout(function() { delay = Math.min(delay * 2, 30000); connect(); }, delay);
    };
  }
  connect();
})();
</script>`
