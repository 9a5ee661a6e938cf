package httpapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/coder/websocket"

	"github.com/rkatz/tcgsim/internal/engine"
	"github.com/rkatz/tcgsim/internal/engine/catalog"
)

// Server is the tcgx HTTP/WebSocket API server, adapted from the
// teacher's web.Server (internal/web/server.go): same net/http.ServeMux +
// coder/websocket shape, repurposed from a single-duel browser UI to a
// multi-session JSON API fronting engine.Match.
type Server struct {
	mu       sync.Mutex
	sessions map[string]*Session

	mux           *http.ServeMux
	defaultConfig engine.Config
}

// NewServer builds a Server with its routes installed, using the example
// catalog's default Config for every match it creates.
func NewServer() *Server {
	return NewServerWithConfig(catalog.DefaultConfig())
}

// NewServerWithConfig is like NewServer but lets the caller supply a Config
// (e.g. loaded via catalog.LoadConfigYAML) applied to every match this
// server creates.
func NewServerWithConfig(cfg engine.Config) *Server {
	s := &Server{
		sessions:      map[string]*Session{},
		mux:           http.NewServeMux(),
		defaultConfig: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("POST /api/matches", s.handleCreateMatch)
	s.mux.HandleFunc("GET /api/matches/{id}", s.handleGetMatch)
	s.mux.HandleFunc("GET /ws/{id}/{player}", s.handleWebSocket)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req NewSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("bad request body: %v", err), http.StatusBadRequest)
		return
	}
	sess, err := NewSessionWithConfig(req, s.defaultConfig)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"match_id": sess.ID})
}

func (s *Server) lookup(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	player := 0
	if p, err := strconv.Atoi(r.URL.Query().Get("player")); err == nil {
		player = p
	}

	sess.mu.Lock()
	view := sess.buildStateView(player)
	sess.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r.PathValue("id"))
	if !ok {
		http.Error(w, "unknown match", http.StatusNotFound)
		return
	}
	player, err := strconv.Atoi(r.PathValue("player"))
	if err != nil || (player != 0 && player != 1) {
		http.Error(w, "player must be 0 or 1", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	send := func(msg ServerMessage) error {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		return conn.Write(ctx, websocket.MessageText, data)
	}

	sess.mu.Lock()
	view := sess.buildStateView(player)
	sess.mu.Unlock()
	if err := send(ServerMessage{Type: "state", State: &view}); err != nil {
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var cm ClientMessage
		if err := json.Unmarshal(data, &cm); err != nil || cm.Type != "command" {
			send(ServerMessage{Type: "error", Error: "expected a command message"})
			continue
		}

		sess.mu.Lock()
		err = sess.applyCommand(player, cm.Command)
		view := sess.buildStateView(player)
		sess.mu.Unlock()

		if err != nil {
			if sendErr := send(ServerMessage{Type: "error", Error: err.Error()}); sendErr != nil {
				return
			}
			continue
		}
		if err := send(ServerMessage{Type: "state", State: &view}); err != nil {
			return
		}
	}
}
