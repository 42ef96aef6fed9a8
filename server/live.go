package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/console"
	"github.com/axiomconsultancy/axiom-admin-go/debounce"
	"github.com/axiomconsultancy/axiom-admin-go/session"
)

const (
	liveAuthTimeout   = 10 * time.Second
	liveSearchTimeout = 15 * time.Second
)

// LiveMessage is one frame on the live channel. The client sends auth,
// search and ping frames; the server answers with ready, result, pong
// and error frames, and pushes refresh frames after mutations.
type LiveMessage struct {
	Type      string     `json:"type"`
	SessionID string     `json:"session_id,omitempty"`
	Screen    string     `json:"screen,omitempty"`
	Seq       int        `json:"seq,omitempty"`
	Search    string     `json:"search,omitempty"`
	Page      int        `json:"page,omitempty"`
	PageSize  int        `json:"page_size,omitempty"`
	Error     string     `json:"error,omitempty"`
	View      *TableView `json:"view,omitempty"`
}

// liveClient is one websocket connection. Writes are serialized through
// the mutex because broadcasts and debounced search results arrive from
// different goroutines.
type liveClient struct {
	conn  *websocket.Conn
	mutex sync.Mutex
}

func (lc *liveClient) send(message []byte) error {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()
	return lc.conn.WriteMessage(websocket.TextMessage, message)
}

func (lc *liveClient) sendJSON(frame LiveMessage) {
	message, err := json.Marshal(frame)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling live frame")
		return
	}
	if err := lc.send(message); err != nil {
		log.Debug().Err(err).Msg("Error writing to live client")
	}
}

// LiveHub tracks the connected consoles and fans broadcast frames out
// to all of them.
type LiveHub struct {
	clients    map[*liveClient]bool
	register   chan *liveClient
	unregister chan *liveClient
	broadcast  chan []byte
	mutex      sync.RWMutex
}

func NewLiveHub() *LiveHub {
	return &LiveHub{
		clients:    make(map[*liveClient]bool),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
		broadcast:  make(chan []byte, 16),
	}
}

// Start starts the hub loop.
func (hub *LiveHub) Start() {
	go hub.run()
}

func (hub *LiveHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.mutex.Lock()
			hub.clients[client] = true
			hub.mutex.Unlock()
			log.Info().Int("clients", hub.ClientCount()).Msg("Live client connected")

		case client := <-hub.unregister:
			hub.remove(client)
			log.Info().Int("clients", hub.ClientCount()).Msg("Live client disconnected")

		case message := <-hub.broadcast:
			// Failed writes are collected under the read lock and the
			// clients removed afterwards, never while iterating.
			hub.mutex.RLock()
			var failed []*liveClient
			for client := range hub.clients {
				if err := client.send(message); err != nil {
					log.Error().Err(err).Msg("Error writing to live client")
					failed = append(failed, client)
				}
			}
			hub.mutex.RUnlock()

			for _, client := range failed {
				hub.remove(client)
			}
		}
	}
}

func (hub *LiveHub) remove(client *liveClient) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	if _, ok := hub.clients[client]; ok {
		delete(hub.clients, client)
		client.conn.Close()
	}
}

// Broadcast sends a frame to all connected clients.
func (hub *LiveHub) Broadcast(message []byte) {
	select {
	case hub.broadcast <- message:
	default:
		log.Warn().Msg("Live broadcast channel full, dropping frame")
	}
}

// BroadcastRefresh tells every console that a screen's data changed.
// Refresh frames carry no row data, so nothing session scoped leaks
// between operators.
func (hub *LiveHub) BroadcastRefresh(screen string) {
	message, err := json.Marshal(LiveMessage{Type: "refresh", Screen: screen})
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling refresh frame")
		return
	}
	hub.Broadcast(message)
}

func (hub *LiveHub) Register(client *liveClient) {
	hub.register <- client
}

func (hub *LiveHub) Unregister(client *liveClient) {
	hub.unregister <- client
}

// ClientCount returns the number of connected clients.
func (hub *LiveHub) ClientCount() int {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	return len(hub.clients)
}

func (s *Server) liveUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range s.origins {
				if allowed == "*" || strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// liveHandler upgrades /console/live connections. The first frame must
// authenticate with a session ID; after that the connection serves
// debounced live search and receives refresh broadcasts.
func (s *Server) liveHandler(w http.ResponseWriter, r *http.Request) {
	upgrader := s.liveUpgrader()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Live upgrade failed")
		return
	}

	client := &liveClient{conn: conn}

	sess, ok := s.authenticateLive(client)
	if !ok {
		conn.Close()
		return
	}

	s.live.Register(client)
	defer s.live.Unregister(client)

	s.serveLive(client, sess)
}

// authenticateLive waits for the auth frame. Connections that do not
// present a valid session within the deadline are dropped.
func (s *Server) authenticateLive(client *liveClient) (session.Session, bool) {
	client.conn.SetReadDeadline(time.Now().Add(liveAuthTimeout))
	defer client.conn.SetReadDeadline(time.Time{})

	var frame LiveMessage
	if err := client.conn.ReadJSON(&frame); err != nil {
		return session.Session{}, false
	}

	if frame.Type != "auth" || frame.SessionID == "" {
		client.sendJSON(LiveMessage{Type: "error", Error: "Authenticate first"})
		return session.Session{}, false
	}

	sess, err := s.sessions.Get(frame.SessionID)
	if err != nil {
		client.sendJSON(LiveMessage{Type: "error", Error: "Session expired, sign in again"})
		return session.Session{}, false
	}

	client.sendJSON(LiveMessage{Type: "ready"})
	return sess, true
}

// serveLive runs the read loop. Search frames are debounced per screen
// so a burst of keystrokes produces one fetch, and the newest frame's
// sequence number is echoed back with the result so the client can
// discard anything older.
func (s *Server) serveLive(client *liveClient, sess session.Session) {
	state := s.state.get(sess)
	debouncer := debounce.NewManager(debounce.DefaultWindow)
	connID := uuid.NewString()

	defer func() {
		for screen := range knownScreens {
			debouncer.Cancel(screen)
		}
	}()

	for {
		var frame LiveMessage
		if err := client.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("Live connection closed unexpectedly")
			}
			return
		}

		switch frame.Type {
		case "search":
			if _, known := knownScreens[frame.Screen]; !known {
				client.sendJSON(LiveMessage{Type: "error", Seq: frame.Seq, Error: "Unknown screen: " + frame.Screen})
				continue
			}
			request := frame
			debouncer.Schedule(request.Screen, func() {
				s.liveSearch(client, sess, state, connID, request)
			})

		case "ping":
			client.sendJSON(LiveMessage{Type: "pong"})

		default:
			client.sendJSON(LiveMessage{Type: "error", Error: "Unknown frame type: " + frame.Type})
		}
	}
}

// liveSearch runs one debounced search and ships the view back with the
// client's sequence number. The fetch key is scoped to the connection so
// two consoles on the same session never supersede each other.
func (s *Server) liveSearch(client *liveClient, sess session.Session, state *consoleState, connID string, frame LiveMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), liveSearchTimeout)
	defer cancel()

	key := "live:" + connID + ":" + frame.Screen
	q := console.Query{Page: frame.Page, PageSize: frame.PageSize, Search: frame.Search}

	view, err := s.screenView(ctx, sess, state, frame.Screen, key, q)
	if err != nil {
		if errors.Is(err, console.ErrSuperseded) {
			return
		}
		client.sendJSON(LiveMessage{Type: "error", Screen: frame.Screen, Seq: frame.Seq, Error: toastMessage(err)})
		return
	}

	client.sendJSON(LiveMessage{Type: "result", Screen: frame.Screen, Seq: frame.Seq, View: &view})
}
