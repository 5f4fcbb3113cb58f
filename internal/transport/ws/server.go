package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"fleetsim/internal/protocol"
)

// Server broadcasts simulation frames to read-only observers.
type Server struct {
	log *log.Logger

	upgrader websocket.Upgrader

	mu     sync.Mutex
	params protocol.WorldParams
	nextID int
	subs   map[int]chan []byte
}

func NewServer(params protocol.WorldParams, logger *log.Logger) *Server {
	return &Server{
		log:    logger,
		params: params,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		subs: map[int]chan []byte{},
	}
}

// SetParams replaces the world params sent in WELCOME (used between runs).
func (s *Server) SetParams(p protocol.WorldParams) {
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if !s.handshake(conn) {
			return
		}

		out := make(chan []byte, 64)
		id := s.subscribe(out)
		defer s.unsubscribe(id)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Observers send nothing after HELLO; the reader loop only
		// detects disconnect.
		conn.SetReadLimit(4 * 1024)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) bool {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return false
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return false
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return false
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return false
	}
	_ = conn.SetReadDeadline(time.Time{})

	s.mu.Lock()
	params := s.params
	s.mu.Unlock()

	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		WorldParams:     params,
	}
	b, err := json.Marshal(welcome)
	if err != nil {
		return false
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b) == nil
}

func (s *Server) subscribe(out chan []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.subs[s.nextID] = out
	return s.nextID
}

func (s *Server) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// Broadcast fans a message out to every observer. Slow consumers drop
// messages rather than stalling the tick loop.
func (s *Server) Broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		if s.log != nil {
			s.log.Printf("broadcast marshal: %v", err)
		}
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, out := range s.subs {
		select {
		case out <- b:
		default:
		}
	}
}
