// Package feed exposes a match over WebSocket: clients send commands as JSON
// envelopes and receive state and event frames.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lanewar/internal/match"
	"lanewar/internal/protocol"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingEvery    = 25 * time.Second
	readLimit    = 64 << 10
)

type Server struct {
	match    *match.Match
	log      *slog.Logger
	tickHz   int
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

func New(m *match.Match, tickHz int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		match:  m,
		log:    log,
		tickHz: tickHz,
		upgrader: websocket.Upgrader{
			// the renderer is served from anywhere during development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.match.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"match":  snap.Match,
		"state":  snap.Status,
		"time":   snap.Time,
	})
}

// encoder picks the frame format for one connection.
type encoder struct {
	binary bool
}

func (e encoder) encode(msg protocol.Message) (int, []byte, error) {
	if e.binary {
		b, err := protocol.EncodeBinary(msg.T, msg.P)
		return websocket.BinaryMessage, b, err
	}
	b, err := protocol.Encode(msg.T, msg.P)
	return websocket.TextMessage, b, err
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	enc := encoder{binary: r.URL.Query().Get("fmt") == "msgpack"}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade", "err", err)
		return
	}
	defer conn.Close()
	log := s.log.With("remote", r.RemoteAddr, "binary", enc.binary)
	log.Info("client connected")

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	msgs, unsubscribe := s.match.Subscribe()
	defer unsubscribe()

	format := "json"
	if enc.binary {
		format = "msgpack"
	}
	hello := []protocol.Message{
		{T: protocol.MsgWelcome, P: protocol.Welcome{TickHz: s.tickHz, Speeds: match.Speeds, Format: format}},
		{T: protocol.MsgState, P: s.match.Snapshot()},
	}
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(ctx, conn, enc, hello, msgs, log)
		cancel()
		// unblocks the reader if the writer gave up first
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("ws read", "err", err)
			}
			break
		}
		env, err := protocol.DecodeEnvelope(data)
		if err != nil {
			log.Debug("bad envelope", "err", err)
			continue
		}
		cmd, err := toCommand(env)
		if err != nil {
			log.Debug("bad command", "type", env.T, "err", err)
			continue
		}
		if err := s.match.Send(ctx, cmd); err != nil {
			break
		}
	}
	cancel()
	<-writerDone
	log.Info("client disconnected")
}

// writeLoop is the connection's only writer.
func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, enc encoder, pending []protocol.Message, msgs <-chan protocol.Message, log *slog.Logger) {
	ping := time.NewTicker(pingEvery)
	defer ping.Stop()

	write := func(msg protocol.Message) bool {
		kind, b, err := enc.encode(msg)
		if err != nil {
			log.Warn("encode frame", "type", msg.T, "err", err)
			return true
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(kind, b); err != nil {
			log.Debug("ws write", "err", err)
			return false
		}
		return true
	}
	for _, msg := range pending {
		if !write(msg) {
			return
		}
	}
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		case msg := <-msgs:
			if !write(msg) {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
