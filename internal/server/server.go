// Package server serves generated levels over HTTP and pushes regenerated
// levels to websocket clients.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/OCharnyshevich/cave-generator/internal/config"
	"github.com/OCharnyshevich/cave-generator/internal/export"
	"github.com/OCharnyshevich/cave-generator/pkg/cave"
)

// Message types exchanged on /stream.
const (
	TypeRegenerate = "regenerate"
	TypeLevel      = "level"
	TypeBusy       = "busy"
	TypeError      = "error"
)

// Message is the envelope for every /stream message in both directions.
type Message struct {
	Type  string           `json:"type"`
	Seed  string           `json:"seed,omitempty"`
	Level *export.Document `json:"level,omitempty"`
	Error string           `json:"error,omitempty"`
}

// Generator produces levels; *cave.Generator satisfies it.
type Generator interface {
	GenerateSeed(seed string) (*cave.Level, error)
}

// Server is the level preview server.
type Server struct {
	cfg *config.Config
	log *slog.Logger
	gen Generator
	hub *Hub

	mu   sync.Mutex
	last *export.Document
}

// New creates a new Server with the given config, generator and logger.
func New(cfg *config.Config, gen Generator, log *slog.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: log,
		gen: gen,
		hub: NewHub(),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /level", s.handleLevel)
	mux.HandleFunc("/stream", s.handleStream)
	return mux
}

// Start begins listening for connections and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Listen, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("server started",
		"addr", listener.Addr().String(),
		"size", fmt.Sprintf("%dx%d", s.cfg.Cave.Width, s.cfg.Cave.Height),
		"fillMode", s.cfg.Cave.FillMode,
		"randomSeed", s.cfg.Cave.RandomSeed,
	)

	// Shut down when context is cancelled.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	s.log.Info("server shutting down")
	return nil
}

// generate runs one generation and remembers the result as the level new
// stream clients receive first.
func (s *Server) generate(seed string) (*export.Document, error) {
	if seed == "" {
		seed = s.cfg.Cave.Seed
	}
	lvl, err := s.gen.GenerateSeed(seed)
	if err != nil {
		return nil, err
	}
	doc := export.NewDocument(lvl)

	s.mu.Lock()
	s.last = doc
	s.mu.Unlock()
	return doc, nil
}

func (s *Server) lastLevel() *export.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	doc, err := s.generate(r.URL.Query().Get("seed"))
	switch {
	case errors.Is(err, cave.ErrBusy):
		writeJSON(w, http.StatusServiceUnavailable, Message{Type: TypeBusy})
	case err != nil:
		s.log.Error("generate level", "error", err)
		writeJSON(w, http.StatusInternalServerError, Message{Type: TypeError, Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, doc)
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.Warn("accept websocket", "error", err)
		return
	}
	s.hub.Add(conn)
	defer s.hub.Remove(conn)
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	if doc := s.lastLevel(); doc != nil {
		s.send(ctx, conn, Message{Type: TypeLevel, Seed: doc.Seed, Level: doc})
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(ctx, conn, Message{Type: TypeError, Error: "malformed message"})
			continue
		}
		if msg.Type != TypeRegenerate {
			s.send(ctx, conn, Message{Type: TypeError, Error: fmt.Sprintf("unknown message type %q", msg.Type)})
			continue
		}

		seed := msg.Seed
		if seed == "" {
			seed = cave.TimeSeed()
		}
		doc, err := s.generate(seed)
		switch {
		case errors.Is(err, cave.ErrBusy):
			s.send(ctx, conn, Message{Type: TypeBusy, Seed: seed})
		case err != nil:
			s.log.Error("generate level", "seed", seed, "error", err)
			s.send(ctx, conn, Message{Type: TypeError, Seed: seed, Error: err.Error()})
		default:
			b, err := json.Marshal(Message{Type: TypeLevel, Seed: doc.Seed, Level: doc})
			if err != nil {
				s.log.Error("marshal level", "error", err)
				continue
			}
			s.hub.Broadcast(b)
		}
	}
}

func (s *Server) send(ctx context.Context, conn *websocket.Conn, msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("marshal message", "type", msg.Type, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, b); err != nil {
		s.log.Debug("write message", "type", msg.Type, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
