// Package server exposes the chat system over HTTP and WebSocket.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	sessionx "github.com/al-jwarizmi/mongodb-agents/agent/session"
)

// Welcome is the greeting sent on WebSocket connect and after a clear.
const Welcome = "Welcome to Sleep Better! I'm Frodo, your personal sleep consultant. How may I assist you today?"

// Config holds the HTTP listener settings.
type Config struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"120s"`
	Debug        bool          `envconfig:"DEBUG" default:"false"`
}

// Server wires the orchestrator to gin routes and tracks live WebSocket
// connections so a clear can push the greeting to an open socket.
type Server struct {
	engine   *gin.Engine
	orch     *sessionx.Orchestrator
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*wsConn
}

// wsConn serializes writes; gorilla connections allow one writer at a time.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) sendJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type chatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// frame is one WebSocket message; type is assistant, status, or error.
type frame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func New(orch *sessionx.Orchestrator, cfg Config) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine: gin.New(),
		orch:   orch,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[string]*wsConn),
	}

	s.engine.Use(gin.Recovery())
	s.engine.GET("/healthz", s.health)
	s.engine.POST("/chat", s.chat)
	s.engine.POST("/chat/:session_id/clear", s.clear)
	s.engine.GET("/ws/chat/:session_id", s.wsChat)
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks serving HTTP until the listener fails or ctx is done.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info().Str("addr", cfg.Addr).Msg("server listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply := s.orch.ProcessQuery(c.Request.Context(), sessionID, req.Message)
	c.JSON(http.StatusOK, chatResponse{Response: reply, SessionID: sessionID})
}

func (s *Server) clear(c *gin.Context) {
	sessionID := c.Param("session_id")
	s.orch.ClearConversation(sessionID)

	// Push the greeting to the live socket, if any.
	s.mu.Lock()
	conn, ok := s.conns[sessionID]
	s.mu.Unlock()
	if ok {
		if err := conn.sendJSON(frame{Type: "assistant", Content: Welcome}); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("welcome push failed")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"message":         "Chat history cleared",
		"welcome_message": Welcome,
	})
}

func (s *Server) wsChat(c *gin.Context) {
	sessionID := c.Param("session_id")

	raw, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("websocket upgrade failed")
		return
	}
	conn := &wsConn{conn: raw}

	s.mu.Lock()
	s.conns[sessionID] = conn
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, sessionID)
		s.mu.Unlock()
		raw.Close()
		log.Info().Str("session_id", sessionID).Msg("websocket closed")
	}()

	if err := conn.sendJSON(frame{Type: "assistant", Content: Welcome}); err != nil {
		return
	}

	for {
		_, msg, err := raw.ReadMessage()
		if err != nil {
			return
		}

		if err := conn.sendJSON(frame{Type: "status", Content: "typing"}); err != nil {
			return
		}

		reply := s.orch.ProcessQuery(c.Request.Context(), sessionID, string(msg))
		if err := conn.sendJSON(frame{Type: "assistant", Content: reply}); err != nil {
			return
		}
	}
}
