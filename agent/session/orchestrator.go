// Package session owns per-session conversation state and drives the
// route-then-respond dispatch for each inbound message.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
	responderx "github.com/al-jwarizmi/mongodb-agents/agent/responder"
	routerx "github.com/al-jwarizmi/mongodb-agents/agent/router"
)

// Config bounds the orchestrator's memory and context windows.
type Config struct {
	HistoryWindow       int `envconfig:"HISTORY_WINDOW" default:"5"`
	RouterHistoryWindow int `envconfig:"ROUTER_HISTORY_WINDOW" default:"3"`
	MaxSessions         int `envconfig:"MAX_SESSIONS" default:"1024"`
	Temperature         float64
}

// Orchestrator maps session ids to turn histories, routes each message, and
// dispatches to a lazily built, cached responder. Concurrent turns on the
// same session are serialized by a per-session lock.
type Orchestrator struct {
	store  contractx.Store
	model  contractx.ChatModel
	router *routerx.Router
	cfg    Config

	mu       sync.Mutex
	sessions map[string]*session

	respondersMu sync.Mutex
	responders   map[contractx.ResponderKind]*responderx.Responder

	now func() time.Time
}

type session struct {
	mu         sync.Mutex
	turns      []contractx.Turn
	lastActive time.Time
}

func New(store contractx.Store, model contractx.ChatModel, router *routerx.Router, cfg Config) *Orchestrator {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 5
	}
	if cfg.RouterHistoryWindow <= 0 {
		cfg.RouterHistoryWindow = 3
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1024
	}

	return &Orchestrator{
		store:      store,
		model:      model,
		router:     router,
		cfg:        cfg,
		sessions:   make(map[string]*session),
		responders: make(map[contractx.ResponderKind]*responderx.Responder),
		now:        time.Now,
	}
}

// ProcessQuery handles one user turn: build context, route, dispatch, and
// record the turn pair. Failures from routing or responder construction do
// not mutate history; the caller always gets text back.
func (o *Orchestrator) ProcessQuery(ctx context.Context, sessionID, message string) string {
	sess := o.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	history := lastN(sess.turns, o.cfg.HistoryWindow)
	routingContext := lastN(history, o.cfg.RouterHistoryWindow)

	decision, err := o.router.Route(ctx, message, routingContext)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("routing failed")
		return responderx.Apology
	}

	resp, err := o.responderFor(ctx, contractx.ResponderKind(decision.Kind))
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Str("responder", decision.Kind).Msg("responder construction failed")
		return responderx.Apology
	}

	reply := resp.Respond(ctx, message, history)

	sess.turns = append(sess.turns,
		contractx.Turn{Role: contractx.RoleUser, Content: message},
		contractx.Turn{Role: contractx.RoleAssistant, Content: reply},
	)
	sess.lastActive = o.now()

	log.Info().Str("session_id", sessionID).Str("responder", decision.Kind).Int("turns", len(sess.turns)).Msg("turn recorded")
	return reply
}

// ClearConversation empties a session's history; the session itself stays.
func (o *Orchestrator) ClearConversation(sessionID string) {
	sess := o.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.turns = sess.turns[:0]
	log.Info().Str("session_id", sessionID).Msg("conversation cleared")
}

// History returns a snapshot of a session's turns.
func (o *Orchestrator) History(sessionID string) []contractx.Turn {
	sess := o.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]contractx.Turn, len(sess.turns))
	copy(out, sess.turns)
	return out
}

// session returns the per-session record, creating it when absent and
// evicting the longest-idle session once the cap is exceeded.
func (o *Orchestrator) session(id string) *session {
	o.mu.Lock()
	defer o.mu.Unlock()

	if s, ok := o.sessions[id]; ok {
		return s
	}

	if len(o.sessions) >= o.cfg.MaxSessions {
		o.evictOldestLocked()
	}

	s := &session{lastActive: o.now()}
	o.sessions[id] = s
	return s
}

func (o *Orchestrator) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, s := range o.sessions {
		if oldestID == "" || s.lastActive.Before(oldest) {
			oldestID = id
			oldest = s.lastActive
		}
	}
	if oldestID != "" {
		delete(o.sessions, oldestID)
		log.Warn().Str("session_id", oldestID).Msg("session cap reached, evicted longest-idle session")
	}
}

// responderFor returns the cached responder for a kind, constructing it on
// first use. One instance is reused for the orchestrator's lifetime.
func (o *Orchestrator) responderFor(ctx context.Context, kind contractx.ResponderKind) (*responderx.Responder, error) {
	o.respondersMu.Lock()
	defer o.respondersMu.Unlock()

	if r, ok := o.responders[kind]; ok {
		return r, nil
	}

	r, err := responderx.New(ctx, kind, o.model, o.store, responderx.Config{
		Temperature:   o.cfg.Temperature,
		HistoryWindow: o.cfg.HistoryWindow,
	})
	if err != nil {
		return nil, err
	}
	o.responders[kind] = r
	return r, nil
}

func lastN(turns []contractx.Turn, n int) []contractx.Turn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
