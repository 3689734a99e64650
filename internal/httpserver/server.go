// internal/httpserver/server.go
//
// HTTP host for the gridle engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints: POST /session/new, POST /session/event,
//     GET /session/{id}.
//   - Session token handling (JWT bound to the session ID).
//
// The host is presentation plumbing only: it normalizes synthetic input
// events into the engine's three event kinds and reflects the resulting
// render state back as JSON. All game rules live in internal/game.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Malformed input events are not errors: the handler returns the
//     unchanged state, matching the engine's forgiving contract.
//   - Terminal sessions are deleted from the store once their final state
//     has been reported; a finished game is never resumable.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/gridle-game/gridle/internal/config"
	"github.com/gridle-game/gridle/internal/game"
	"github.com/gridle-game/gridle/internal/input"
	"github.com/gridle-game/gridle/internal/store"
	"github.com/gridle-game/gridle/internal/words"
)

// Server bundles router, session store, word source, and token secret.
type Server struct {
	r      *chi.Mux
	store  store.Store
	src    *words.Source
	secret []byte
	origin string
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st store.Store, src *words.Source) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		src:    src,
		secret: []byte(cfg.Session.Secret),
		origin: cfg.Server.Origin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsSingleOrigin(s.origin))      // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"gridle","endpoints":["/health","POST /session/new","POST /session/event","GET /session/{id}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"candidates": s.src.Count()})
	})

	// --- sessions ---
	s.r.Post("/session/new", s.handleNewSession)
	s.r.Post("/session/event", s.handleEvent)
	s.r.Get("/session/{id}", s.handleGetSession)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsSingleOrigin enables credentialed CORS for one origin.
func corsSingleOrigin(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ payloads -----------------------------------

// newSessionReq is the payload for POST /session/new.
// Answer fixes the solution (testing); empty means pick at random.
type newSessionReq struct {
	Answer string `json:"answer"`
}

// newSessionRes returns the handle the client drives the session with.
type newSessionRes struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
}

// eventReq is one synthetic input event for POST /session/event.
// Either Kind ("letter"/"submit"/"delete", with Letter for the first) or a
// DOM-style Key name ("Enter", "Backspace", "a") may be supplied.
type eventReq struct {
	Kind   string `json:"kind"`
	Letter string `json:"letter"`
	Key    string `json:"key"`
}

// renderState is everything the rendering layer reads after a mutation:
// grid marks, row contents, active row, key statuses, terminal state.
// The solution is revealed only once the session is terminal.
type renderState struct {
	SessionID string                          `json:"sessionId"`
	State     game.State                      `json:"state"`
	Row       int                             `json:"row"`
	Guesses   [game.Rows]string               `json:"guesses"`
	Marks     [game.Rows][game.Cols]game.Mark `json:"marks"`
	Keys      map[string]game.Mark            `json:"keys"`
	Solution  string                          `json:"solution,omitempty"`
}

func render(sess *game.Session) renderState {
	rs := renderState{
		SessionID: sess.ID,
		State:     sess.State,
		Row:       sess.Row,
		Guesses:   sess.Guesses,
		Marks:     sess.Marks,
		Keys:      sess.Keys,
	}
	if sess.Terminal() {
		rs.Solution = sess.Solution
	}
	return rs
}

// ------------------------------ handlers -----------------------------------

// handleNewSession picks a solution, creates a session, and returns its
// handle with a signed token. Restart on the client side is just another
// call here; old sessions are never resumed.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	answer := req.Answer
	if answer == "" {
		var err error
		answer, err = s.src.PickRandom()
		if err != nil {
			log.Error().Err(err).Msg("pick solution")
			http.Error(w, `{"error":"pick_failed"}`, http.StatusInternalServerError)
			return
		}
	}

	sess, err := game.New(answer)
	if err != nil {
		// Only reachable with a caller-supplied answer.
		http.Error(w, `{"error":"invalid_solution"}`, http.StatusBadRequest)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.signSessionToken(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, tok, exp)

	log.Info().Str("sessionId", sess.ID).Msg("session started")
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID: sess.ID,
		Token:     tok,
		Rows:      game.Rows,
		Cols:      game.Cols,
	})
}

// handleEvent applies one normalized input event to the caller's session and
// returns the resulting render state. Events that don't normalize are a
// no-op, not an error.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	sid, ok := s.authorize(w, r)
	if !ok {
		return
	}
	var req eventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	sess, err := s.store.Get(r.Context(), sid)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	if ev, ok := normalizeEvent(req); ok {
		input.Apply(sess, ev)
	}

	if sess.Terminal() {
		// Final state goes out in this response; the stored row is gone.
		if err := s.store.Delete(r.Context(), sid); err != nil {
			log.Warn().Err(err).Str("sessionId", sid).Msg("delete finished session")
		}
		log.Info().Str("sessionId", sid).Str("state", string(sess.State)).Msg("session finished")
	} else if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(render(sess))
}

// handleGetSession returns the current render state without mutating it.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := s.authorize(w, r)
	if !ok {
		return
	}
	if chi.URLParam(r, "id") != sid {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return
	}
	sess, err := s.store.Get(r.Context(), sid)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(render(sess))
}

// authorize extracts and verifies the session token, writing a 401 on
// failure. Returns the bound session ID.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	tok := bearerOrCookie(r)
	if tok == "" {
		http.Error(w, `{"error":"missing_token"}`, http.StatusUnauthorized)
		return "", false
	}
	sid, err := s.sessionIDFromToken(tok)
	if errors.Is(err, errBadToken) {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
		return "", false
	}
	return sid, true
}

// normalizeEvent reduces the wire payload to the engine's event type.
// A DOM-style key name takes precedence when present; otherwise the explicit
// kind/letter pair is used.
func normalizeEvent(req eventReq) (input.Event, bool) {
	if req.Key != "" {
		return input.FromKeyName(req.Key)
	}
	switch input.Kind(req.Kind) {
	case input.KindSubmit:
		return input.Event{Kind: input.KindSubmit}, true
	case input.KindDelete:
		return input.Event{Kind: input.KindDelete}, true
	case input.KindLetter:
		if len(req.Letter) == 1 {
			return input.FromRune(rune(req.Letter[0]))
		}
	}
	return input.Event{}, false
}
