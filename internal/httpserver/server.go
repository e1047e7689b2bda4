// internal/httpserver/server.go
//
// HTTP server wiring for the WordScramble backend.
// Responsibilities:
//   - Router + middleware (request IDs, access logs, panic recovery,
//     timeouts, gzip, JSON, CORS).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): create, read, restart, submit a word,
//     dismiss the pending notice.
//   - Auth endpoints (see auth.go).
//
// Notes:
//   - Each game is an in-memory session owned by the caller (user ID when
//     logged in, anonymous cookie otherwise). Other callers get 404.
//   - A candidate pool load failure is fatal: the server logs and exits.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/accounts"
	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Deps are the collaborators the server needs.
type Deps struct {
	Store    store.Store
	Pool     *words.Pool
	Dict     game.Dictionary
	Accounts *accounts.Store
	Config   config.Config
	Logger   zerolog.Logger
}

// Server bundles the router and its collaborators.
type Server struct {
	r     *chi.Mux
	deps  Deps
	fatal func(err error) // terminates the process on unrecoverable errors
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{r: chi.NewRouter(), deps: d, fatal: logFatal}
	if s.deps.Config.RequestTimeout <= 0 {
		s.deps.Config.RequestTimeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(d.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(s.deps.Config.RequestTimeout))
	s.r.Use(gzipResponses)
	s.r.Use(jsonContentType)
	s.r.Use(cors(d.Config.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordscramble-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/{id}/word", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{
			"candidates": d.Pool.Len(),
			"sessions":   d.Store.Len(),
		})
	})

	// Game endpoints: optional auth (guests can play)
	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/new", s.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleState)
			r.Post("/restart", s.handleRestart)
			r.Post("/word", s.handleWord)
			r.Post("/notice/dismiss", s.handleDismiss)
		})
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// accessLog writes one line per request through the request's logger.
func accessLog(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})(next)
}

// gzipResponses compresses responses for clients that accept gzip.
func gzipResponses(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
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

// ------------------------------ GAME ---------------------------------------

// gameRes is the state payload returned by every game endpoint.
type gameRes struct {
	GameID string `json:"gameId"`
	game.Snapshot
}

// wordReq/Res payloads for POST /game/{id}/word.
type wordReq struct {
	Word string `json:"word"`
}
type wordRes struct {
	Outcome game.Outcome `json:"outcome"`
	State   gameRes      `json:"state"`
}

// handleNewGame creates a session owned by the caller and starts it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	owner := s.ownerID(w, r)
	e := game.New(s.deps.Pool, s.deps.Dict, s.deps.Config.Language)
	if !s.startGame(w, r, e) {
		return
	}

	sess := store.NewSession(accounts.NewID(), owner, e)
	if err := s.deps.Store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	hlog.FromRequest(r).Debug().Str("gameId", sess.ID).Str("root", e.RootWord()).Msg("game started")
	writeJSON(w, http.StatusCreated, stateOf(sess))
}

// handleState returns the current snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// handleRestart picks a new root word for an existing session.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if !s.startGame(w, r, sess.Engine) {
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// handleWord submits a candidate word. Rejections are a normal 200 response;
// the client renders the notice.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	out := sess.Engine.SubmitWord(req.Word)
	hlog.FromRequest(r).Debug().
		Str("gameId", sess.ID).
		Str("word", out.Word).
		Bool("accepted", out.Accepted).
		Str("reason", string(out.Reason)).
		Msg("word submitted")
	writeJSON(w, http.StatusOK, wordRes{Outcome: out, State: stateOf(sess)})
}

// handleDismiss clears the pending notice.
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Engine.ClearNotice()
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// startGame runs StartGame and handles its one failure mode.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, e *game.Engine) bool {
	err := e.StartGame(r.Context())
	if err == nil {
		return true
	}
	if errors.Is(err, words.ErrPoolLoad) {
		s.fatal(err)
	}
	hlog.FromRequest(r).Error().Err(err).Msg("start game")
	writeError(w, http.StatusServiceUnavailable, "no_words")
	return false
}

// session loads the {id} session and checks the caller owns it.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.deps.Store.Get(r.Context(), id)
	if err != nil || sess.OwnerID != s.ownerID(w, r) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	sess.Touch(time.Now())
	return sess, true
}

func stateOf(sess *store.Session) gameRes {
	return gameRes{GameID: sess.ID, Snapshot: sess.Engine.Snapshot()}
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func logFatal(err error) {
	log.Fatal().Err(err).Msg("candidate pool unavailable")
}
