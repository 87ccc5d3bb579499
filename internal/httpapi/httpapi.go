// Package httpapi exposes the toolkit over HTTP: load a grammar, fetch its
// analysis report, and test input strings against it. Grounded on the
// teacher's server/api (the httpEndpoint wrapper: panic recovery, request
// logging, a single JSON-result shape) and server/middle (a JWT-checking
// middleware chained in front of protected routes), adapted from tunaq's
// account-based sessions to predikt's one-shot per-grammar-load sessions
// (issuing a token scoped to a single loaded grammar rather than a user).
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/predikt/internal/load"
	"github.com/dekarrin/predikt/internal/predikterr"
	"github.com/dekarrin/predikt/internal/report"
	"github.com/dekarrin/predikt/internal/store"
	"github.com/dekarrin/predikt/internal/toolkit"
)

type ctxKey int

const ctxKeyRunID ctxKey = iota

// Server holds the in-memory set of loaded grammars (keyed by run ID) and
// the history store they are recorded into. Grammars live only as long as
// the process does; on restart, only the sqlite-backed history survives.
type Server struct {
	secret  []byte
	tokenTTL time.Duration
	history *store.Store

	mu    sync.RWMutex
	loads map[uuid.UUID]*toolkit.Toolkit

	router chi.Router
}

// NewServer builds a Server whose JWTs are signed with secret and expire
// after tokenTTL, recording every load into history.
func NewServer(secret []byte, tokenTTL time.Duration, history *store.Store) *Server {
	s := &Server{
		secret:   secret,
		tokenTTL: tokenTTL,
		history:  history,
		loads:    map[uuid.UUID]*toolkit.Toolkit{},
	}
	s.router = s.routes()
	return s
}

// ServeHTTP lets Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Post("/grammars", s.handleLoadGrammar)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/grammars/{id}/report", s.handleReport)
		r.Post("/grammars/{id}/parse", s.handleParse)
	})

	r.Get("/history", s.handleHistory)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("ERROR %s %s: panic: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
		log.Printf("INFO  %s %s", r.Method, r.URL.Path)
	})
}

// claims is the JWT payload: which grammar load this token authorizes
// access to.
type claims struct {
	jwt.RegisteredClaims
	RunID string `json:"run_id"`
}

func (s *Server) issueToken(runID uuid.UUID) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		RunID: runID.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(s.secret)
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing bearer token"})
			return
		}

		var c claims
		_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
			return s.secret, nil
		})
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid token: " + err.Error()})
			return
		}

		runID, err := uuid.Parse(c.RunID)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid token subject"})
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyRunID, runID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

type loadGrammarResponse struct {
	RunID   string `json:"run_id"`
	Token   string `json:"token"`
	Verdict string `json:"verdict"`
}

func (s *Server) handleLoadGrammar(w http.ResponseWriter, r *http.Request) {
	f, err := load.FromReader(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: predikterr.Display(err)})
		return
	}

	tk := toolkit.Build(f.Grammar)

	s.mu.Lock()
	s.loads[tk.RunID] = tk
	s.mu.Unlock()

	if s.history != nil {
		if _, err := s.history.Record(r.Context(), tk); err != nil {
			log.Printf("WARN  could not record run history: %v", err)
		}
	}

	token, err := s.issueToken(tk.RunID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "could not issue token"})
		return
	}

	writeJSON(w, http.StatusCreated, loadGrammarResponse{
		RunID:   tk.RunID.String(),
		Token:   token,
		Verdict: tk.Verdict().String(),
	})
}

func (s *Server) lookup(r *http.Request) (*toolkit.Toolkit, bool) {
	runID, ok := r.Context().Value(ctxKeyRunID).(uuid.UUID)
	if !ok {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	tk, ok := s.loads[runID]
	return tk, ok
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	tk, ok := s.lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no such grammar load"})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, report.Verdicts(tk))
	fmt.Fprintln(w, report.FirstFollowTable(tk.Grammar, tk.First, tk.Follow))
	fmt.Fprintln(w, report.LL1Table(tk.Grammar, tk.LL1Table))
}

type parseRequest struct {
	Method string   `json:"method"`
	Inputs []string `json:"inputs"`
}

type parseResultEntry struct {
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
	Cause    string `json:"cause,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	tk, ok := s.lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no such grammar load"})
		return
	}

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body: " + err.Error()})
		return
	}

	method, err := parseMethod(req.Method, tk)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	entries := tk.RecognizeBatch(method, req.Inputs)
	out := make([]parseResultEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, parseResultEntry{
			Input:    e.Input,
			Accepted: e.Result.Accepted,
			Cause:    e.Result.Cause.String(),
			Message:  e.Result.Message,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func parseMethod(raw string, tk *toolkit.Toolkit) (toolkit.Method, error) {
	switch raw {
	case "ll1":
		if !tk.IsLL1() {
			return 0, fmt.Errorf("grammar is not LL(1)")
		}
		return toolkit.LL1, nil
	case "slr1":
		if !tk.IsSLR1() {
			return 0, fmt.Errorf("grammar is not SLR(1)")
		}
		return toolkit.SLR1, nil
	default:
		return 0, fmt.Errorf("method must be \"ll1\" or \"slr1\", got %q", raw)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, []store.Run{})
		return
	}
	runs, err := s.history.ListRecent(r.Context(), 50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
