package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/auth"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/config"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/service"
)

const maxBatch = 500

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	auth *auth.TokenVerifier
	game *service.Service
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, verifier *auth.TokenVerifier, svc *service.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		auth: verifier,
		game: svc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/world", s.handleWorld)
		r.Get("/actions", s.handleJournal)
		r.Get("/actions/types", s.handleActionTypes)
		r.Post("/actions", s.handleDispatch)
		r.Post("/actions/batch", s.handleDispatchBatch)
		r.Post("/reset", s.handleReset)
		r.Get("/achievements/pending", s.handlePendingAchievements)
		r.Get("/candidates", s.handleCandidates)
		r.Get("/stocks/{symbol}", s.handleStock)
		r.Get("/verify", s.handleVerify)
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.Enabled() {
			next.ServeHTTP(w, r)
			return
		}
		token := auth.BearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if err := s.auth.Verify(token); err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWorld(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.game.World())
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var a game.Action
	if err := decodeJSON(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	world, replayed, err := s.game.DispatchOnce(r.Context(), idempotencyKey(r), a)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if replayed {
		w.Header().Set("Idempotent-Replayed", "true")
	}
	s.log.Debug("action applied", "type", a.Type, "request_id", middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, world)
}

func (s *Server) handleDispatchBatch(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Actions []game.Action `json:"actions"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(in.Actions) > maxBatch {
		writeError(w, http.StatusRequestEntityTooLarge, "too many actions in batch")
		return
	}
	world, applied, err := s.game.DispatchAll(r.Context(), in.Actions)
	if err != nil {
		writeJSON(w, domainStatus(err), map[string]any{"error": err.Error(), "applied": applied})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applied": applied, "world": world})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	world, err := s.game.Reset(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, world)
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	actions, err := s.game.Actions(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if v := r.URL.Query().Get("since"); v != "" {
		since, err := strconv.Atoi(v)
		if err != nil || since < 0 {
			writeError(w, http.StatusBadRequest, "since must be a non-negative integer")
			return
		}
		actions = actions[min(since, len(actions)):]
	}
	writeJSON(w, http.StatusOK, map[string]any{"actions": actions})
}

func (s *Server) handleActionTypes(w http.ResponseWriter, _ *http.Request) {
	router := game.DefaultRouter()
	out := make([]map[string]any, 0)
	for _, t := range router.Types() {
		out = append(out, map[string]any{"type": t, "domains": router.Owners(t)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"types": out})
}

func (s *Server) handlePendingAchievements(w http.ResponseWriter, _ *http.Request) {
	pending := game.PendingAchievements(s.game.World())
	if pending == nil {
		pending = []game.Achievement{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"achievements": pending})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	n := 6
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "n must be between 1 and 100")
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": game.Candidates(n)})
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	st, err := game.ListedStock(s.game.World(), chi.URLParam(r, "symbol"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	ok, err := s.game.Verify(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"consistent": ok})
}

func domainStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownAction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrInvalidSymbol), errors.Is(err, game.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrStockNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, domainStatus(err), err.Error())
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func idempotencyKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("Idempotency-Key"))
}
