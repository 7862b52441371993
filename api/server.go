package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/genius/constants"
	"github.com/lixenwraith/genius/game"
	"github.com/lixenwraith/genius/status"
)

// Server is the optional HTTP control and observer surface
// Handlers never touch the controller directly: mutations travel over Commands to the game loop,
// reads use the atomically published snapshot
type Server struct {
	r     *chi.Mux
	loop  dispatcher
	state func() game.State
	stats *status.Registry
	log   zerolog.Logger
}

// New constructs a Server reading snapshots from state, stats is optional
func New(state func() game.State, stats *status.Registry, log zerolog.Logger) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		loop:  dispatcher{commands: make(chan Command, constants.CommandBufferSize)},
		state: state,
		stats: stats,
		log:   log,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(constants.HTTPRequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(s.requestLogger)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/state", s.handleState)
	if stats != nil {
		s.r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, s.stats.Snapshot())
		})
	}

	s.r.Post("/start", s.command("start", func(c Controls) bool { return c.Start() }))
	s.r.Post("/stop", s.command("stop", func(c Controls) bool { c.Stop(); return true }))
	s.r.Post("/ack", s.command("ack", func(c Controls) bool { return c.AcknowledgeFailure() }))
	s.r.Post("/tap/{cell}", s.handleTap)
	s.r.Put("/difficulty/{level}", s.handleDifficulty)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Commands is drained by the game loop, each command must be Executed exactly once
func (s *Server) Commands() <-chan Command {
	return s.loop.commands
}

// Router exposes the router for tests
func (s *Server) Router() chi.Router { return s.r }

// Serve listens on addr until ctx is cancelled
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: s.r, ReadHeaderTimeout: constants.HTTPRequestTimeout}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.CommandTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("http control listening")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

// stateResponse is the JSON shape of game.State
type stateResponse struct {
	Phase          string `json:"phase"`
	ActiveCell     *int   `json:"activeCell"`
	Score          int    `json:"score"`
	HighScore      int    `json:"highScore"`
	Difficulty     string `json:"difficulty"`
	GameStarted    bool   `json:"gameStarted"`
	AwaitingAck    bool   `json:"awaitingAck"`
	FinalScore     int    `json:"finalScore"`
	SessionID      string `json:"sessionId,omitempty"`
	SequenceLength int    `json:"sequenceLength"`
	ProgressLength int    `json:"progressLength"`
}

type commandResponse struct {
	Accepted bool          `json:"accepted"`
	State    stateResponse `json:"state"`
}

func newStateResponse(st game.State) stateResponse {
	res := stateResponse{
		Phase:          st.Phase.String(),
		Score:          st.Score,
		HighScore:      st.HighScore,
		Difficulty:     st.Difficulty.Level.String(),
		GameStarted:    st.GameStarted,
		AwaitingAck:    st.AwaitingAck,
		FinalScore:     st.FinalScore,
		SessionID:      st.SessionID,
		SequenceLength: st.SequenceLength,
		ProgressLength: st.ProgressLength,
	}
	if st.HasActiveCell() {
		cell := st.ActiveCell
		res.ActiveCell = &cell
	}
	return res
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(s.state()))
}

func (s *Server) handleTap(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil || cell < 0 || cell >= constants.CellCount {
		writeError(w, http.StatusBadRequest, "cell must be 0-8")
		return
	}
	s.command("tap", func(c Controls) bool { return c.SubmitTap(cell) })(w, r)
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	level, err := game.ParseLevel(chi.URLParam(r, "level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.command("difficulty", func(c Controls) bool { return c.SetDifficulty(level) })(w, r)
}

// command builds a handler that runs fn on the game loop and replies with the resulting state
func (s *Server) command(name string, fn func(Controls) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), constants.CommandTimeout)
		defer cancel()

		accepted, err := s.loop.do(ctx, name, fn)
		if err != nil {
			s.log.Warn().Err(err).Str("command", name).Msg("command dropped")
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, commandResponse{Accepted: accepted, State: newStateResponse(s.state())})
	}
}

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
