package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	breathingdto "mindful/internal/modules/breathing/dto"
	breathingin "mindful/internal/modules/breathing/port/in"
	chatdto "mindful/internal/modules/chat/dto"
	chatin "mindful/internal/modules/chat/port/in"
	crisisin "mindful/internal/modules/crisis/port/in"
	identitydto "mindful/internal/modules/identity/dto"
	identityin "mindful/internal/modules/identity/port/in"
	mooddto "mindful/internal/modules/mood/dto"
	moodin "mindful/internal/modules/mood/port/in"
	resourcesdto "mindful/internal/modules/resources/dto"
	resourcesin "mindful/internal/modules/resources/port/in"
	apperrors "mindful/internal/platform/errors"
)

const maxBodyBytes = 64 << 10

type Deps struct {
	Identity  identityin.Usecase
	Mood      moodin.Usecase
	Chat      chatin.Usecase
	Breathing breathingin.Usecase
	Crisis    crisisin.Usecase
	Resources resourcesin.Usecase
	Logger    *zap.Logger
}

type Server struct {
	deps   Deps
	logger *zap.Logger
}

func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{deps: deps, logger: logger.Named("http")}
}

type userKey struct{}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/crisis", s.getCrisis).Methods(http.MethodGet)
	r.HandleFunc("/resources", s.listResources).Methods(http.MethodGet)

	private := r.NewRoute().Subrouter()
	private.Use(s.basicAuth)
	private.HandleFunc("/mood", s.listMood).Methods(http.MethodGet)
	private.HandleFunc("/mood", s.logMood).Methods(http.MethodPost)
	private.HandleFunc("/mood/stats", s.moodStats).Methods(http.MethodGet)
	private.HandleFunc("/chat", s.chatHistory).Methods(http.MethodGet)
	private.HandleFunc("/chat", s.sendChat).Methods(http.MethodPost)
	private.HandleFunc("/breathing", s.breathingHistory).Methods(http.MethodGet)
	private.HandleFunc("/breathing", s.recordBreathing).Methods(http.MethodPost)
	private.HandleFunc("/breathing/stats", s.breathingStats).Methods(http.MethodGet)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="mindful"`)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ident, err := s.deps.Identity.Authenticate(r.Context(), identitydto.SignInInput{Email: email, Password: password})
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="mindful"`)
			s.fail(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, ident.UserID)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userKey{}).(string)
	return id
}

func (s *Server) getCrisis(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Crisis.Directory())
}

func (s *Server) listResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := s.deps.Resources.Filter(r.Context(), resourcesdto.FilterInput{Search: q.Get("q"), Category: q.Get("category")})
	if err != nil {
		s.fail(w, err)
		return
	}
	out := make([]resourceJSON, 0, len(items))
	for _, it := range items {
		out = append(out, resourceJSON{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Category:    it.Category,
			Type:        it.Type,
			URL:         it.URL,
			Tags:        it.Tags,
			ReadTime:    it.ReadTime,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listMood(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.fail(w, err)
		return
	}
	entries, err := s.deps.Mood.Recent(r.Context(), userID(r), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	out := make([]moodJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toMoodJSON(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) logMood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level int    `json:"level"`
		Note  string `json:"note"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	entry, err := s.deps.Mood.Log(r.Context(), mooddto.LogInput{UserID: userID(r), Level: req.Level, Note: req.Note})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMoodJSON(entry))
}

func (s *Server) moodStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Mood.Stats(r.Context(), userID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": stats.Count, "average": stats.Average})
}

func (s *Server) chatHistory(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.deps.Chat.History(r.Context(), userID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	out := make([]messageJSON, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageJSON(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) sendChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	res, err := s.deps.Chat.Send(r.Context(), chatdto.SendInput{UserID: userID(r), Content: req.Message})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  toMessageJSON(res.UserMessage),
		"reply":    toMessageJSON(res.Reply),
		"category": res.Category,
		"source":   res.Source,
		"stored":   res.Stored,
	})
}

func (s *Server) breathingHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.fail(w, err)
		return
	}
	sessions, err := s.deps.Breathing.History(r.Context(), userID(r), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	out := make([]sessionJSON, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionJSON(sess))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) recordBreathing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CyclesCompleted int `json:"cycles_completed"`
		DurationMinutes int `json:"duration_minutes"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	sess, err := s.deps.Breathing.Record(r.Context(), breathingdto.RecordInput{
		UserID:          userID(r),
		CyclesCompleted: req.CyclesCompleted,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionJSON(sess))
}

func (s *Server) breathingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Breathing.Stats(r.Context(), userID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"sessions":      stats.Sessions,
		"total_cycles":  stats.TotalCycles,
		"total_minutes": stats.TotalMinutes,
	})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", apperrors.ErrInvalidInput, key)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
