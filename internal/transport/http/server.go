package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	sloghttp "github.com/samber/slog-http"

	kickDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/kick/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/config"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

// SecretTokenHeader carries webhook_secret on every webhook delivery
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateDispatcher processes one Telegram update to completion
type UpdateDispatcher interface {
	Dispatch(ctx context.Context, update *models.Update)
}

// Kicker runs a fan-out kick
type Kicker interface {
	Kick(ctx context.Context, userID int64) (*kickDomain.Summary, error)
}

// FeedRenderer renders the relay activity feed
type FeedRenderer interface {
	RSS(ctx context.Context, baseURL string) (string, error)
	Atom(ctx context.Context, baseURL string) (string, error)
}

type kickRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// Server handles webhook deliveries, the kick endpoint and the activity feed
type Server struct {
	cfg      *config.Config
	updates  UpdateDispatcher
	kicker   Kicker
	feed     FeedRenderer
	validate *validator.Validate
	logger   *slog.Logger
	server   *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, updates UpdateDispatcher, kicker Kicker, feed FeedRenderer) *Server {
	return &Server{
		cfg:      cfg,
		updates:  updates,
		kicker:   kicker,
		feed:     feed,
		validate: validator.New(),
		logger:   slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handler builds the routed handler with logging and recovery middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.cfg.UpdateMode == config.UpdateModeWebhook {
		mux.HandleFunc("POST "+s.cfg.WebhookPath, s.handleWebhook)
	}
	mux.HandleFunc("POST /kick", s.handleKick)
	mux.HandleFunc("GET /feed.rss", s.handleRSSFeed)
	mux.HandleFunc("GET /feed.atom", s.handleAtomFeed)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)
	return handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("HTTP server starting", "addr", addr, "mode", s.cfg.UpdateMode)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("HTTP server stopping")
		return s.server.Shutdown(shutdownCtx)
	}
}

// handleWebhook always acknowledges an accepted delivery, even when the
// body is unusable, so Telegram does not redeliver it.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.cfg.WebhookSecret != "" && !secretEqual(r.Header.Get(SecretTokenHeader), s.cfg.WebhookSecret) {
		s.logger.Warn("Webhook delivery with invalid secret token", "remote_addr", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, errors.ErrInvalidCredential)
		return
	}

	var update models.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.logger.Warn("Malformed webhook payload", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	s.updates.Dispatch(context.WithoutCancel(r.Context()), &update)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleKick(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || s.cfg.KickSecret == "" || !secretEqual(token, s.cfg.KickSecret) {
		writeError(w, http.StatusUnauthorized, errors.ErrInvalidCredential)
		return
	}

	req, err := s.parseKickRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// A kick runs to completion even if the caller goes away
	summary, err := s.kicker.Kick(context.WithoutCancel(r.Context()), req.UserID)
	if err != nil {
		if stderrors.Is(err, errors.ErrValidation) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.logger.Error("Kick failed", "user_id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// parseKickRequest reads user_id from the JSON body, falling back to the query string
func (s *Server) parseKickRequest(r *http.Request) (*kickRequest, error) {
	var req kickRequest

	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: user_id must be an integer", errors.ErrValidation)
		}
		req.UserID = id
	} else if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON body", errors.ErrValidation)
		}
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: user_id is required", errors.ErrValidation)
	}
	return &req, nil
}

func (s *Server) handleRSSFeed(w http.ResponseWriter, r *http.Request) {
	rss, err := s.feed.RSS(r.Context(), baseURL(r))
	if err != nil {
		s.logger.Error("Error generating RSS feed", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleAtomFeed(w http.ResponseWriter, r *http.Request) {
	atom, err := s.feed.Atom(r.Context(), baseURL(r))
	if err != nil {
		s.logger.Error("Error generating Atom feed", "error", err)
		http.Error(w, "Failed to generate Atom", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(atom))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	html := `<!DOCTYPE html>
<html>
<head>
    <title>Telegram Channel Relay</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        code { background: #e8e8e8; padding: 2px 6px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>Telegram Channel Relay</h1>
    <p>Recent relayed posts: <a href="/feed.rss"><code>/feed.rss</code></a> or <a href="/feed.atom"><code>/feed.atom</code></a></p>
    <p><a href="/health">Health Check</a></p>
</body>
</html>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func secretEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func baseURL(r *http.Request) string {
	return fmt.Sprintf("%s://%s", getScheme(r), r.Host)
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
