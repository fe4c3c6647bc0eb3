package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"livelong/internal/app"
	"livelong/internal/domain"
	"livelong/internal/util"
)

// GalleryRoute is the public route the landing-page preview links to.
const GalleryRoute = "/showcase"

const defaultMaxUploadBytes = 10 * 1024 * 1024

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	MaxUploadBytes int64
}

// Server exposes the site's JSON API.
type Server struct {
	app            *app.App
	mux            *http.ServeMux
	maxUploadBytes int64
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	s := &Server{
		app:            cfg.App,
		mux:            http.NewServeMux(),
		maxUploadBytes: maxUpload,
	}
	s.routes()
	return s
}

// Router returns the configured handler wrapped in the middleware chain.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// public reads + contact form
	s.mux.HandleFunc("/api/home", s.handleHome)
	s.mux.HandleFunc("/api/showcase", s.handleShowcase)
	s.mux.HandleFunc("/api/showcase/preview", s.handleShowcasePreview)
	s.mux.HandleFunc("/api/journal", s.handleJournal)
	s.mux.HandleFunc("/api/journal/", s.handleJournalByID)
	s.mux.HandleFunc("/api/messages", s.handleContactForm)

	// admin session
	s.mux.HandleFunc("/api/admin/login", s.handleLogin)
	s.mux.HandleFunc("/api/admin/session", s.handleSession)
	s.mux.Handle("/api/admin/logout", s.authenticated(s.handleLogout))

	// admin workflows
	s.mux.Handle("/api/admin/showcase", s.authenticated(s.handleAdminShowcase))
	s.mux.Handle("/api/admin/journal", s.authenticated(s.handleAdminJournal))
	s.mux.Handle("/api/admin/messages", s.authenticated(s.handleAdminMessages))
	s.mux.Handle("/api/admin/messages/", s.authenticated(s.handleAdminMessageByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type authHandler func(http.ResponseWriter, *http.Request, domain.Admin)

// authenticated gates admin routes on a valid session token.
func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.audit(r, "admin.authorize", "fail", "reason", "missing_token")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		admin, ok := s.app.AdminFromToken(token)
		if !ok {
			s.audit(r, "admin.authorize", "fail", "reason", "invalid_or_expired_token")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, admin)
	})
}

// session handlers

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	admin, token, err := s.app.Login(req.Email, req.Password)
	if err != nil {
		s.audit(r, "admin.login", "fail", "reason", err.Error())
		writeAppError(w, err)
		return
	}
	s.audit(r, "admin.login", "success", "admin_id", admin.ID)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Admin: admin})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	token, ok := bearerToken(r)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	admin, ok := s.app.AdminFromToken(token)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "admin": admin})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, admin domain.Admin) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	token, _ := bearerToken(r)
	if err := s.app.Logout(token); err != nil {
		s.audit(r, "admin.logout", "fail", "admin_id", admin.ID, "reason", err.Error())
		writeAppError(w, err)
		return
	}
	s.audit(r, "admin.logout", "success", "admin_id", admin.ID)
	w.WriteHeader(http.StatusNoContent)
}

// public handlers

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	content, err := s.app.HomeContent()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleShowcase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	items, err := s.app.ListShowcase()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

func (s *Server) handleShowcasePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	items, err := s.app.PreviewShowcase()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":   items,
		"count":   len(items),
		"seeMore": GalleryRoute,
	})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	entries, err := s.app.ListJournal()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": entries,
		"count": len(entries),
	})
}

func (s *Server) handleJournalByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/journal/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	entry, err := s.app.GetJournalEntry(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req contactRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	msg, err := s.app.SubmitContactMessage(req.Name, req.Email, req.Message)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// admin workflow handlers

func (s *Server) handleAdminShowcase(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	title := r.FormValue("title")
	file, header, err := r.FormFile("image")
	if err != nil {
		// Title validation still runs first so the response names the right
		// missing field.
		if strings.TrimSpace(title) == "" {
			writeAppError(w, app.ErrTitleRequired)
			return
		}
		writeAppError(w, app.ErrImageRequired)
		return
	}
	defer file.Close()
	item, err := s.app.UploadShowcaseItem(r.Context(), title, header.Filename, file, header.Size)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type journalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleAdminJournal(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req journalRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	entry, err := s.app.AddJournalEntry(req.Title, req.Content)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleAdminMessages(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	msgs, err := s.app.ListContactMessages()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": msgs,
		"count": len(msgs),
	})
}

func (s *Server) handleAdminMessageByID(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/messages/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	remaining, err := s.app.DeleteContactMessage(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": remaining,
		"count": len(remaining),
	})
}

// helpers

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAppError maps workflow errors onto the HTTP surface. Validation
// failures and bad credentials echo their message; infrastructure failures
// name the failing step without leaking internals.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case app.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, app.ErrInvalidCredentials.Error())
	case errors.Is(err, app.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, app.ErrEntryNotFound.Error())
	case errors.Is(err, app.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, app.ErrMessageNotFound.Error())
	case errors.Is(err, app.ErrImageUploadFailed):
		slog.Error("showcase upload failed", "err", err)
		writeError(w, http.StatusBadGateway, app.ErrImageUploadFailed.Error())
	case errors.Is(err, app.ErrShowcaseSaveFailed):
		slog.Error("showcase insert failed", "err", err)
		writeError(w, http.StatusBadGateway, app.ErrShowcaseSaveFailed.Error())
	default:
		slog.Error("request failed", "err", err)
		writeError(w, http.StatusBadGateway, "service temporarily unavailable")
	}
}

func (s *Server) audit(r *http.Request, event, outcome string, attrs ...any) {
	logAttrs := []any{
		"event", event,
		"outcome", outcome,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", util.ClientIP(r),
		"request_id", util.RequestIDFromContext(r.Context()),
	}
	logAttrs = append(logAttrs, attrs...)
	if outcome == "success" {
		slog.Info("security_event", logAttrs...)
		return
	}
	slog.Warn("security_event", logAttrs...)
}
