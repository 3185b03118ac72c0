package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"workhub/internal/domain/directory"
	"workhub/internal/session"
	"workhub/internal/transport/http/api"
	"workhub/internal/transport/http/middleware"
	"workhub/internal/transport/http/shared"
)

type Handler struct {
	Directory  *directory.Service
	Sessions   session.Store
	CookieName string
	// CookieTTL mirrors the store's sliding timeout so the cookie expiry
	// and the server-side expiry line up.
	CookieTTL    time.Duration
	CookieSecure bool
}

func NewHandler(dir *directory.Service, sessions session.Store, cookieName string, cookieTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{
		Directory:    dir,
		Sessions:     sessions,
		CookieName:   cookieName,
		CookieTTL:    cookieTTL,
		CookieSecure: cookieSecure,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.With(middleware.RequireAuth).Get("/me", h.handleMe)
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	if !strings.Contains(payload.Email, "@") {
		v.Add("email", "must be a valid email address")
	}
	if len(payload.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	v.Enum("role", payload.Role, []string{directory.RoleEmployee, directory.RoleAdmin}, "must be Employee or Admin")
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Directory.Register(r.Context(), payload.Name, payload.Email, payload.Password, payload.Role)
	if errors.Is(err, directory.ErrEmailTaken) {
		api.Fail(w, http.StatusConflict, "email_taken", "email already registered", reqID)
		return
	}
	if errors.Is(err, directory.ErrInvalidRole) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid role", reqID)
		return
	}
	if err != nil {
		slog.Warn("register failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "registration failed", reqID)
		return
	}

	api.Created(w, emp, reqID)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	emp, err := h.Directory.Authenticate(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, directory.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid email or password", reqID)
		return
	}
	if err != nil {
		slog.Warn("login failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "login failed", reqID)
		return
	}

	token, err := h.Sessions.Create(r.Context(), session.Data{UserID: emp.ID, Email: emp.Email, Role: emp.Role})
	if err != nil {
		slog.Warn("session create failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "login failed", reqID)
		return
	}

	session.WriteCookie(w, h.CookieName, token, h.CookieTTL, h.CookieSecure)
	api.Success(w, identityResponse{UserID: emp.ID, Email: emp.Email, Role: emp.Role}, reqID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if token := middleware.GetSessionToken(r.Context()); token != "" {
		if err := h.Sessions.Destroy(r.Context(), token); err != nil {
			slog.Warn("session destroy failed", "err", err)
		}
	}
	session.ClearCookie(w, h.CookieName, h.CookieSecure)
	api.Success(w, map[string]bool{"loggedOut": true}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	api.Success(w, identityResponse{UserID: user.UserID, Email: user.Email, Role: user.Role}, reqID)
}
