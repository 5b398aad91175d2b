package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/fileshare/internal/flash"
	"github.com/templui/fileshare/internal/service"
	"github.com/templui/fileshare/internal/ui"
	"github.com/templui/fileshare/internal/ui/pages"
	"github.com/templui/fileshare/internal/validation"
)

type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
}

func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, "", flash.Pop(w, r))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.authService.Verify(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			slog.Warn("login failed", "username", username, "reason", err)
			h.renderLogin(w, r, username, []flash.Message{{Kind: flash.Error, Text: "Invalid username or password!"}})
			return
		}
		slog.Error("failed to verify credentials", "error", err)
		h.renderLogin(w, r, username, []flash.Message{{Kind: flash.Error, Text: msgGenericError}})
		return
	}

	// A fresh login replaces whatever session the browser held before
	if cookie, err := r.Cookie(service.SessionCookieName); err == nil {
		err = h.sessionService.End(r.Context(), cookie.Value)
		if err != nil {
			slog.Warn("failed to end previous session", "error", err)
		}
	}

	token, expiresAt, err := h.sessionService.Start(r.Context(), user)
	if err != nil {
		slog.Error("failed to start session", "error", err, "user_id", user.ID)
		h.renderLogin(w, r, username, []flash.Message{{Kind: flash.Error, Text: msgGenericError}})
		return
	}

	h.sessionService.SetCookie(w, token, expiresAt)
	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)

	flash.Add(w, r, flash.Success, "Login successful! Welcome back!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, "", flash.Pop(w, r))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	_, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		message := registrationMessage(err)
		if message == "" {
			slog.Error("failed to register user", "error", err)
			message = msgGenericError
		}
		h.renderRegister(w, r, username, []flash.Message{{Kind: flash.Error, Text: message}})
		return
	}

	flash.Add(w, r, flash.Success, "Registration successful! Please login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(service.SessionCookieName); err == nil {
		err = h.sessionService.End(r.Context(), cookie.Value)
		if err != nil {
			slog.Error("failed to end session", "error", err)
		}
	}

	h.sessionService.ClearCookie(w)
	flash.Add(w, r, flash.Success, "Logged out successfully!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, username string, messages []flash.Message) {
	ui.Render(w, r, pages.Login(pages.AuthData{
		Page:         pages.NewPage(r.Context(), "Login", messages),
		FormUsername: username,
	}))
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, username string, messages []flash.Message) {
	ui.Render(w, r, pages.Register(pages.AuthData{
		Page:         pages.NewPage(r.Context(), "Register", messages),
		FormUsername: username,
	}))
}

// registrationMessage maps expected registration failures to user text.
// An empty result means the error was unexpected.
func registrationMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		return "Username already exists! Please choose another."
	case errors.Is(err, validation.ErrUsernameRequired):
		return "Username is required!"
	case errors.Is(err, validation.ErrUsernameTooLong):
		return "Username is too long (max 64 characters)!"
	case errors.Is(err, validation.ErrUsernameInvalid):
		return "Username contains invalid characters!"
	case errors.Is(err, validation.ErrPasswordRequired):
		return "Password is required!"
	case errors.Is(err, validation.ErrPasswordTooLong):
		return "Password is too long (max 72 bytes)!"
	default:
		return ""
	}
}
