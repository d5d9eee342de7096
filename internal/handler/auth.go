package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/petpawtner/petpawtner/internal/middleware"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/petpawtner/petpawtner/internal/ui"
	"github.com/petpawtner/petpawtner/internal/ui/pages"
	"github.com/petpawtner/petpawtner/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Signup(""))
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")
	password2 := r.FormValue("password2")

	user, err := h.authService.Signup(username, email, password, password2)
	if err != nil {
		// Validation and conflict failures are a normal form-retry path.
		var invalid validation.Error
		switch {
		case errors.Is(err, service.ErrPasswordMismatch),
			errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailTaken):
			ui.Render(w, r, pages.Signup(err.Error()))
		case errors.As(err, &invalid):
			ui.Render(w, r, pages.Signup(invalid.Error()))
		default:
			slog.Error("signup failed", "error", err, "username", username)
			ui.Render(w, r, pages.Signup("Could not create your account. Please try again."))
		}
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate session token", "error", err, "user_id", user.ID)
		ui.Render(w, r, pages.Signup("Could not create your account. Please try again."))
		return
	}
	h.authService.SetSessionCookie(w, token)

	// New accounts go straight to profile completion.
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *AuthHandler) SigninPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Signin("", r.URL.Query().Get("next")))
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	next := r.URL.Query().Get("next")

	user, err := h.authService.Login(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ui.Render(w, r, pages.Signin("Invalid username or password", next))
			return
		}
		slog.Error("signin failed", "error", err, "username", username)
		ui.Render(w, r, pages.Signin("Something went wrong. Please try again.", next))
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate session token", "error", err, "user_id", user.ID)
		ui.Render(w, r, pages.Signin("Something went wrong. Please try again.", next))
		return
	}
	h.authService.SetSessionCookie(w, token)

	slog.Info("user signed in", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, middleware.SafeNext(next), http.StatusSeeOther)
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}
