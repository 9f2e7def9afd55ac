// Package sessions signs employees in and out and lets them change their
// own password.
package sessions

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
)

const minPasswordLength = 8

func NewHandler(store SessionStore, sessions *auth.Sessions, renderer *web.Renderer) *Handler {
	h := Handler{
		store:    store,
		sessions: sessions,
		renderer: renderer,
	}

	return &h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handlerLoginGet)
	mux.HandleFunc("POST /{$}", h.handlerLoginPost)
	mux.Handle("GET /logout", auth.RequireLogin(http.HandlerFunc(h.handlerLogout)))
	mux.Handle("POST /change_password", auth.RequireLogin(http.HandlerFunc(h.handlerChangePassword)))
}

func (h *Handler) handlerLoginGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerLoginGet")
	defer slog.Debug("<<handlerLoginGet")

	if _, ok := auth.CurrentEmployee(request.Context()); ok {
		http.Redirect(writer, request, "/dashboard", http.StatusFound)
		return
	}

	page := loginPage{
		Frame: web.NewFrame(writer, request, "Login"),
		Next:  request.URL.Query().Get("next"),
	}

	h.renderLogin(writer, page)
}

func (h *Handler) handlerLoginPost(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerLoginPost")
	defer slog.Debug("<<handlerLoginPost")

	email := strings.TrimSpace(request.FormValue("email"))
	password := request.FormValue("password")
	next := request.URL.Query().Get("next")

	employee, err := h.store.GetEmployeeByEmail(request.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.renderLoginFailure(writer, request, next, "Invalid email or password. Please try again.")
			return
		}

		slog.Error("failed to look up the employee", "error", err, "email", email)
		h.renderLoginFailure(writer, request, next, "An unexpected error occurred. Please try again.")
		return
	}

	if !auth.PasswordCorrect(password, employee.PasswordHash) {
		h.renderLoginFailure(writer, request, next, "Invalid email or password. Please try again.")
		return
	}

	token, err := h.sessions.CreateToken(employee)
	if err != nil {
		slog.Error("failed to create a session token", "error", err, "employee_id", employee.ID)
		h.renderLoginFailure(writer, request, next, "An unexpected error occurred. Please try again.")
		return
	}

	auth.SetSessionCookie(writer, token, h.sessions.TTL())
	web.AddFlash(writer, web.FlashSuccess, fmt.Sprintf("Welcome back, %s!", employee.Name))
	http.Redirect(writer, request, auth.SafeNextTarget(next, "/dashboard"), http.StatusSeeOther)
}

func (h *Handler) renderLoginFailure(writer http.ResponseWriter, request *http.Request, next string, message string) {
	page := loginPage{
		Frame: web.NewFrame(writer, request, "Login"),
		Next:  next,
	}
	page.Frame.Flash(web.FlashError, message)

	h.renderLogin(writer, page)
}

func (h *Handler) renderLogin(writer http.ResponseWriter, page loginPage) {
	if err := h.renderer.Render(writer, http.StatusOK, "login.html", page); err != nil {
		slog.Error("failed to render the login page", "error", err)
	}
}

func (h *Handler) handlerLogout(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerLogout")
	defer slog.Debug("<<handlerLogout")

	employee, _ := auth.CurrentEmployee(request.Context())

	auth.ClearSessionCookie(writer)
	web.AddFlash(writer, web.FlashInfo, fmt.Sprintf("You have been successfully logged out, %s.", employee.Name))
	http.Redirect(writer, request, "/", http.StatusFound)
}

func (h *Handler) handlerChangePassword(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerChangePassword")
	defer slog.Debug("<<handlerChangePassword")

	employee, _ := auth.CurrentEmployee(request.Context())

	currentPassword := request.FormValue("current_password")
	newPassword := request.FormValue("new_password")
	confirmPassword := request.FormValue("confirm_password")

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		web.AddFlash(writer, web.FlashError, "All password fields are required.")
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	if newPassword != confirmPassword {
		web.AddFlash(writer, web.FlashError, "New password and confirmation do not match.")
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	if !auth.PasswordCorrect(currentPassword, employee.PasswordHash) {
		web.AddFlash(writer, web.FlashError, "Incorrect current password.")
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	if len(newPassword) < minPasswordLength {
		web.AddFlash(writer, web.FlashWarning, fmt.Sprintf("New password must be at least %d characters long.", minPasswordLength))
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		slog.Error("failed to hash the new password", "error", err, "employee_id", employee.ID)
		web.AddFlash(writer, web.FlashError, "An error occurred while updating your password. Please try again.")
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	err = h.store.UpdateEmployeePassword(request.Context(), database.UpdateEmployeePasswordParams{
		ID:           employee.ID,
		PasswordHash: passwordHash,
	})
	if err != nil {
		slog.Error("failed to update the password", "error", err, "employee_id", employee.ID)
		web.AddFlash(writer, web.FlashError, "An error occurred while updating your password. Please try again.")
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	// The stored hash changed, so the browser has to sign in again.
	auth.ClearSessionCookie(writer)
	web.AddFlash(writer, web.FlashSuccess, "Your password has been updated successfully.")
	http.Redirect(writer, request, "/", http.StatusSeeOther)
}
