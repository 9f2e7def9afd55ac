package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/greentech-systems/greenhouse-server/utils"
)

type contextKey string

const employeeContextKey contextKey = "employee"

// EmployeeStore loads the employee behind a validated session.
type EmployeeStore interface {
	GetEmployee(ctx context.Context, id int64) (database.Employee, error)
}

// Middleware resolves session tokens into employees on incoming requests.
type Middleware struct {
	sessions *Sessions
	store    EmployeeStore
}

func NewMiddleware(sessions *Sessions, store EmployeeStore) *Middleware {
	return &Middleware{
		sessions: sessions,
		store:    store,
	}
}

// WithEmployee stores the employee in the context for handlers downstream.
func WithEmployee(ctx context.Context, employee database.Employee) context.Context {
	return context.WithValue(ctx, employeeContextKey, employee)
}

// CurrentEmployee returns the logged-in employee, if any.
func CurrentEmployee(ctx context.Context) (database.Employee, bool) {
	employee, ok := ctx.Value(employeeContextKey).(database.Employee)
	return employee, ok
}

// Viewer adapts the logged-in employee for the page layout; nil for
// anonymous requests.
func Viewer(ctx context.Context) *web.Viewer {
	employee, ok := CurrentEmployee(ctx)
	if !ok {
		return nil
	}

	return &web.Viewer{
		ID:      employee.ID,
		Name:    employee.Name,
		IsAdmin: employee.IsAdmin,
	}
}

// LoadEmployee validates the request's session token, if present, and puts
// the matching employee into the request context. Requests without a valid
// session pass through anonymously.
func (m *Middleware) LoadEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := TokenFromRequest(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.sessions.ParseToken(token)
		if err != nil {
			slog.Debug("discarding invalid session token", "error", err)
			m.expireSession(w, r)
			next.ServeHTTP(w, r)
			return
		}

		employeeID, err := claims.EmployeeID()
		if err != nil {
			m.expireSession(w, r)
			next.ServeHTTP(w, r)
			return
		}

		employee, err := m.store.GetEmployee(r.Context(), employeeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// The employee behind this session no longer exists.
				m.expireSession(w, r)
			} else {
				slog.Error("failed to load the session employee", "error", err, "employee_id", employeeID)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithEmployee(r.Context(), employee)))
	})
}

func (m *Middleware) expireSession(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(SessionCookieName); err != nil {
		return
	}

	ClearSessionCookie(w)
	web.AddFlash(w, web.FlashWarning, "Your session was invalid. Please log in again.")
}

// RequireLogin sends anonymous visitors to the login page and remembers
// where they were headed.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentEmployee(r.Context()); !ok {
			web.AddFlash(w, web.FlashWarning, "Please log in to access this page.")
			http.Redirect(w, r, "/?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireLoginAPI rejects anonymous requests with a JSON error instead of a
// redirect. JSON and websocket endpoints use this.
func RequireLoginAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentEmployee(r.Context()); !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "authentication required", ErrNoSessionToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
