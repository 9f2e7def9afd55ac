package sessions

import (
	"context"

	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
)

type SessionStore interface {
	GetEmployeeByEmail(ctx context.Context, email string) (database.Employee, error)
	UpdateEmployeePassword(ctx context.Context, arg database.UpdateEmployeePasswordParams) error
}

type loginPage struct {
	Frame web.Frame
	Next  string
}

type Handler struct {
	store    SessionStore
	sessions *auth.Sessions
	renderer *web.Renderer
}
