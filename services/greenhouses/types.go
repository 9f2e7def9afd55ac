package greenhouses

import (
	"context"

	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
)

type GreenhouseStore interface {
	ListGreenhousesByName(ctx context.Context) ([]database.Greenhouse, error)
	CreateGreenhouse(ctx context.Context, arg database.CreateGreenhouseParams) (database.Greenhouse, error)
}

type GreenhouseRow struct {
	ID       int64
	Name     string
	Location string
	Status   string
}

func databaseGreenhouseToRow(greenhouse database.Greenhouse) GreenhouseRow {
	return GreenhouseRow{
		ID:       greenhouse.ID,
		Name:     greenhouse.Name,
		Location: greenhouse.Location,
		Status:   greenhouse.Status,
	}
}

type greenhousesPage struct {
	Frame       web.Frame
	Greenhouses []GreenhouseRow
}

type createGreenhousePage struct {
	Frame web.Frame
}

type Handler struct {
	store    GreenhouseStore
	renderer *web.Renderer
}
