package employees

import (
	"context"

	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
)

type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]database.ListEmployeesRow, error)
	GetEmployee(ctx context.Context, id int64) (database.Employee, error)
	GetEmployeeDetail(ctx context.Context, id int64) (database.GetEmployeeDetailRow, error)
	GetEmployeeByEmail(ctx context.Context, email string) (database.Employee, error)
	EmailInUseByOther(ctx context.Context, arg database.EmailInUseByOtherParams) (bool, error)
	CompanyIDExists(ctx context.Context, companyID string) (bool, error)
	CreateEmployee(ctx context.Context, arg database.CreateEmployeeParams) (database.Employee, error)
	UpdateEmployee(ctx context.Context, arg database.UpdateEmployeeParams) (database.Employee, error)
	GetGreenhouse(ctx context.Context, id int64) (database.Greenhouse, error)
	ListGreenhousesByName(ctx context.Context) ([]database.Greenhouse, error)
}

// Mailer is the slice of the notifier the employee service needs.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, subject, body string, recipients ...string) error
}

type employeeRow struct {
	ID                int64
	Name              string
	Email             string
	CompanyID         string
	GreenhouseDisplay string
	Available         bool
	IsAdmin           bool
}

func databaseEmployeeToRow(employee database.ListEmployeesRow) employeeRow {
	row := employeeRow{
		ID:                employee.ID,
		Name:              employee.Name,
		Email:             employee.Email,
		CompanyID:         employee.CompanyID,
		GreenhouseDisplay: "Unassigned",
		Available:         employee.Available,
		IsAdmin:           employee.IsAdmin,
	}

	if employee.GreenhouseName.Valid {
		row.GreenhouseDisplay = employee.GreenhouseName.String
	}

	return row
}

type viewEmployeesPage struct {
	Frame     web.Frame
	Employees []employeeRow
}

type createEmployeePage struct {
	Frame       web.Frame
	Greenhouses []database.Greenhouse
}

type editEmployeePage struct {
	Frame              web.Frame
	Employee           database.Employee
	Greenhouses        []database.Greenhouse
	CurrentUserIsAdmin bool
}

type employeeGreenhouse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type employeeDetailResponse struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	CompanyID  string              `json:"company_id"`
	Available  bool                `json:"available"`
	IsAdmin    bool                `json:"is_admin"`
	Greenhouse *employeeGreenhouse `json:"greenhouse"`
}

func databaseEmployeeDetailToResponse(detail database.GetEmployeeDetailRow) employeeDetailResponse {
	response := employeeDetailResponse{
		ID:        detail.ID,
		Name:      detail.Name,
		Email:     detail.Email,
		CompanyID: detail.CompanyID,
		Available: detail.Available,
		IsAdmin:   detail.IsAdmin,
	}

	if detail.GreenhouseID.Valid {
		response.Greenhouse = &employeeGreenhouse{
			ID:       detail.GreenhouseID.Int64,
			Name:     detail.GreenhouseName.String,
			Location: detail.GreenhouseLocation.String,
		}
	}

	return response
}

type Handler struct {
	store    EmployeeStore
	mailer   Mailer
	renderer *web.Renderer
	baseURL  string
}
