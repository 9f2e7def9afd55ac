// Package employees manages the employee roster: the listing, admin-driven
// account creation with mailed credentials, profile editing, and a JSON
// detail endpoint.
package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/greentech-systems/greenhouse-server/utils"
	"github.com/samber/lo"
)

const (
	temporaryPasswordLength = 12
	welcomeSubject          = "Welcome to GreenTech Monitoring - Your Account Details"
)

func NewHandler(store EmployeeStore, mailer Mailer, renderer *web.Renderer, baseURL string) *Handler {
	h := Handler{
		store:    store,
		mailer:   mailer,
		renderer: renderer,
		baseURL:  baseURL,
	}

	return &h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /view_employees", auth.RequireLogin(http.HandlerFunc(h.handlerEmployeesGet)))
	mux.Handle("GET /create_employee", auth.RequireLogin(http.HandlerFunc(h.handlerCreateEmployeeGet)))
	mux.Handle("POST /create_employee", auth.RequireLogin(http.HandlerFunc(h.handlerCreateEmployeePost)))
	mux.Handle("GET /employee/edit/{employeeID}", auth.RequireLogin(http.HandlerFunc(h.handlerEditEmployeeGet)))
	mux.Handle("POST /employee/edit/{employeeID}", auth.RequireLogin(http.HandlerFunc(h.handlerEditEmployeePost)))
	mux.Handle("GET /api/employee/{employeeID}", auth.RequireLoginAPI(http.HandlerFunc(h.handlerEmployeeDetailGet)))
}

func (h *Handler) handlerEmployeesGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerEmployeesGet")
	defer slog.Debug("<<handlerEmployeesGet")

	page := viewEmployeesPage{
		Frame: web.NewFrame(writer, request, "Employees"),
	}
	page.Frame.Viewer = auth.Viewer(request.Context())

	rows, err := h.store.ListEmployees(request.Context())
	if err != nil {
		if database.IsMissingRelation(err) {
			page.Frame.Flash(web.FlashError, "Database tables not found. Run 'greenhouse-server init-db'.")
		} else {
			slog.Error("failed to list employees", "error", err)
			page.Frame.Flash(web.FlashError, "An unexpected error occurred viewing employees.")
		}
	} else {
		page.Employees = lo.Map(rows, func(row database.ListEmployeesRow, _ int) employeeRow {
			return databaseEmployeeToRow(row)
		})
	}

	if err := h.renderer.Render(writer, http.StatusOK, "view_employees.html", page); err != nil {
		slog.Error("failed to render the employees page", "error", err)
	}
}

// requireAdmin guards the create form. Non-admins are bounced to the
// dashboard with an error flash.
func (h *Handler) requireAdmin(writer http.ResponseWriter, request *http.Request) bool {
	employee, _ := auth.CurrentEmployee(request.Context())
	if employee.IsAdmin {
		return true
	}

	web.AddFlash(writer, web.FlashError, "You do not have permission to create new employees.")
	http.Redirect(writer, request, "/dashboard", http.StatusSeeOther)

	return false
}

func (h *Handler) handlerCreateEmployeeGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerCreateEmployeeGet")
	defer slog.Debug("<<handlerCreateEmployeeGet")

	if !h.requireAdmin(writer, request) {
		return
	}

	h.renderCreateEmployee(writer, request, "", "")
}

func (h *Handler) handlerCreateEmployeePost(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerCreateEmployeePost")
	defer slog.Debug("<<handlerCreateEmployeePost")

	if !h.requireAdmin(writer, request) {
		return
	}

	name := strings.TrimSpace(request.FormValue("name"))
	email := strings.TrimSpace(request.FormValue("email"))
	isAdmin := request.FormValue("is_admin") != ""

	if name == "" || email == "" {
		h.renderCreateEmployee(writer, request, web.FlashWarning, "Name and email are required.")
		return
	}

	_, err := h.store.GetEmployeeByEmail(request.Context(), email)
	switch {
	case err == nil:
		h.renderCreateEmployee(writer, request, web.FlashError, "An employee with this email already exists.")
		return
	case !errors.Is(err, sql.ErrNoRows):
		slog.Error("failed to check the employee email", "error", err, "email", email)
		h.renderCreateEmployee(writer, request, web.FlashError, "An error occurred while creating the employee.")
		return
	}

	greenhouseID := sql.NullInt64{}
	if raw := request.FormValue("greenhouse_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if _, err := h.store.GetGreenhouse(request.Context(), id); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					h.renderCreateEmployee(writer, request, web.FlashError, "Selected greenhouse does not exist.")
					return
				}

				slog.Error("failed to check the greenhouse", "error", err, "greenhouse_id", id)
				h.renderCreateEmployee(writer, request, web.FlashError, "An error occurred while creating the employee.")
				return
			}
			greenhouseID = sql.NullInt64{Int64: id, Valid: true}
		}
	}

	password, err := auth.GeneratePassword(temporaryPasswordLength)
	if err != nil {
		slog.Error("failed to generate a temporary password", "error", err)
		h.renderCreateEmployee(writer, request, web.FlashError, "An error occurred while creating the employee.")
		return
	}

	companyID, err := h.uniqueCompanyID(request.Context())
	if err != nil {
		slog.Error("failed to generate a company id", "error", err)
		h.renderCreateEmployee(writer, request, web.FlashError, "An error occurred while creating the employee.")
		return
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("failed to hash the temporary password", "error", err)
		h.renderCreateEmployee(writer, request, web.FlashError, "An error occurred while creating the employee.")
		return
	}

	created, err := h.store.CreateEmployee(request.Context(), database.CreateEmployeeParams{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Available:    true,
		GreenhouseID: greenhouseID,
		CompanyID:    companyID,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			h.renderCreateEmployee(writer, request, web.FlashError, "An employee with this email already exists.")
			return
		}

		slog.Error("failed to create the employee", "error", err, "email", email)
		h.renderCreateEmployee(writer, request, web.FlashError, "An error occurred while creating the employee.")
		return
	}

	slog.Info("created employee",
		"name", created.Name,
		"email", created.Email,
		"company_id", created.CompanyID,
		"is_admin", created.IsAdmin)

	if h.mailer.Enabled() {
		body := welcomeEmailBody(name, email, password, h.baseURL)
		if err := h.mailer.Send(request.Context(), welcomeSubject, body, email); err != nil {
			slog.Error("failed to send the welcome email", "error", err, "email", email)
			web.AddFlash(writer, web.FlashWarning,
				fmt.Sprintf("Employee '%s' created successfully, BUT failed to send the welcome email.", name))
			web.AddFlash(writer, web.FlashInfo,
				fmt.Sprintf("Please manually provide the password to the user: %s", password))
		} else {
			web.AddFlash(writer, web.FlashSuccess,
				fmt.Sprintf("Employee '%s' created successfully! Credentials have been emailed to %s.", name, email))
		}
	} else {
		web.AddFlash(writer, web.FlashInfo,
			fmt.Sprintf("Employee '%s' created successfully! Email notifications are disabled.", name))
		web.AddFlash(writer, web.FlashInfo,
			fmt.Sprintf("Please manually provide the password to the user: %s", password))
	}

	http.Redirect(writer, request, "/view_employees", http.StatusSeeOther)
}

// uniqueCompanyID draws ids until one is free. Collisions are rare with a
// six digit space, so the loop almost always runs once.
func (h *Handler) uniqueCompanyID(ctx context.Context) (string, error) {
	for {
		companyID, err := auth.GenerateCompanyID()
		if err != nil {
			return "", err
		}

		exists, err := h.store.CompanyIDExists(ctx, companyID)
		if err != nil {
			return "", err
		}
		if !exists {
			return companyID, nil
		}
	}
}

func welcomeEmailBody(name, email, password, baseURL string) string {
	return fmt.Sprintf(`Hello %s,

Welcome to the GreenTech Monitoring System!
Your account has been created successfully.

You can log in using the following credentials:
Email: %s
Temporary Password: %s

Please log in at %s

We strongly recommend changing this password via your profile settings after your first login for security reasons.

Regards,
The GreenTech Team
`, name, email, password, baseURL)
}

func (h *Handler) renderCreateEmployee(writer http.ResponseWriter, request *http.Request, category, message string) {
	greenhouses, err := h.store.ListGreenhousesByName(request.Context())
	if err != nil {
		slog.Error("failed to list greenhouses for the create form", "error", err)
	}

	page := createEmployeePage{
		Frame:       web.NewFrame(writer, request, "Create Employee"),
		Greenhouses: greenhouses,
	}
	page.Frame.Viewer = auth.Viewer(request.Context())
	if message != "" {
		page.Frame.Flash(category, message)
	}

	if err := h.renderer.Render(writer, http.StatusOK, "create_employee.html", page); err != nil {
		slog.Error("failed to render the create employee page", "error", err)
	}
}

// loadEditTarget resolves the employee being edited and enforces that only
// admins or the employee themselves may edit the record.
func (h *Handler) loadEditTarget(writer http.ResponseWriter, request *http.Request) (database.Employee, bool) {
	employeeID, err := strconv.ParseInt(request.PathValue("employeeID"), 10, 64)
	if err != nil {
		http.NotFound(writer, request)
		return database.Employee{}, false
	}

	target, err := h.store.GetEmployee(request.Context(), employeeID)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(writer, request)
		return database.Employee{}, false
	}
	if err != nil {
		slog.Error("failed to load the employee", "error", err, "employee_id", employeeID)
		web.AddFlash(writer, web.FlashError, "An unexpected error occurred loading the employee.")
		http.Redirect(writer, request, "/view_employees", http.StatusSeeOther)
		return database.Employee{}, false
	}

	current, _ := auth.CurrentEmployee(request.Context())
	if !current.IsAdmin && current.ID != target.ID {
		web.AddFlash(writer, web.FlashError, "You do not have permission to edit this employee.")
		http.Redirect(writer, request, "/view_employees", http.StatusSeeOther)
		return database.Employee{}, false
	}

	return target, true
}

func (h *Handler) handlerEditEmployeeGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerEditEmployeeGet")
	defer slog.Debug("<<handlerEditEmployeeGet")

	target, ok := h.loadEditTarget(writer, request)
	if !ok {
		return
	}

	h.renderEditEmployee(writer, request, target, "", "")
}

func (h *Handler) handlerEditEmployeePost(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerEditEmployeePost")
	defer slog.Debug("<<handlerEditEmployeePost")

	target, ok := h.loadEditTarget(writer, request)
	if !ok {
		return
	}

	current, _ := auth.CurrentEmployee(request.Context())

	target.Name = strings.TrimSpace(request.FormValue("name"))
	newEmail := strings.TrimSpace(request.FormValue("email"))
	target.Available = request.FormValue("available") != ""
	if current.IsAdmin {
		target.IsAdmin = request.FormValue("is_admin") != ""
	}

	if target.Name == "" || newEmail == "" {
		h.renderEditEmployee(writer, request, target, web.FlashWarning, "Name and email cannot be empty.")
		return
	}

	if newEmail != target.Email {
		inUse, err := h.store.EmailInUseByOther(request.Context(), database.EmailInUseByOtherParams{
			Email: newEmail,
			ID:    target.ID,
		})
		if err != nil {
			slog.Error("failed to check the email", "error", err, "email", newEmail)
			h.renderEditEmployee(writer, request, target, web.FlashError, "An error occurred while updating the employee.")
			return
		}
		if inUse {
			h.renderEditEmployee(writer, request, target, web.FlashError, "Another employee is already using that email address.")
			return
		}
		target.Email = newEmail
	}

	target.GreenhouseID = sql.NullInt64{}
	if raw := request.FormValue("greenhouse_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.renderEditEmployee(writer, request, target, web.FlashError, "Invalid greenhouse selected.")
			return
		}

		if _, err := h.store.GetGreenhouse(request.Context(), id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				h.renderEditEmployee(writer, request, target, web.FlashError, "Invalid greenhouse selected.")
				return
			}

			slog.Error("failed to check the greenhouse", "error", err, "greenhouse_id", id)
			h.renderEditEmployee(writer, request, target, web.FlashError, "An error occurred while updating the employee.")
			return
		}

		target.GreenhouseID = sql.NullInt64{Int64: id, Valid: true}
	}

	updated, err := h.store.UpdateEmployee(request.Context(), database.UpdateEmployeeParams{
		ID:           target.ID,
		Name:         target.Name,
		Email:        target.Email,
		Available:    target.Available,
		GreenhouseID: target.GreenhouseID,
		IsAdmin:      target.IsAdmin,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			h.renderEditEmployee(writer, request, target, web.FlashError, "Another employee is already using that email address.")
			return
		}

		slog.Error("failed to update the employee", "error", err, "employee_id", target.ID)
		h.renderEditEmployee(writer, request, target, web.FlashError, "An error occurred while updating the employee.")
		return
	}

	web.AddFlash(writer, web.FlashSuccess, fmt.Sprintf("Employee '%s' updated successfully!", updated.Name))
	http.Redirect(writer, request, "/view_employees", http.StatusSeeOther)
}

func (h *Handler) renderEditEmployee(writer http.ResponseWriter, request *http.Request, target database.Employee, category, message string) {
	greenhouses, err := h.store.ListGreenhousesByName(request.Context())
	if err != nil {
		slog.Error("failed to list greenhouses for the edit form", "error", err)
	}

	current, _ := auth.CurrentEmployee(request.Context())

	page := editEmployeePage{
		Frame:              web.NewFrame(writer, request, "Edit Employee"),
		Employee:           target,
		Greenhouses:        greenhouses,
		CurrentUserIsAdmin: current.IsAdmin,
	}
	page.Frame.Viewer = auth.Viewer(request.Context())
	if message != "" {
		page.Frame.Flash(category, message)
	}

	if err := h.renderer.Render(writer, http.StatusOK, "edit_employee.html", page); err != nil {
		slog.Error("failed to render the edit employee page", "error", err)
	}
}

func (h *Handler) handlerEmployeeDetailGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerEmployeeDetailGet")
	defer slog.Debug("<<handlerEmployeeDetailGet")

	employeeID, err := strconv.ParseInt(request.PathValue("employeeID"), 10, 64)
	if err != nil {
		utils.RespondWithError(writer, http.StatusNotFound, "Employee not found", err)
		return
	}

	detail, err := h.store.GetEmployeeDetail(request.Context(), employeeID)
	if errors.Is(err, sql.ErrNoRows) {
		utils.RespondWithError(writer, http.StatusNotFound, "Employee not found", err)
		return
	}
	if err != nil {
		utils.RespondWithError(writer, http.StatusInternalServerError, "failed to load the employee", err)
		return
	}

	utils.RespondWithJSON(writer, http.StatusOK, databaseEmployeeDetailToResponse(detail))
}
