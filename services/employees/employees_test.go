package employees

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/lib/pq"
)

type sentMail struct {
	subject    string
	body       string
	recipients []string
}

type mockMailer struct {
	enabled bool
	sendErr error
	sent    []sentMail
}

func (m *mockMailer) Enabled() bool {
	return m.enabled
}

func (m *mockMailer) Send(ctx context.Context, subject, body string, recipients ...string) error {
	if m.sendErr != nil {
		return m.sendErr
	}

	m.sent = append(m.sent, sentMail{subject: subject, body: body, recipients: recipients})

	return nil
}

type mockEmployeeStore struct {
	employees   []database.ListEmployeesRow
	listErr     error
	byID        map[int64]database.Employee
	detail      *database.GetEmployeeDetailRow
	byEmail     map[string]database.Employee
	emailInUse  bool
	usedIDs     map[string]bool
	created     []database.CreateEmployeeParams
	createErr   error
	updated     []database.UpdateEmployeeParams
	updateErr   error
	greenhouses []database.Greenhouse
}

func (m *mockEmployeeStore) ListEmployees(ctx context.Context) ([]database.ListEmployeesRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	return m.employees, nil
}

func (m *mockEmployeeStore) GetEmployee(ctx context.Context, id int64) (database.Employee, error) {
	employee, ok := m.byID[id]
	if !ok {
		return database.Employee{}, sql.ErrNoRows
	}

	return employee, nil
}

func (m *mockEmployeeStore) GetEmployeeDetail(ctx context.Context, id int64) (database.GetEmployeeDetailRow, error) {
	if m.detail == nil || m.detail.ID != id {
		return database.GetEmployeeDetailRow{}, sql.ErrNoRows
	}

	return *m.detail, nil
}

func (m *mockEmployeeStore) GetEmployeeByEmail(ctx context.Context, email string) (database.Employee, error) {
	employee, ok := m.byEmail[email]
	if !ok {
		return database.Employee{}, sql.ErrNoRows
	}

	return employee, nil
}

func (m *mockEmployeeStore) EmailInUseByOther(ctx context.Context, arg database.EmailInUseByOtherParams) (bool, error) {
	return m.emailInUse, nil
}

func (m *mockEmployeeStore) CompanyIDExists(ctx context.Context, companyID string) (bool, error) {
	return m.usedIDs[companyID], nil
}

func (m *mockEmployeeStore) CreateEmployee(ctx context.Context, arg database.CreateEmployeeParams) (database.Employee, error) {
	if m.createErr != nil {
		return database.Employee{}, m.createErr
	}

	m.created = append(m.created, arg)

	return database.Employee{
		ID:           int64(10 + len(m.created)),
		Name:         arg.Name,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Available:    arg.Available,
		GreenhouseID: arg.GreenhouseID,
		CompanyID:    arg.CompanyID,
		IsAdmin:      arg.IsAdmin,
	}, nil
}

func (m *mockEmployeeStore) UpdateEmployee(ctx context.Context, arg database.UpdateEmployeeParams) (database.Employee, error) {
	if m.updateErr != nil {
		return database.Employee{}, m.updateErr
	}

	m.updated = append(m.updated, arg)

	return database.Employee{
		ID:           arg.ID,
		Name:         arg.Name,
		Email:        arg.Email,
		Available:    arg.Available,
		GreenhouseID: arg.GreenhouseID,
		IsAdmin:      arg.IsAdmin,
	}, nil
}

func (m *mockEmployeeStore) GetGreenhouse(ctx context.Context, id int64) (database.Greenhouse, error) {
	for _, greenhouse := range m.greenhouses {
		if greenhouse.ID == id {
			return greenhouse, nil
		}
	}

	return database.Greenhouse{}, sql.ErrNoRows
}

func (m *mockEmployeeStore) ListGreenhousesByName(ctx context.Context) ([]database.Greenhouse, error) {
	return m.greenhouses, nil
}

func newTestRenderer(t *testing.T) *web.Renderer {
	t.Helper()

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("failed to build the renderer: %v", err)
	}

	return renderer
}

func newTestHandler(t *testing.T, store EmployeeStore, mailer Mailer) *Handler {
	t.Helper()

	return NewHandler(store, mailer, newTestRenderer(t), "http://127.0.0.1:8080/")
}

func flashesFromResponse(t *testing.T, rr *httptest.ResponseRecorder) []web.Flash {
	t.Helper()

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name != "greenhouse_flash" || cookie.Value == "" {
			continue
		}
		decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
		if err != nil {
			t.Fatalf("failed to decode the flash cookie: %v", err)
		}
		var flashes []web.Flash
		if err := json.Unmarshal(decoded, &flashes); err != nil {
			t.Fatalf("failed to unmarshal the flash cookie: %v", err)
		}
		return flashes
	}

	return nil
}

var admin = database.Employee{ID: 1, Name: "Dana Reyes", Email: "dana@greentech.example", IsAdmin: true}

func getAs(handler func(http.ResponseWriter, *http.Request), employee database.Employee, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(auth.WithEmployee(req.Context(), employee))
	rr := httptest.NewRecorder()
	handler(rr, req)

	return rr
}

func postFormAs(handler func(http.ResponseWriter, *http.Request), employee database.Employee, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(auth.WithEmployee(req.Context(), employee))
	rr := httptest.NewRecorder()
	handler(rr, req)

	return rr
}

func TestHandlerEmployeesGet(t *testing.T) {
	rows := []database.ListEmployeesRow{
		{
			ID: 1, Name: "Dana Reyes", Email: "dana@greentech.example", CompanyID: "GT100001",
			Available: true, IsAdmin: true,
		},
		{
			ID: 2, Name: "Priya Patel", Email: "priya@greentech.example", CompanyID: "GT100002",
			GreenhouseID:   sql.NullInt64{Int64: 3, Valid: true},
			GreenhouseName: sql.NullString{String: "Gamma House", Valid: true},
		},
	}

	t.Run("lists employees with their greenhouse", func(t *testing.T) {
		handler := newTestHandler(t, &mockEmployeeStore{employees: rows}, &mockMailer{})

		rr := getAs(handler.handlerEmployeesGet, admin, "/view_employees")

		if rr.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
		body := rr.Body.String()
		for _, want := range []string{"Dana Reyes", "Priya Patel", "GT100002", "Gamma House", "Unassigned"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected %q in the listing", want)
			}
		}
		if !strings.Contains(body, `href="/create_employee"`) {
			t.Error("expected the create link for an admin")
		}
	})

	t.Run("non-admins see no create link", func(t *testing.T) {
		handler := newTestHandler(t, &mockEmployeeStore{employees: rows}, &mockMailer{})

		rr := getAs(handler.handlerEmployeesGet, database.Employee{ID: 2, Name: "Priya Patel"}, "/view_employees")

		if strings.Contains(rr.Body.String(), `href="/create_employee"`) {
			t.Error("expected no create link for a non-admin")
		}
	})

	t.Run("missing tables suggest init-db", func(t *testing.T) {
		store := &mockEmployeeStore{listErr: &pq.Error{Code: "42P01"}}
		handler := newTestHandler(t, store, &mockMailer{})

		rr := getAs(handler.handlerEmployeesGet, admin, "/view_employees")

		if !strings.Contains(rr.Body.String(), "Run &#39;greenhouse-server init-db&#39;.") {
			t.Error("expected the init-db hint")
		}
		if !strings.Contains(rr.Body.String(), "No employees found in the system.") {
			t.Error("expected the empty listing row")
		}
	})

	t.Run("other errors flash generically", func(t *testing.T) {
		store := &mockEmployeeStore{listErr: errors.New("connection refused")}
		handler := newTestHandler(t, store, &mockMailer{})

		rr := getAs(handler.handlerEmployeesGet, admin, "/view_employees")

		if !strings.Contains(rr.Body.String(), "An unexpected error occurred viewing employees.") {
			t.Error("expected the generic error flash")
		}
	})
}

func TestHandlerCreateEmployee(t *testing.T) {
	greenhouses := []database.Greenhouse{
		{ID: 3, Name: "Gamma House", Location: "East"},
	}

	t.Run("non-admins are refused", func(t *testing.T) {
		store := &mockEmployeeStore{greenhouses: greenhouses}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{"name": {"Priya Patel"}, "email": {"priya@greentech.example"}}
		rr := postFormAs(handler.handlerCreateEmployeePost, database.Employee{ID: 2}, "/create_employee", form)

		if rr.Code != http.StatusSeeOther {
			t.Errorf("expected status %d, got %d", http.StatusSeeOther, rr.Code)
		}
		if location := rr.Header().Get("Location"); location != "/dashboard" {
			t.Errorf("expected a redirect to the dashboard, got %q", location)
		}
		flashes := flashesFromResponse(t, rr)
		if len(flashes) != 1 || flashes[0].Message != "You do not have permission to create new employees." {
			t.Errorf("expected the permission flash, got %+v", flashes)
		}
		if len(store.created) != 0 {
			t.Error("expected no employee to be created")
		}
	})

	t.Run("the form lists greenhouses", func(t *testing.T) {
		handler := newTestHandler(t, &mockEmployeeStore{greenhouses: greenhouses}, &mockMailer{})

		rr := getAs(handler.handlerCreateEmployeeGet, admin, "/create_employee")

		if rr.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Gamma House") {
			t.Error("expected the greenhouse option")
		}
	})

	t.Run("missing fields re-render with a warning", func(t *testing.T) {
		store := &mockEmployeeStore{greenhouses: greenhouses}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{"name": {"Priya Patel"}}
		rr := postFormAs(handler.handlerCreateEmployeePost, admin, "/create_employee", form)

		if !strings.Contains(rr.Body.String(), "Name and email are required.") {
			t.Error("expected the validation warning")
		}
		if len(store.created) != 0 {
			t.Error("expected no employee to be created")
		}
	})

	t.Run("a duplicate email is rejected", func(t *testing.T) {
		store := &mockEmployeeStore{
			greenhouses: greenhouses,
			byEmail: map[string]database.Employee{
				"priya@greentech.example": {ID: 2, Email: "priya@greentech.example"},
			},
		}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{"name": {"Priya Patel"}, "email": {"priya@greentech.example"}}
		rr := postFormAs(handler.handlerCreateEmployeePost, admin, "/create_employee", form)

		if !strings.Contains(rr.Body.String(), "An employee with this email already exists.") {
			t.Error("expected the duplicate email flash")
		}
	})

	t.Run("an unknown greenhouse is rejected", func(t *testing.T) {
		store := &mockEmployeeStore{greenhouses: greenhouses}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{
			"name":          {"Priya Patel"},
			"email":         {"priya@greentech.example"},
			"greenhouse_id": {"99"},
		}
		rr := postFormAs(handler.handlerCreateEmployeePost, admin, "/create_employee", form)

		if !strings.Contains(rr.Body.String(), "Selected greenhouse does not exist.") {
			t.Error("expected the unknown greenhouse flash")
		}
		if len(store.created) != 0 {
			t.Error("expected no employee to be created")
		}
	})

	t.Run("a valid create mails the credentials", func(t *testing.T) {
		store := &mockEmployeeStore{greenhouses: greenhouses}
		mailer := &mockMailer{enabled: true}
		handler := newTestHandler(t, store, mailer)

		form := url.Values{
			"name":          {"Priya Patel"},
			"email":         {"priya@greentech.example"},
			"greenhouse_id": {"3"},
			"is_admin":      {"1"},
		}
		rr := postFormAs(handler.handlerCreateEmployeePost, admin, "/create_employee", form)

		if rr.Code != http.StatusSeeOther {
			t.Errorf("expected status %d, got %d", http.StatusSeeOther, rr.Code)
		}
		if location := rr.Header().Get("Location"); location != "/view_employees" {
			t.Errorf("expected a redirect to the employee listing, got %q", location)
		}

		if len(store.created) != 1 {
			t.Fatalf("expected one employee to be created, got %d", len(store.created))
		}
		created := store.created[0]
		if !created.Available {
			t.Error("expected a new employee to start available")
		}
		if !created.IsAdmin {
			t.Error("expected the admin flag from the form")
		}
		if !created.GreenhouseID.Valid || created.GreenhouseID.Int64 != 3 {
			t.Errorf("expected assignment to greenhouse 3, got %+v", created.GreenhouseID)
		}
		if !strings.HasPrefix(created.CompanyID, "GT") || len(created.CompanyID) != 8 {
			t.Errorf("expected a generated company id, got %q", created.CompanyID)
		}
		if created.PasswordHash == "" {
			t.Error("expected a hashed temporary password")
		}

		if len(mailer.sent) != 1 {
			t.Fatalf("expected one welcome email, got %d", len(mailer.sent))
		}
		mail := mailer.sent[0]
		if mail.subject != "Welcome to GreenTech Monitoring - Your Account Details" {
			t.Errorf("unexpected subject %q", mail.subject)
		}
		if len(mail.recipients) != 1 || mail.recipients[0] != "priya@greentech.example" {
			t.Errorf("unexpected recipients %v", mail.recipients)
		}
		if !strings.Contains(mail.body, "Temporary Password: ") {
			t.Error("expected the temporary password in the email body")
		}
		if !strings.Contains(mail.body, "http://127.0.0.1:8080/") {
			t.Error("expected the login link in the email body")
		}

		flashes := flashesFromResponse(t, rr)
		if len(flashes) != 1 {
			t.Fatalf("expected one flash, got %+v", flashes)
		}
		want := "Employee 'Priya Patel' created successfully! Credentials have been emailed to priya@greentech.example."
		if flashes[0].Message != want {
			t.Errorf("expected %q, got %q", want, flashes[0].Message)
		}
	})

	t.Run("a failed send flashes the password instead", func(t *testing.T) {
		store := &mockEmployeeStore{greenhouses: greenhouses}
		mailer := &mockMailer{enabled: true, sendErr: errors.New("smtp timeout")}
		handler := newTestHandler(t, store, mailer)

		form := url.Values{"name": {"Priya Patel"}, "email": {"priya@greentech.example"}}
		rr := postFormAs(handler.handlerCreateEmployeePost, admin, "/create_employee", form)

		flashes := flashesFromResponse(t, rr)
		if len(flashes) != 2 {
			t.Fatalf("expected two flashes, got %+v", flashes)
		}
		if flashes[0].Message != "Employee 'Priya Patel' created successfully, BUT failed to send the welcome email." {
			t.Errorf("unexpected first flash %q", flashes[0].Message)
		}
		if flashes[0].Category != web.FlashWarning {
			t.Errorf("expected a warning flash, got %q", flashes[0].Category)
		}
		if !strings.HasPrefix(flashes[1].Message, "Please manually provide the password to the user: ") {
			t.Errorf("unexpected second flash %q", flashes[1].Message)
		}
	})

	t.Run("disabled mail flashes the password", func(t *testing.T) {
		store := &mockEmployeeStore{greenhouses: greenhouses}
		mailer := &mockMailer{enabled: false}
		handler := newTestHandler(t, store, mailer)

		form := url.Values{"name": {"Priya Patel"}, "email": {"priya@greentech.example"}}
		rr := postFormAs(handler.handlerCreateEmployeePost, admin, "/create_employee", form)

		if len(mailer.sent) != 0 {
			t.Error("expected no email with mail disabled")
		}
		flashes := flashesFromResponse(t, rr)
		if len(flashes) != 2 {
			t.Fatalf("expected two flashes, got %+v", flashes)
		}
		if flashes[0].Message != "Employee 'Priya Patel' created successfully! Email notifications are disabled." {
			t.Errorf("unexpected first flash %q", flashes[0].Message)
		}
		if !strings.HasPrefix(flashes[1].Message, "Please manually provide the password to the user: ") {
			t.Errorf("unexpected second flash %q", flashes[1].Message)
		}
	})

	t.Run("a unique violation reads as a duplicate email", func(t *testing.T) {
		store := &mockEmployeeStore{greenhouses: greenhouses, createErr: &pq.Error{Code: "23505"}}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{"name": {"Priya Patel"}, "email": {"priya@greentech.example"}}
		rr := postFormAs(handler.handlerCreateEmployeePost, admin, "/create_employee", form)

		if !strings.Contains(rr.Body.String(), "An employee with this email already exists.") {
			t.Error("expected the duplicate email flash")
		}
	})
}

func TestHandlerEditEmployee(t *testing.T) {
	greenhouses := []database.Greenhouse{
		{ID: 3, Name: "Gamma House", Location: "East"},
	}
	target := database.Employee{
		ID:        2,
		Name:      "Priya Patel",
		Email:     "priya@greentech.example",
		Available: true,
		CompanyID: "GT100002",
	}

	editGet := func(handler *Handler, current database.Employee, id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/employee/edit/"+id, nil)
		req = req.WithContext(auth.WithEmployee(req.Context(), current))
		req.SetPathValue("employeeID", id)
		rr := httptest.NewRecorder()
		handler.handlerEditEmployeeGet(rr, req)

		return rr
	}

	editPost := func(handler *Handler, current database.Employee, id string, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/employee/edit/"+id, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req = req.WithContext(auth.WithEmployee(req.Context(), current))
		req.SetPathValue("employeeID", id)
		rr := httptest.NewRecorder()
		handler.handlerEditEmployeePost(rr, req)

		return rr
	}

	t.Run("the form is pre-filled", func(t *testing.T) {
		store := &mockEmployeeStore{byID: map[int64]database.Employee{2: target}, greenhouses: greenhouses}
		handler := newTestHandler(t, store, &mockMailer{})

		rr := editGet(handler, admin, "2")

		if rr.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
		body := rr.Body.String()
		if !strings.Contains(body, `value="Priya Patel"`) {
			t.Error("expected the name to be pre-filled")
		}
		if !strings.Contains(body, `value="priya@greentech.example"`) {
			t.Error("expected the email to be pre-filled")
		}
	})

	t.Run("employees cannot edit someone else", func(t *testing.T) {
		store := &mockEmployeeStore{byID: map[int64]database.Employee{2: target}}
		handler := newTestHandler(t, store, &mockMailer{})

		other := database.Employee{ID: 5, Name: "Sam Okafor"}
		rr := editGet(handler, other, "2")

		if rr.Code != http.StatusSeeOther {
			t.Errorf("expected status %d, got %d", http.StatusSeeOther, rr.Code)
		}
		if location := rr.Header().Get("Location"); location != "/view_employees" {
			t.Errorf("expected a redirect to the listing, got %q", location)
		}
		flashes := flashesFromResponse(t, rr)
		if len(flashes) != 1 || flashes[0].Message != "You do not have permission to edit this employee." {
			t.Errorf("expected the permission flash, got %+v", flashes)
		}
	})

	t.Run("an unknown employee is a 404", func(t *testing.T) {
		handler := newTestHandler(t, &mockEmployeeStore{}, &mockMailer{})

		rr := editGet(handler, admin, "2")

		if rr.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
		}
	})

	t.Run("an admin updates every field", func(t *testing.T) {
		store := &mockEmployeeStore{byID: map[int64]database.Employee{2: target}, greenhouses: greenhouses}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{
			"name":          {"Priya P."},
			"email":         {"priya.p@greentech.example"},
			"greenhouse_id": {"3"},
			"is_admin":      {"1"},
		}
		rr := editPost(handler, admin, "2", form)

		if rr.Code != http.StatusSeeOther {
			t.Errorf("expected status %d, got %d", http.StatusSeeOther, rr.Code)
		}
		if len(store.updated) != 1 {
			t.Fatalf("expected one update, got %d", len(store.updated))
		}
		updated := store.updated[0]
		if updated.Name != "Priya P." || updated.Email != "priya.p@greentech.example" {
			t.Errorf("unexpected update %+v", updated)
		}
		if !updated.GreenhouseID.Valid || updated.GreenhouseID.Int64 != 3 {
			t.Errorf("expected assignment to greenhouse 3, got %+v", updated.GreenhouseID)
		}
		if !updated.IsAdmin {
			t.Error("expected the admin to grant the admin flag")
		}
		if updated.Available {
			t.Error("expected the unchecked box to clear availability")
		}

		flashes := flashesFromResponse(t, rr)
		if len(flashes) != 1 || flashes[0].Message != "Employee 'Priya P.' updated successfully!" {
			t.Errorf("expected the success flash, got %+v", flashes)
		}
	})

	t.Run("self-edits cannot grant admin", func(t *testing.T) {
		store := &mockEmployeeStore{byID: map[int64]database.Employee{2: target}, greenhouses: greenhouses}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{
			"name":      {"Priya Patel"},
			"email":     {"priya@greentech.example"},
			"available": {"1"},
			"is_admin":  {"1"},
		}
		editPost(handler, target, "2", form)

		if len(store.updated) != 1 {
			t.Fatalf("expected one update, got %d", len(store.updated))
		}
		if store.updated[0].IsAdmin {
			t.Error("expected the admin flag to stay off")
		}
		if !store.updated[0].Available {
			t.Error("expected availability from the form")
		}
	})

	t.Run("empty fields re-render with a warning", func(t *testing.T) {
		store := &mockEmployeeStore{byID: map[int64]database.Employee{2: target}, greenhouses: greenhouses}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{"name": {""}, "email": {"priya@greentech.example"}}
		rr := editPost(handler, admin, "2", form)

		if !strings.Contains(rr.Body.String(), "Name and email cannot be empty.") {
			t.Error("expected the validation warning")
		}
		if len(store.updated) != 0 {
			t.Error("expected no update")
		}
	})

	t.Run("a taken email is rejected", func(t *testing.T) {
		store := &mockEmployeeStore{
			byID:        map[int64]database.Employee{2: target},
			greenhouses: greenhouses,
			emailInUse:  true,
		}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{"name": {"Priya Patel"}, "email": {"dana@greentech.example"}}
		rr := editPost(handler, admin, "2", form)

		if !strings.Contains(rr.Body.String(), "Another employee is already using that email address.") {
			t.Error("expected the email conflict flash")
		}
		if len(store.updated) != 0 {
			t.Error("expected no update")
		}
	})

	t.Run("an unknown greenhouse is rejected", func(t *testing.T) {
		store := &mockEmployeeStore{byID: map[int64]database.Employee{2: target}, greenhouses: greenhouses}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{
			"name":          {"Priya Patel"},
			"email":         {"priya@greentech.example"},
			"greenhouse_id": {"99"},
		}
		rr := editPost(handler, admin, "2", form)

		if !strings.Contains(rr.Body.String(), "Invalid greenhouse selected.") {
			t.Error("expected the invalid greenhouse flash")
		}
	})

	t.Run("store errors re-render with a flash", func(t *testing.T) {
		store := &mockEmployeeStore{
			byID:        map[int64]database.Employee{2: target},
			greenhouses: greenhouses,
			updateErr:   errors.New("connection refused"),
		}
		handler := newTestHandler(t, store, &mockMailer{})

		form := url.Values{"name": {"Priya Patel"}, "email": {"priya@greentech.example"}}
		rr := editPost(handler, admin, "2", form)

		if !strings.Contains(rr.Body.String(), "An error occurred while updating the employee.") {
			t.Error("expected the update error flash")
		}
	})
}

func TestHandlerEmployeeDetailGet(t *testing.T) {
	detail := func(handler *Handler, id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/employee/"+id, nil)
		req = req.WithContext(auth.WithEmployee(req.Context(), admin))
		req.SetPathValue("employeeID", id)
		rr := httptest.NewRecorder()
		handler.handlerEmployeeDetailGet(rr, req)

		return rr
	}

	t.Run("an assigned employee includes the greenhouse", func(t *testing.T) {
		store := &mockEmployeeStore{
			detail: &database.GetEmployeeDetailRow{
				ID: 2, Name: "Priya Patel", Email: "priya@greentech.example",
				CompanyID: "GT100002", Available: true,
				GreenhouseID:       sql.NullInt64{Int64: 3, Valid: true},
				GreenhouseName:     sql.NullString{String: "Gamma House", Valid: true},
				GreenhouseLocation: sql.NullString{String: "East", Valid: true},
			},
		}
		handler := newTestHandler(t, store, &mockMailer{})

		rr := detail(handler, "2")

		if rr.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
		}

		var body map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("expected a json body, got %v", err)
		}
		if body["name"] != "Priya Patel" || body["company_id"] != "GT100002" {
			t.Errorf("unexpected body %+v", body)
		}
		greenhouse, ok := body["greenhouse"].(map[string]any)
		if !ok {
			t.Fatalf("expected a nested greenhouse, got %+v", body["greenhouse"])
		}
		if greenhouse["name"] != "Gamma House" || greenhouse["location"] != "East" {
			t.Errorf("unexpected greenhouse %+v", greenhouse)
		}
	})

	t.Run("an unassigned employee has a null greenhouse", func(t *testing.T) {
		store := &mockEmployeeStore{
			detail: &database.GetEmployeeDetailRow{
				ID: 2, Name: "Priya Patel", Email: "priya@greentech.example", CompanyID: "GT100002",
			},
		}
		handler := newTestHandler(t, store, &mockMailer{})

		rr := detail(handler, "2")

		var body map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("expected a json body, got %v", err)
		}
		if value, present := body["greenhouse"]; !present || value != nil {
			t.Errorf("expected an explicit null greenhouse, got %+v", value)
		}
	})

	t.Run("an unknown employee is a json 404", func(t *testing.T) {
		handler := newTestHandler(t, &mockEmployeeStore{}, &mockMailer{})

		rr := detail(handler, "2")

		if rr.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("expected a json body, got %v", err)
		}
		if body["error"] != "Employee not found" {
			t.Errorf("unexpected error message %q", body["error"])
		}
	})
}
