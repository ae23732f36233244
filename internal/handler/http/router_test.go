package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/config"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/cache"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/sse"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/storage"
	"github.com/nexter-rh/nexter-backend-go/internal/repository/document"
	absenceService "github.com/nexter-rh/nexter-backend-go/internal/service/absence"
	certificateService "github.com/nexter-rh/nexter-backend-go/internal/service/certificate"
	companyService "github.com/nexter-rh/nexter-backend-go/internal/service/company"
	employeeService "github.com/nexter-rh/nexter-backend-go/internal/service/employee"
	fileService "github.com/nexter-rh/nexter-backend-go/internal/service/file"
	financeService "github.com/nexter-rh/nexter-backend-go/internal/service/finance"
	leaveService "github.com/nexter-rh/nexter-backend-go/internal/service/leave"
	movementService "github.com/nexter-rh/nexter-backend-go/internal/service/movement"
	notificationService "github.com/nexter-rh/nexter-backend-go/internal/service/notification"
	overtimeService "github.com/nexter-rh/nexter-backend-go/internal/service/overtime"
	reportService "github.com/nexter-rh/nexter-backend-go/internal/service/report"
	settlementService "github.com/nexter-rh/nexter-backend-go/internal/service/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	router http.Handler
	jwt    jwt.Service
	admin  string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *testServer {
	store := docstore.NewMemoryStore()
	companyRepo := document.NewCompanyRepository(store)
	employeeRepo := document.NewEmployeeRepository(store)
	movementRepo := document.NewMovementRepository(store)
	settlementRepo := document.NewSettlementRepository(store)
	entryRepo := document.NewEntryRepository(store)
	overtimeRepo := document.NewOvertimeRepository(store)
	absenceRepo := document.NewAbsenceRepository(store)
	certRepo := document.NewCertificateRepository(store)
	leaveRepo := document.NewLeaveRepository(store)

	notifications := notificationService.NewNotificationService(
		document.NewNotificationRepository(store), sse.NewHub(), notificationService.Config{})
	t.Cleanup(notifications.Stop)

	companies := cache.NewReadThrough[company.Company](cache.NewMemoryCache(), "company", time.Minute)
	employees := employeeService.NewEmployeeService(store, employeeRepo, companyRepo, movementRepo, settlementRepo, companies)
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	files, err := storage.NewLocalStorage(t.TempDir(), "/api/v1/files")
	require.NoError(t, err)

	router := NewRouter(config.AppConfig{Env: "test", AllowedOrigins: []string{"*"}}, jwtService, Handlers{
		Company:      NewCompanyHandler(companyService.NewCompanyService(store, companyRepo, employeeRepo, companies, employees)),
		Employee:     NewEmployeeHandler(employees),
		Movement:     NewMovementHandler(movementService.NewMovementService(store, movementRepo, employeeRepo, companyRepo, notifications)),
		Settlement:   NewSettlementHandler(settlementService.NewSettlementService(store, settlementRepo, entryRepo, employeeRepo, companyRepo, notifications)),
		Finance:      NewFinanceHandler(financeService.NewFinanceService(store, entryRepo, employeeRepo)),
		Overtime:     NewOvertimeHandler(overtimeService.NewOvertimeService(store, overtimeRepo, employeeRepo)),
		Absence:      NewAbsenceHandler(absenceService.NewAbsenceService(absenceRepo, employeeRepo, notifications)),
		Certificate:  NewCertificateHandler(certificateService.NewCertificateService(store, certRepo, leaveRepo, employeeRepo, notifications, fileService.NewFileService(files))),
		Leave:        NewLeaveHandler(leaveService.NewLeaveService(store, leaveRepo, employeeRepo)),
		Report:       NewReportHandler(reportService.NewReportService(overtimeRepo, absenceRepo, certRepo, leaveRepo, employeeRepo, entryRepo, files)),
		Notification: NewNotificationHandler(notifications, jwtService),
		File:         NewFileHandler(files),
	})

	s := &testServer{router: router, jwt: jwtService}
	s.admin = s.token(t, jwt.Operator{UserID: "admin-1", Name: "Admin", Role: jwt.RoleAdmin})
	return s
}

func (s *testServer) token(t *testing.T, op jwt.Operator) string {
	token, _, err := s.jwt.GenerateAccessToken(op)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if v != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, v))
	}
	return env
}

func (s *testServer) createCompany(t *testing.T) string {
	rec := s.do(t, http.MethodPost, "/api/v1/companies", s.admin, map[string]interface{}{
		"name": "Acme Ltda",
		"cnpj": "11.222.333/0001-81",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var c struct {
		ID string `json:"id"`
	}
	decode(t, rec, &c)
	require.NotEmpty(t, c.ID)
	return c.ID
}

func (s *testServer) createEmployee(t *testing.T, companyID string) string {
	rec := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/employees", companyID), s.admin, map[string]interface{}{
		"name":           "Joana Lima",
		"cpf":            "529.982.247-25",
		"sector":         "Produção",
		"job_title":      "Operador",
		"admission_date": "2024-01-10",
		"salary":         "3000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var e struct {
		ID string `json:"id"`
	}
	decode(t, rec, &e)
	return e.ID
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/companies", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/companies", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CompanyScope(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t)

	outsider := s.token(t, jwt.Operator{UserID: "op-1", Name: "Operador", Role: jwt.RoleOperator, CompanyIDs: []string{"other"}})
	member := s.token(t, jwt.Operator{UserID: "op-2", Name: "Operadora", Role: jwt.RoleOperator, CompanyIDs: []string{companyID}})

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/employees", companyID), outsider, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/employees", companyID), member, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var visible []map[string]interface{}
	rec = s.do(t, http.MethodGet, "/api/v1/companies", outsider, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &visible)
	assert.Empty(t, visible)

	rec = s.do(t, http.MethodPost, "/api/v1/companies", member, map[string]interface{}{"name": "Outra", "cnpj": "11.444.777/0001-61"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/companies/%s", companyID), member, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ValidationError(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t)

	rec := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/employees", companyID), s.admin, map[string]interface{}{})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := decode(t, rec, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "cpf")

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/employees", companyID), bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+s.admin)
	bad := httptest.NewRecorder()
	s.router.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestRouter_CertificateOpensReferral(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t)
	employeeID := s.createEmployee(t, companyID)

	rec := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/certificates", companyID), s.admin, map[string]interface{}{
		"employee_id": employeeID,
		"date":        "2026-03-02",
		"duration":    map[string]interface{}{"value": "16", "unit": "days"},
		"cid":         "m54.5",
		"physician":   "Dr. Paulo CRM 1234",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered struct {
		Evaluation struct {
			Triggered bool `json:"triggered"`
		} `json:"evaluation"`
		LeaveID string `json:"leave_id"`
	}
	decode(t, rec, &registered)
	assert.True(t, registered.Evaluation.Triggered)
	require.NotEmpty(t, registered.LeaveID)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/leaves?referral_status=pending", companyID), s.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var leaves []struct {
		ID  string `json:"id"`
		CID string `json:"cid"`
	}
	decode(t, rec, &leaves)
	require.Len(t, leaves, 1)
	assert.Equal(t, registered.LeaveID, leaves[0].ID)
	assert.Equal(t, "M54.5", leaves[0].CID)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/leaves/unknown", companyID), s.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ReportExport(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t)

	path := fmt.Sprintf("/api/v1/companies/%s/reports/export?kind=absences&group_by=sector&from=2026-01-01&to=2026-01-31&format=xlsx", companyID)
	rec := s.do(t, http.MethodGet, path, s.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "absences-sector-2026-01-01-2026-01-31.xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/reports/export?kind=absences&from=2026-01-01&to=2026-01-31&format=csv", companyID), s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/dashboard?month=2026-13", companyID), s.admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_FileDownloadScoped(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t)

	path := fmt.Sprintf("/api/v1/companies/%s/reports/export?kind=overtime&group_by=sector&from=2026-02-01&to=2026-02-28&format=pdf", companyID)
	rec := s.do(t, http.MethodGet, path, s.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	location := rec.Header().Get("Content-Location")
	require.Equal(t, fmt.Sprintf("/api/v1/files/reports/%s/overtime-sector-2026-02-01-2026-02-28.pdf", companyID), location)

	rec = s.do(t, http.MethodGet, location, s.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	outsider := s.token(t, jwt.Operator{UserID: "op-1", Role: jwt.RoleOperator, CompanyIDs: []string{"other"}})
	rec = s.do(t, http.MethodGet, location, outsider, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/files/reports", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/files/reports/%s/missing.pdf", companyID), s.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_NotificationsPaged(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t)

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/notifications?page=1&page_size=5", companyID), s.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Meta struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Meta.Page)
	assert.Equal(t, 5, body.Meta.Limit)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/notifications/read", companyID), s.admin, map[string]interface{}{"notification_ids": []string{}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_StreamToken(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t)
	streamPath := fmt.Sprintf("/api/v1/companies/%s/notifications/stream", companyID)

	rec := s.do(t, http.MethodGet, streamPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, streamPath+"?token="+s.admin, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "access tokens are not stream tokens")

	member := s.token(t, jwt.Operator{UserID: "op-1", Role: jwt.RoleOperator, CompanyIDs: []string{companyID}})
	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/notifications/sse-token", companyID), member, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sseToken struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expires_in"`
	}
	decode(t, rec, &sseToken)
	require.NotEmpty(t, sseToken.Token)
	assert.Positive(t, sseToken.ExpiresIn)

	other := s.createCompanyNamed(t, "Beta SA", "11.444.777/0001-61")
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/notifications/stream?token=%s", other, sseToken.Token), "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func (s *testServer) createCompanyNamed(t *testing.T, name, cnpj string) string {
	rec := s.do(t, http.MethodPost, "/api/v1/companies", s.admin, map[string]interface{}{"name": name, "cnpj": cnpj})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c struct {
		ID string `json:"id"`
	}
	decode(t, rec, &c)
	return c.ID
}
