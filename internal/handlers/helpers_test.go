package handlers_test

import (
	"EmployeeManager/internal/config"
	"EmployeeManager/internal/handlers"
	"EmployeeManager/internal/middleware"
	"EmployeeManager/internal/repo"
	"EmployeeManager/internal/service"
	"EmployeeManager/internal/validation"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret   = "test-secret"
	testLogin    = "admin"
	testPassword = "secret"
)

type testEnv struct {
	router http.Handler
	cfg    *config.Config
	store  *repo.Store
	token  string
}

// newTestEnv поднимает роутер поверх SQLite во временном каталоге с одним пользователем.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := repo.OpenStore(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ready(context.Background()))

	env := newEnvWithStore(t, store)
	users := service.NewUserService(repo.NewUserRepository(store.DB))
	_, err = users.EnsureUser(context.Background(), testLogin, testPassword, "Administrator", "admin@example.com")
	require.NoError(t, err)
	return env
}

func newEnvWithStore(t *testing.T, store *repo.Store) *testEnv {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, TokenTTLMinutes: 30, BlobMaxSizeMB: 10}
	logger := zap.NewNop().Sugar()

	employees := repo.NewEmployeeRepository(store.DB)
	attachments := repo.NewAttachmentRepository(store.DB)

	employeeSvc := service.NewEmployeeService(employees, attachments, validation.MustNew(), logger)
	dashboardSvc := service.NewDashboardService(repo.NewDashboardRepository(store.DB))
	fileSvc := service.NewFileService(employees, attachments, repo.NewBlobRepository(store.DB), cfg.BlobMaxSizeMB, logger)
	userSvc := service.NewUserService(repo.NewUserRepository(store.DB))

	h := handlers.NewHandler(employeeSvc, dashboardSvc, fileSvc, userSvc, store, logger, cfg)

	token, _, err := middleware.IssueToken(testLogin, testSecret, time.Minute)
	require.NoError(t, err)
	return &testEnv{router: h.Router, cfg: cfg, store: store, token: token}
}

func (e *testEnv) request(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+e.token)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) getJSON(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return e.request(t, http.MethodGet, path, nil, "")
}

func (e *testEnv) sendJSON(t *testing.T, method, path string, v any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	switch b := v.(type) {
	case string:
		body = strings.NewReader(b)
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return e.request(t, method, path, body, "application/json")
}

func (e *testEnv) createEmployee(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	return e.sendJSON(t, http.MethodPost, "/api/v1/employees", body)
}

func (e *testEnv) upload(t *testing.T, employeeID, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return e.request(t, http.MethodPost, "/api/v1/employees/"+employeeID+"/files/upload", &buf, mw.FormDataContentType())
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

type errorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

type employeeBody struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Department string    `json:"department"`
	Salary     *int      `json:"salary"`
	HireDate   *string   `json:"hire_date"`
	Status     string    `json:"status"`
	Skills     []string  `json:"skills"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Files      []struct {
		ID string `json:"id"`
	} `json:"files"`
}
