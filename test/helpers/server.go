package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"bookstore_backend/internal/app"
	"bookstore_backend/internal/config"
	"bookstore_backend/internal/models"
	"bookstore_backend/internal/services"
	"bookstore_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestServer wires the full router against in-memory fakes.
type TestServer struct {
	Router *gin.Engine
	Cfg    *config.Config
	Users  *MemoryUserRepository
	Books  *MemoryBookRepository
	Mailer *RecordingMailer
}

func NewTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = time.Hour
	return cfg
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	ts := &TestServer{
		Cfg:    NewTestConfig(),
		Users:  NewMemoryUserRepository(),
		Books:  NewMemoryBookRepository(),
		Mailer: NewRecordingMailer(),
	}
	ts.Router = app.NewRouter(ts.Cfg, app.Dependencies{
		Users:  ts.Users,
		Books:  ts.Books,
		Mailer: ts.Mailer,
	})
	return ts
}

// SendRequest performs one request against the router. body is JSON-encoded
// when non-nil; token, when set, goes into the Authorization header.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)
	return rec
}

// DecodeBody unmarshals a recorded JSON response body.
func DecodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// SignupUser registers a user through the auth service and returns the user
// with a fresh token.
func (ts *TestServer) SignupUser(t *testing.T, name, emailAddr, password string) (*models.User, string) {
	t.Helper()

	svc := services.NewAuthService(ts.Cfg, ts.Users, ts.Mailer)
	user, token, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name:            name,
		Email:           emailAddr,
		Password:        password,
		PasswordConfirm: password,
	})
	require.NoError(t, err)
	return user, token
}

// SignupAdmin registers a user and promotes it to admin, returning a token
// issued after the promotion.
func (ts *TestServer) SignupAdmin(t *testing.T, name, emailAddr, password string) (*models.User, string) {
	t.Helper()

	user, token := ts.SignupUser(t, name, emailAddr, password)
	ts.Users.SetRole(user.ID.Hex(), models.RoleAdmin)
	user.Role = models.RoleAdmin
	return user, token
}
