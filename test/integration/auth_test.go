package integration_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"bookstore_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t)

	rec := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"name":            "Leo",
		"email":           "leo@example.com",
		"password":        "pass1234",
		"passwordConfirm": "pass1234",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := helpers.DecodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["token"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "leo@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	// Credential fields never appear in the response.
	assert.NotContains(t, user, "password")
	assert.NotContains(t, rec.Body.String(), "pass1234")
}

func TestSignupEndpoint_Validation(t *testing.T) {
	ts := helpers.NewTestServer(t)

	t.Run("password mismatch", func(t *testing.T) {
		rec := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
			"name":            "Leo",
			"email":           "leo@example.com",
			"password":        "pass1234",
			"passwordConfirm": "pass9999",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "fail", helpers.DecodeBody(t, rec)["status"])
	})

	t.Run("bad email", func(t *testing.T) {
		rec := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
			"name":            "Leo",
			"email":           "not-an-email",
			"password":        "pass1234",
			"passwordConfirm": "pass1234",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		ts.SignupUser(t, "First", "dup@example.com", "pass1234")

		rec := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
			"name":            "Second",
			"email":           "dup@example.com",
			"password":        "pass1234",
			"passwordConfirm": "pass1234",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email already in use", helpers.DecodeBody(t, rec)["message"])
	})
}

func TestLoginEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t)
	ts.SignupUser(t, "Leo", "leo@example.com", "pass1234")

	rec := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "leo@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := helpers.DecodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, rec.Header().Get("Bearer"))
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	ts := helpers.NewTestServer(t)
	ts.SignupUser(t, "Leo", "leo@example.com", "pass1234")

	wrongPass := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "leo@example.com",
		"password": "wrong-password",
	})
	unknown := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "pass1234",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// Indistinguishable responses keep email enumeration impossible.
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
	assert.Equal(t, "Incorrect Email or Password!", helpers.DecodeBody(t, wrongPass)["message"])
}

func resetTokenFromMail(t *testing.T, ts *helpers.TestServer) string {
	t.Helper()
	sent, ok := ts.Mailer.LastReset()
	require.True(t, ok)
	idx := strings.LastIndex(sent.ResetURL, "/")
	require.Greater(t, idx, 0)
	return sent.ResetURL[idx+1:]
}

func TestPasswordResetFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)
	ts.SignupUser(t, "Leo", "leo@example.com", "pass1234")

	rec := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/forgotPassword", "", map[string]any{
		"email": "leo@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := helpers.DecodeBody(t, rec)
	assert.Equal(t, "Token sent to email", body["message"])

	plaintext := resetTokenFromMail(t, ts)
	// The response must not leak the token.
	assert.NotContains(t, rec.Body.String(), plaintext)

	rec = ts.SendRequest(t, http.MethodPatch, "/api/v1/auth/resetPassword/"+plaintext, "", map[string]any{
		"password":        "newpass99",
		"passwordConfirm": "newpass99",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, helpers.DecodeBody(t, rec)["token"])

	// Old password is out, new one works.
	rec = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "leo@example.com",
		"password": "pass1234",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "leo@example.com",
		"password": "newpass99",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// The consumed token is dead.
	rec = ts.SendRequest(t, http.MethodPatch, "/api/v1/auth/resetPassword/"+plaintext, "", map[string]any{
		"password":        "another99",
		"passwordConfirm": "another99",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Token is invalid or has expired", helpers.DecodeBody(t, rec)["message"])
}

func TestForgotPasswordEndpoint_UnknownEmail(t *testing.T) {
	ts := helpers.NewTestServer(t)

	rec := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/forgotPassword", "", map[string]any{
		"email": "nobody@example.com",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "There is no user with this email address!", helpers.DecodeBody(t, rec)["message"])
}

func TestForgotPasswordEndpoint_DeliveryFailure(t *testing.T) {
	ts := helpers.NewTestServer(t)
	ts.SignupUser(t, "Leo", "leo@example.com", "pass1234")
	ts.Mailer.FailSends = true

	rec := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/forgotPassword", "", map[string]any{
		"email": "leo@example.com",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := helpers.DecodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "There was an error sending the email. Try again later!", body["message"])
}

// A still-valid token issued before a password reset must stop working.
func TestStaleTokenRejectedAfterReset(t *testing.T) {
	ts := helpers.NewTestServer(t)
	_, oldToken := ts.SignupUser(t, "Leo", "leo@example.com", "pass1234")

	rec := ts.SendRequest(t, http.MethodGet, "/api/v1/book", oldToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The change timestamp is backdated by one second, so a token minted in
	// the same instant stays valid. Make the old token clearly older.
	time.Sleep(2 * time.Second)

	rec = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/forgotPassword", "", map[string]any{
		"email": "leo@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	plaintext := resetTokenFromMail(t, ts)

	rec = ts.SendRequest(t, http.MethodPatch, "/api/v1/auth/resetPassword/"+plaintext, "", map[string]any{
		"password":        "newpass99",
		"passwordConfirm": "newpass99",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	newToken, _ := helpers.DecodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, newToken)

	rec = ts.SendRequest(t, http.MethodGet, "/api/v1/book", oldToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User recently changed password! Please log in again.",
		helpers.DecodeBody(t, rec)["message"])

	// The token minted by the reset works immediately.
	rec = ts.SendRequest(t, http.MethodGet, "/api/v1/book", newToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheckEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t)

	rec := ts.SendRequest(t, http.MethodGet, "/api/v1/health-check", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := helpers.DecodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "server is running!", data["msg"])
}

func TestUnknownRoute(t *testing.T) {
	ts := helpers.NewTestServer(t)

	rec := ts.SendRequest(t, http.MethodGet, "/api/v1/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := helpers.DecodeBody(t, rec)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "Can't find /api/v1/no-such-route on this server!", body["message"])
}
