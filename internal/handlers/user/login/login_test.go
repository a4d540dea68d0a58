package login_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zsigidavid/notekeeper/internal/handlers/user/login"
	"github.com/zsigidavid/notekeeper/internal/models"
	"github.com/zsigidavid/notekeeper/internal/storage"
	"github.com/zsigidavid/notekeeper/pkg/auth"
)

type userProviderFunc func(email string) (*models.User, error)

func (f userProviderFunc) GetUserByEmail(email string) (*models.User, error) {
	return f(email)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func knownUserProvider(t *testing.T) userProviderFunc {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd"), bcrypt.DefaultCost)
	require.NoError(t, err)

	return func(email string) (*models.User, error) {
		if email == "a@x.com" {
			return &models.User{ID: 3, Username: "alice", Email: email, Password: string(hash)}, nil
		}
		return nil, storage.ErrUserNotFound
	}
}

func doLogin(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := login.New(discardLogger(), knownUserProvider(t), tokens)

	rec := doLogin(t, handler, `{"email":"a@x.com","password":"Passw0rd"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	uid, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, 3, uid)
}

// Wrong password and unknown email must be indistinguishable to the caller:
// same status, same body.
func TestLogin_FailuresAreIdentical(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := login.New(discardLogger(), knownUserProvider(t), tokens)

	wrongPassword := doLogin(t, handler, `{"email":"a@x.com","password":"WrongPass"}`)
	unknownEmail := doLogin(t, handler, `{"email":"nobody@x.com","password":"Passw0rd"}`)

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, wrongPassword.Code, unknownEmail.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	require.JSONEq(t, `{"error":"invalid email or password"}`, wrongPassword.Body.String())
}

func TestLogin_Validation(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := login.New(discardLogger(), knownUserProvider(t), tokens)

	rec := doLogin(t, handler, `{"email":"not-an-email","password":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
