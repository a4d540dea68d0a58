package save_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zsigidavid/notekeeper/internal/handlers/user/save"
	"github.com/zsigidavid/notekeeper/internal/models"
	"github.com/zsigidavid/notekeeper/internal/storage"
)

type userSaverFunc func(username, email, password string) (*models.User, error)

func (f userSaverFunc) SaveUser(username, email, password string) (*models.User, error) {
	return f(username, email, password)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	saver := userSaverFunc(func(username, email, password string) (*models.User, error) {
		return &models.User{ID: 1, Username: username, Email: email}, nil
	})
	handler := save.New(discardLogger(), saver)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewBufferString(`{"username":"alice","email":"a@x.com","password":"Passw0rd"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"id":1,"username":"alice","email":"a@x.com"}`, rec.Body.String())
}

func TestRegister_DuplicateUser(t *testing.T) {
	t.Parallel()

	saver := userSaverFunc(func(username, email, password string) (*models.User, error) {
		return nil, storage.ErrUserExists
	})
	handler := save.New(discardLogger(), saver)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewBufferString(`{"username":"alice","email":"a@x.com","password":"Passw0rd"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"user already exists"}`, rec.Body.String())
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	saver := userSaverFunc(func(username, email, password string) (*models.User, error) {
		t.Error("store must not be called for invalid input")
		return nil, nil
	})
	handler := save.New(discardLogger(), saver)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing username", body: `{"email":"a@x.com","password":"Passw0rd"}`},
		{name: "bad email", body: `{"username":"alice","email":"not-an-email","password":"Passw0rd"}`},
		{name: "short password", body: `{"username":"alice","email":"a@x.com","password":"abc"}`},
		{name: "not json", body: `{{{`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
