package notes

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zsigidavid/notekeeper/internal/app"
	"github.com/zsigidavid/notekeeper/internal/client/api"
	"github.com/zsigidavid/notekeeper/internal/client/session"
	"github.com/zsigidavid/notekeeper/internal/storage/inmemory"
	"github.com/zsigidavid/notekeeper/pkg/auth"
)

const testSecret = "test-secret"

// newTestController spins a real server over the in-memory store and returns
// a controller with a logged-in session, so every test runs the actual wire
// protocol end to end.
func newTestController(t *testing.T) (*Controller, *session.Session) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenManager(testSecret, time.Hour)
	srv := httptest.NewServer(app.NewRouter(log, inmemory.New(), tokens))
	t.Cleanup(srv.Close)

	apiClient := api.New(srv.URL)
	ctx := context.Background()

	_, err := apiClient.Register(ctx, "alice", "a@x.com", "Passw0rd")
	require.NoError(t, err)
	token, err := apiClient.Login(ctx, "a@x.com", "Passw0rd")
	require.NoError(t, err)

	sess := session.New()
	sess.Login(token)

	return NewController(apiClient, sess), sess
}

func TestSubmit_CreateResynchronizesList(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t)
	ctx := context.Background()

	c.Title = "T"
	c.Content = "C"
	require.NoError(t, c.Submit(ctx))

	// the list shown is the server's, re-fetched after the mutation
	require.Len(t, c.Notes(), 1)
	require.Equal(t, "T", c.Notes()[0].Title)
	require.Equal(t, "C", c.Notes()[0].Content)

	require.Equal(t, StateIdle, c.State())
	require.Empty(t, c.Title)
	require.Empty(t, c.Content)

	msg, isErr, ok := c.Message()
	require.True(t, ok)
	require.False(t, isErr)
	require.Equal(t, "note created", msg)
}

func TestSubmit_EmptyFieldsNeverReachServer(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t)
	ctx := context.Background()

	c.Title = "  "
	c.Content = "C"
	require.Error(t, c.Submit(ctx))

	msg, isErr, ok := c.Message()
	require.True(t, ok)
	require.True(t, isErr)
	require.Equal(t, "title and content must not be empty", msg)

	require.NoError(t, c.Refresh(ctx))
	require.Empty(t, c.Notes())
}

func TestEditSubmit_UpdatesNote(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t)
	ctx := context.Background()

	c.Title = "T"
	c.Content = "C"
	require.NoError(t, c.Submit(ctx))
	id := c.Notes()[0].ID

	require.True(t, c.Edit(id))
	require.Equal(t, StateEditing, c.State())
	require.Equal(t, "T", c.Title)
	require.Equal(t, "C", c.Content)

	c.Title = "T2"
	c.Content = "C2"
	require.NoError(t, c.Submit(ctx))

	require.Len(t, c.Notes(), 1)
	require.Equal(t, "T2", c.Notes()[0].Title)
	require.Equal(t, "C2", c.Notes()[0].Content)
	require.Equal(t, StateIdle, c.State())

	msg, _, ok := c.Message()
	require.True(t, ok)
	require.Equal(t, "note updated", msg)
}

func TestEdit_UnknownID(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t)
	require.False(t, c.Edit(999))
	require.Equal(t, StateIdle, c.State())
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t)
	ctx := context.Background()

	c.Title = "T"
	c.Content = "C"
	require.NoError(t, c.Submit(ctx))
	id := c.Notes()[0].ID

	// request + cancel: nothing is deleted
	c.RequestDelete(id)
	pending, ok := c.PendingDelete()
	require.True(t, ok)
	require.Equal(t, id, pending)

	c.CancelDelete()
	_, ok = c.PendingDelete()
	require.False(t, ok)

	require.NoError(t, c.Refresh(ctx))
	require.Len(t, c.Notes(), 1)

	// request + confirm: deleted, list resynchronized
	c.RequestDelete(id)
	require.NoError(t, c.ConfirmDelete(ctx))
	require.Empty(t, c.Notes())

	msg, isErr, ok := c.Message()
	require.True(t, ok)
	require.False(t, isErr)
	require.Equal(t, "note deleted", msg)
}

func TestConfirmDelete_NotFoundIsTransient(t *testing.T) {
	t.Parallel()

	c, sess := newTestController(t)
	ctx := context.Background()

	c.RequestDelete(999)
	require.Error(t, c.ConfirmDelete(ctx))

	msg, isErr, ok := c.Message()
	require.True(t, ok)
	require.True(t, isErr)
	require.Equal(t, "failed to delete note: note not found", msg)

	// an ordinary failure leaves the session alone
	require.True(t, sess.Authenticated())
}

func TestRefresh_ExpiredTokenForcesLogout(t *testing.T) {
	t.Parallel()

	c, sess := newTestController(t)
	ctx := context.Background()

	expired, err := auth.NewTokenManager(testSecret, -time.Minute).Issue(1)
	require.NoError(t, err)
	sess.Login(expired)

	err = c.Refresh(ctx)
	require.ErrorIs(t, err, ErrSessionExpired)
	require.False(t, sess.Authenticated())

	// forced logout is not an inline message
	_, _, ok := c.Message()
	require.False(t, ok)
}

func TestRefresh_WithoutSession(t *testing.T) {
	t.Parallel()

	c, sess := newTestController(t)
	sess.Logout()

	err := c.Refresh(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestMessage_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t)
	ctx := context.Background()

	c.Title = "T"
	c.Content = "C"
	require.NoError(t, c.Submit(ctx))

	_, _, ok := c.Message()
	require.True(t, ok)

	c.now = func() time.Time { return time.Now().Add(4 * time.Second) }
	_, _, ok = c.Message()
	require.False(t, ok)
}
