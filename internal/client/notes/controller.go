package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zsigidavid/notekeeper/internal/client/api"
	"github.com/zsigidavid/notekeeper/internal/client/session"
	"github.com/zsigidavid/notekeeper/internal/models"
)

// ErrSessionExpired is returned when any call comes back 401. The controller
// has already cleared the session; the caller's only move is to send the user
// back to login.
var ErrSessionExpired = errors.New("session expired, please log in again")

type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
)

// messages are transient: they disappear after this long or on the next
// user action, whichever comes first.
const messageTTL = 3 * time.Second

// Controller drives the note-editing session: idle → editing → submitting →
// idle, with the displayed list fully re-fetched from the server after every
// mutation before success is reported. There is no optimistic patching, so
// what the controller holds is always what the server last returned.
type Controller struct {
	api     *api.Client
	session *session.Session

	state     State
	notes     []models.Note
	editingID int

	Title   string
	Content string

	pendingDelete int

	message      string
	messageIsErr bool
	messageAt    time.Time

	now func() time.Time
}

func NewController(apiClient *api.Client, sess *session.Session) *Controller {
	return &Controller{
		api:     apiClient,
		session: sess,
		now:     time.Now,
	}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Notes() []models.Note {
	return c.notes
}

// Message returns the current transient message, whether it is an error, and
// whether one is showing at all.
func (c *Controller) Message() (string, bool, bool) {
	if c.message == "" {
		return "", false, false
	}
	if c.now().Sub(c.messageAt) > messageTTL {
		return "", false, false
	}
	return c.message, c.messageIsErr, true
}

// Refresh re-reads the full list from the server.
func (c *Controller) Refresh(ctx context.Context) error {
	c.clearMessage()

	tok, err := c.token()
	if err != nil {
		return err
	}
	return c.reload(ctx, tok)
}

// Edit populates the form from a note in the current list and moves to the
// editing state. It reports false when the id is not in the list.
func (c *Controller) Edit(id int) bool {
	c.clearMessage()

	for _, n := range c.notes {
		if n.ID == id {
			c.editingID = n.ID
			c.Title = n.Title
			c.Content = n.Content
			c.state = StateEditing
			return true
		}
	}
	return false
}

func (c *Controller) CancelEdit() {
	c.clearMessage()
	c.resetForm()
}

// Submit creates a new note, or updates the one being edited, then refreshes
// the list before reporting success. Empty title or content never leaves the
// client (the server re-checks anyway).
func (c *Controller) Submit(ctx context.Context) error {
	c.clearMessage()

	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Content) == "" {
		c.setMessage("title and content must not be empty", true)
		return errors.New("title and content must not be empty")
	}

	tok, err := c.token()
	if err != nil {
		return err
	}

	editing := c.editingID != 0
	c.state = StateSubmitting

	if editing {
		_, err = c.api.UpdateNote(ctx, tok, c.editingID, c.Title, c.Content)
	} else {
		_, err = c.api.CreateNote(ctx, tok, c.Title, c.Content)
	}
	if err != nil {
		if editing {
			c.state = StateEditing
		} else {
			c.state = StateIdle
		}
		return c.fail(err, "save")
	}

	if err := c.reload(ctx, tok); err != nil {
		return err
	}
	c.resetForm()
	if editing {
		c.setMessage("note updated", false)
	} else {
		c.setMessage("note created", false)
	}
	return nil
}

// RequestDelete holds the target until ConfirmDelete or CancelDelete; no
// delete call is issued before confirmation.
func (c *Controller) RequestDelete(id int) {
	c.clearMessage()
	c.pendingDelete = id
}

func (c *Controller) PendingDelete() (int, bool) {
	return c.pendingDelete, c.pendingDelete != 0
}

func (c *Controller) CancelDelete() {
	c.clearMessage()
	c.pendingDelete = 0
}

func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.clearMessage()

	id := c.pendingDelete
	if id == 0 {
		return nil
	}
	c.pendingDelete = 0

	tok, err := c.token()
	if err != nil {
		return err
	}
	if _, err := c.api.DeleteNote(ctx, tok, id); err != nil {
		return c.fail(err, "delete")
	}
	if err := c.reload(ctx, tok); err != nil {
		return err
	}
	c.setMessage("note deleted", false)
	return nil
}

func (c *Controller) token() (string, error) {
	tok, ok := c.session.Token()
	if !ok {
		return "", ErrSessionExpired
	}
	return tok, nil
}

func (c *Controller) reload(ctx context.Context, tok string) error {
	notes, err := c.api.ListNotes(ctx, tok)
	if err != nil {
		return c.fail(err, "load")
	}
	c.notes = notes
	return nil
}

// fail maps a call failure. 401 clears the session and produces no inline
// message: the session itself is invalid, not the operation. Anything else
// becomes a transient error message and leaves the session alone.
func (c *Controller) fail(err error, action string) error {
	if errors.Is(err, api.ErrUnauthenticated) {
		c.session.Logout()
		return ErrSessionExpired
	}
	msg := "unexpected error"
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	c.setMessage("failed to "+action+" note: "+msg, true)
	return err
}

func (c *Controller) resetForm() {
	c.editingID = 0
	c.Title = ""
	c.Content = ""
	c.state = StateIdle
}

func (c *Controller) setMessage(msg string, isErr bool) {
	c.message = msg
	c.messageIsErr = isErr
	c.messageAt = c.now()
}

func (c *Controller) clearMessage() {
	c.message = ""
	c.messageIsErr = false
}
