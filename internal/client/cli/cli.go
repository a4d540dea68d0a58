package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zsigidavid/notekeeper/internal/client/api"
	"github.com/zsigidavid/notekeeper/internal/client/notes"
	"github.com/zsigidavid/notekeeper/internal/client/session"
)

// App is a line-oriented client for the notekeeper API. Note commands are
// gated on a live session, but that gate is a convenience only; the server
// rejects unauthenticated calls regardless.
type App struct {
	in      *bufio.Scanner
	out     io.Writer
	api     *api.Client
	session *session.Session
	notes   *notes.Controller
}

func NewApp(baseURL string, in io.Reader, out io.Writer) *App {
	apiClient := api.New(baseURL)
	sess := session.New()
	return &App{
		in:      bufio.NewScanner(in),
		out:     out,
		api:     apiClient,
		session: sess,
		notes:   notes.NewController(apiClient, sess),
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "notekeeper client, type 'help' for commands")
	for {
		fmt.Fprint(a.out, "> ")
		if !a.in.Scan() {
			return
		}
		fields := strings.Fields(a.in.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.session.Logout()
			fmt.Fprintln(a.out, "logged out")
		case "list":
			a.guarded(ctx, a.notes.Refresh)
			a.printNotes()
		case "create":
			a.create(ctx)
		case "edit":
			a.edit(ctx, args)
		case "delete":
			a.delete(args)
		case "confirm":
			a.guarded(ctx, a.notes.ConfirmDelete)
		case "cancel":
			a.notes.CancelDelete()
			a.notes.CancelEdit()
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(a.out, "unknown command: %s\n", cmd)
		}
		a.printMessage()
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `commands:
  register            create an account
  login               log in and start a session
  logout              drop the session
  list                show your notes
  create              create a note
  edit <id>           edit a note
  delete <id>         delete a note (asks for confirm)
  confirm / cancel    resolve a pending delete
  quit`)
}

func (a *App) register(ctx context.Context) {
	username := a.prompt("username: ")
	email := a.prompt("email: ")
	password := a.prompt("password: ")

	user, err := a.api.Register(ctx, username, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "registration failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "registered %s, you can log in now\n", user.Username)
}

func (a *App) login(ctx context.Context) {
	email := a.prompt("email: ")
	password := a.prompt("password: ")

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "login failed: %v\n", err)
		return
	}
	a.session.Login(token)
	fmt.Fprintln(a.out, "logged in")
}

func (a *App) create(ctx context.Context) {
	if !a.requireSession() {
		return
	}
	a.notes.Title = a.prompt("title: ")
	a.notes.Content = a.prompt("content: ")
	a.guarded(ctx, a.notes.Submit)
	a.printNotes()
}

func (a *App) edit(ctx context.Context, args []string) {
	if !a.requireSession() {
		return
	}
	id, ok := a.parseID(args)
	if !ok {
		return
	}
	if !a.notes.Edit(id) {
		fmt.Fprintln(a.out, "no such note in your list, run 'list' first")
		return
	}
	fmt.Fprintf(a.out, "editing %d (empty input keeps the current value)\n", id)
	if title := a.prompt("title: "); title != "" {
		a.notes.Title = title
	}
	if content := a.prompt("content: "); content != "" {
		a.notes.Content = content
	}
	a.guarded(ctx, a.notes.Submit)
	a.printNotes()
}

func (a *App) delete(args []string) {
	if !a.requireSession() {
		return
	}
	id, ok := a.parseID(args)
	if !ok {
		return
	}
	a.notes.RequestDelete(id)
	fmt.Fprintf(a.out, "delete note %d? type 'confirm' or 'cancel'\n", id)
}

// guarded runs a controller call and handles the one failure the controller
// cannot: an expired session, which sends the user back to login.
func (a *App) guarded(ctx context.Context, fn func(context.Context) error) {
	if !a.requireSession() {
		return
	}
	if err := fn(ctx); errors.Is(err, notes.ErrSessionExpired) {
		fmt.Fprintln(a.out, "session expired, please log in again")
	}
}

func (a *App) requireSession() bool {
	if !a.session.Authenticated() {
		fmt.Fprintln(a.out, "not logged in, use 'login' first")
		return false
	}
	return true
}

func (a *App) parseID(args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: <command> <id>")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "id must be a number")
		return 0, false
	}
	return id, true
}

func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *App) printNotes() {
	for _, n := range a.notes.Notes() {
		fmt.Fprintf(a.out, "%4d  %s\n      %s\n", n.ID, n.Title, n.Content)
	}
	if len(a.notes.Notes()) == 0 {
		fmt.Fprintln(a.out, "no notes yet")
	}
}

func (a *App) printMessage() {
	if msg, isErr, ok := a.notes.Message(); ok {
		if isErr {
			fmt.Fprintf(a.out, "error: %s\n", msg)
		} else {
			fmt.Fprintln(a.out, msg)
		}
	}
}
