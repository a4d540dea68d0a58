package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	noteDelete "github.com/zsigidavid/notekeeper/internal/handlers/note/delete"
	"github.com/zsigidavid/notekeeper/internal/handlers/note/get"
	"github.com/zsigidavid/notekeeper/internal/handlers/note/getall"
	noteSave "github.com/zsigidavid/notekeeper/internal/handlers/note/save"
	"github.com/zsigidavid/notekeeper/internal/handlers/note/update"
	"github.com/zsigidavid/notekeeper/internal/handlers/user/login"
	userSave "github.com/zsigidavid/notekeeper/internal/handlers/user/save"
	JWTMiddleware "github.com/zsigidavid/notekeeper/internal/middleware"
	"github.com/zsigidavid/notekeeper/internal/storage"
	"github.com/zsigidavid/notekeeper/pkg/auth"
)

// NewRouter wires every route under the /api base path. Auth endpoints are
// public; the /api/notes subtree sits behind the JWT middleware, the single
// choke point where tokens are parsed.
func NewRouter(log *slog.Logger, store storage.Storage, tokens *auth.TokenManager) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("NoteKeeper API is running"))
		})
		r.Post("/auth/register", userSave.New(log, store))
		r.Post("/auth/login", login.New(log, store, tokens))

		r.Route("/notes", func(r chi.Router) {
			r.Use(JWTMiddleware.JWT(tokens))
			r.Get("/", getall.New(log, store))
			r.Post("/", noteSave.New(log, store))
			r.Get("/{note_id}", get.New(log, store))
			r.Put("/{note_id}", update.New(log, store))
			r.Delete("/{note_id}", noteDelete.New(log, store))
		})
	})

	return router
}
