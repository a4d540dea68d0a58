package delete

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	JWTMiddleware "github.com/zsigidavid/notekeeper/internal/middleware"
	"github.com/zsigidavid/notekeeper/internal/models"
	"github.com/zsigidavid/notekeeper/internal/storage"
	"github.com/zsigidavid/notekeeper/pkg/api/response"
	"github.com/zsigidavid/notekeeper/pkg/logger/sl"
)

type NoteDeleter interface {
	DeleteNote(noteID, userID int) (*models.Note, error)
}

// New removes a note and returns the removed record. Deleting an already
// deleted (or foreign) note is a 404.
func New(log *slog.Logger, noteDeleter NoteDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.delete.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		userID := JWTMiddleware.GetUserID(r.Context())
		if userID == 0 {
			log.Error("unauthorized: no user_id in context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("please authenticate"))
			return
		}

		noteID, err := strconv.Atoi(chi.URLParam(r, "note_id"))
		if err != nil {
			log.Info("invalid note id", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found"))
			return
		}
		note, err := noteDeleter.DeleteNote(noteID, userID)
		if errors.Is(err, storage.ErrNoteNotFound) {
			log.Info("note not found", slog.Int("note_id", noteID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found"))
			return
		}
		if err != nil {
			log.Error("failed to delete note", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete note"))
			return
		}

		log.Info("note successfully deleted", slog.Int("note_id", noteID))
		render.JSON(w, r, note)
	}
}
