package get

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

type NoteGetter interface {
	GetNote(userID, noteID int) (*models.Note, error)
}

func New(log *slog.Logger, noteGetter NoteGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.get.New"

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
		note, err := noteGetter.GetNote(userID, noteID)
		if errors.Is(err, storage.ErrNoteNotFound) {
			log.Info("note not found", slog.Int("note_id", noteID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found"))
			return
		}
		if err != nil {
			log.Error("failed to get note", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get note"))
			return
		}
		log.Info("note was delivered successfully", slog.Int("note_id", noteID))
		render.JSON(w, r, note)
	}
}
