package update

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	JWTMiddleware "github.com/zsigidavid/notekeeper/internal/middleware"
	"github.com/zsigidavid/notekeeper/internal/models"
	"github.com/zsigidavid/notekeeper/internal/storage"
	"github.com/zsigidavid/notekeeper/pkg/api/response"
	"github.com/zsigidavid/notekeeper/pkg/logger/sl"
)

type Request struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type NoteUpdater interface {
	UpdateNote(noteID, userID int, title, content string) (*models.Note, error)
}

// New replaces a note's title and content. The store lookup is scoped by
// (note id, owner), so a note that exists but belongs to someone else gets
// the same 404 as one that does not exist at all.
func New(log *slog.Logger, noteUpdater NoteUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.update.New"
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
		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request body"))
			return
		}
		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}
		note, err := noteUpdater.UpdateNote(noteID, userID, req.Title, req.Content)
		if errors.Is(err, storage.ErrNoteNotFound) {
			log.Info("note not found", slog.Int("note_id", noteID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found"))
			return
		}
		if err != nil {
			log.Error("failed to update note", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update note"))
			return
		}

		log.Info("note successfully updated", slog.Int("note_id", noteID))
		render.JSON(w, r, note)
	}
}
