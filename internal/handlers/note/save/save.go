package save

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	JWTMiddleware "github.com/zsigidavid/notekeeper/internal/middleware"
	"github.com/zsigidavid/notekeeper/internal/models"
	"github.com/zsigidavid/notekeeper/pkg/api/response"
	"github.com/zsigidavid/notekeeper/pkg/logger/sl"
)

type Request struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type NoteSaver interface {
	SaveNote(userID int, title, content string) (*models.Note, error)
}

func New(log *slog.Logger, noteSaver NoteSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.save.New"
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
		var req Request
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}
		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		note, err := noteSaver.SaveNote(userID, req.Title, req.Content)
		if err != nil {
			log.Error("failed to create note", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create note"))
			return
		}
		log.Info("note successfully created", slog.Int("note_id", note.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, note)
	}
}
