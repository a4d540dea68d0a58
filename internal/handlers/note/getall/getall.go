package getall

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	JWTMiddleware "github.com/zsigidavid/notekeeper/internal/middleware"
	"github.com/zsigidavid/notekeeper/internal/models"
	"github.com/zsigidavid/notekeeper/pkg/api/response"
	"github.com/zsigidavid/notekeeper/pkg/logger/sl"
)

type AllNotesGetter interface {
	GetAllNotes(userID int) ([]models.Note, error)
}

// New lists every note the requester owns, in store order. A user with no
// notes gets an empty array, not an error.
func New(log *slog.Logger, allNotesGetter AllNotesGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.getall.New"

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

		notes, err := allNotesGetter.GetAllNotes(userID)
		if err != nil {
			log.Error("failed to get notes", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get notes"))
			return
		}
		if notes == nil {
			notes = []models.Note{}
		}
		log.Info("notes were delivered successfully", slog.Int("count", len(notes)))
		render.JSON(w, r, notes)
	}
}
