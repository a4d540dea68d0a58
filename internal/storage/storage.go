package storage

import (
	"errors"

	"github.com/zsigidavid/notekeeper/internal/models"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Storage is the full store surface the application wires together.
// Handlers depend on narrower per-operation interfaces; this one exists for
// composition in main and in tests. Every note operation takes the owner's
// user id and must scope its lookup by it: a note belonging to another user
// behaves exactly like a note that does not exist.
type Storage interface {
	SaveUser(username, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	SaveNote(userID int, title, content string) (*models.Note, error)
	GetNote(userID, noteID int) (*models.Note, error)
	GetAllNotes(userID int) ([]models.Note, error)
	UpdateNote(noteID, userID int, title, content string) (*models.Note, error)
	DeleteNote(noteID, userID int) (*models.Note, error)
}
