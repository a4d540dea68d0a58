package inmemory

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zsigidavid/notekeeper/internal/models"
	"github.com/zsigidavid/notekeeper/internal/storage"
)

// Storage keeps users and notes in process memory. It backs local runs
// (storage_path ":memory:") and the handler/router tests, with the same
// ownership scoping as the Postgres store: every note lookup is keyed by
// (note id, owner id).
type Storage struct {
	mu         sync.Mutex
	users      map[int]models.User
	notes      map[int]models.Note
	nextUserID int
	nextNoteID int
}

func New() *Storage {
	return &Storage{
		users:      make(map[int]models.User),
		notes:      make(map[int]models.Note),
		nextUserID: 1,
		nextNoteID: 1,
	}
}

func (s *Storage) SaveUser(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, storage.ErrUserExists
		}
	}

	u := models.User{
		ID:        s.nextUserID,
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
	}
	s.users[u.ID] = u
	s.nextUserID++

	return &u, nil
}

func (s *Storage) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (s *Storage) SaveNote(userID int, title, content string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	n := models.Note{
		ID:        s.nextNoteID,
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes[n.ID] = n
	s.nextNoteID++

	return &n, nil
}

func (s *Storage) GetNote(userID, noteID int) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[noteID]
	if !ok || n.UserID != userID {
		return nil, storage.ErrNoteNotFound
	}
	note := n
	return &note, nil
}

func (s *Storage) GetAllNotes(userID int) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notes []models.Note
	for _, n := range s.notes {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (s *Storage) UpdateNote(noteID, userID int, title, content string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[noteID]
	if !ok || n.UserID != userID {
		return nil, storage.ErrNoteNotFound
	}
	n.Title = title
	n.Content = content
	n.UpdatedAt = time.Now()
	s.notes[noteID] = n

	note := n
	return &note, nil
}

func (s *Storage) DeleteNote(noteID, userID int) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[noteID]
	if !ok || n.UserID != userID {
		return nil, storage.ErrNoteNotFound
	}
	delete(s.notes, noteID)

	note := n
	return &note, nil
}
