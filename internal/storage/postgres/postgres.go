package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/zsigidavid/notekeeper/internal/models"
	"github.com/zsigidavid/notekeeper/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("%s: set dialect: %w", op, err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("%s: migrate: %w", op, err)
	}

	return &Storage{
		db: db,
	}, nil
}

func (s *Storage) SaveUser(username, email, password string) (*models.User, error) {
	const op = "storage.postgres.SaveUser"

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: hash password: %w", op, err)
	}
	var u models.User
	err = s.db.QueryRow(
		"INSERT INTO users(username, email, password) VALUES($1, $2, $3) RETURNING id, username, email, created_at",
		username, email, hashedPassword,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return nil, storage.ErrUserExists
		}
		return nil, fmt.Errorf("%s: insert user: %w", op, err)
	}

	return &u, nil
}

func (s *Storage) GetUserByEmail(email string) (*models.User, error) {
	const op = "storage.postgres.GetUserByEmail"

	stmt, err := s.db.Prepare("SELECT id, username, email, password, created_at FROM users WHERE email=$1")
	if err != nil {
		return nil, fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()
	var u models.User
	err = stmt.QueryRow(email).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}
	return &u, nil
}

func (s *Storage) SaveNote(userID int, title, content string) (*models.Note, error) {
	const op = "storage.postgres.SaveNote"

	var n models.Note
	err := s.db.QueryRow(
		"INSERT INTO notes(user_id, title, content) VALUES($1, $2, $3) RETURNING id, user_id, title, content, created_at, updated_at",
		userID, title, content,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: insert note: %w", op, err)
	}
	return &n, nil
}

func (s *Storage) GetNote(userID, noteID int) (*models.Note, error) {
	const op = "storage.postgres.GetNote"

	stmt, err := s.db.Prepare("SELECT id, user_id, title, content, created_at, updated_at FROM notes WHERE id=$1 AND user_id=$2")
	if err != nil {
		return nil, fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()
	var n models.Note
	err = stmt.QueryRow(noteID, userID).Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Content,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}
	return &n, nil
}

func (s *Storage) GetAllNotes(userID int) ([]models.Note, error) {
	const op = "storage.postgres.GetAllNotes"

	rows, err := s.db.Query(
		"SELECT id, user_id, title, content, created_at, updated_at FROM notes WHERE user_id = $1 ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return notes, nil
}

// UpdateNote replaces title/content of the note in a single statement scoped
// by both note id and owner. A note owned by someone else is indistinguishable
// from a missing one: both come back as ErrNoteNotFound.
func (s *Storage) UpdateNote(noteID, userID int, title, content string) (*models.Note, error) {
	const op = "storage.postgres.UpdateNote"

	var n models.Note
	err := s.db.QueryRow(
		"UPDATE notes SET title=$1, content=$2, updated_at=NOW() WHERE id=$3 AND user_id=$4 RETURNING id, user_id, title, content, created_at, updated_at",
		title, content, noteID, userID,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: update: %w", op, err)
	}
	return &n, nil
}

func (s *Storage) DeleteNote(noteID, userID int) (*models.Note, error) {
	const op = "storage.postgres.DeleteNote"

	var n models.Note
	err := s.db.QueryRow(
		"DELETE FROM notes WHERE id=$1 AND user_id=$2 RETURNING id, user_id, title, content, created_at, updated_at",
		noteID, userID,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: delete: %w", op, err)
	}
	return &n, nil
}
