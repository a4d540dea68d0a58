package inmemory

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zsigidavid/notekeeper/internal/storage"
)

func TestSaveUser_HashesPassword(t *testing.T) {
	t.Parallel()

	s := New()
	u, err := s.SaveUser("alice", "a@x.com", "Passw0rd")
	require.NoError(t, err)
	require.NotEqual(t, "Passw0rd", u.Password)

	got, err := s.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("Passw0rd")))
}

func TestSaveUser_Duplicates(t *testing.T) {
	t.Parallel()

	s := New()
	_, err := s.SaveUser("alice", "a@x.com", "Passw0rd")
	require.NoError(t, err)

	_, err = s.SaveUser("alice", "other@x.com", "Passw0rd")
	require.ErrorIs(t, err, storage.ErrUserExists)

	_, err = s.SaveUser("bob", "a@x.com", "Passw0rd")
	require.ErrorIs(t, err, storage.ErrUserExists)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	t.Parallel()

	s := New()
	_, err := s.GetUserByEmail("nobody@x.com")
	require.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestNotes_OwnershipScoping(t *testing.T) {
	t.Parallel()

	s := New()
	alice, err := s.SaveUser("alice", "a@x.com", "Passw0rd")
	require.NoError(t, err)
	bob, err := s.SaveUser("bob", "b@x.com", "Passw0rd")
	require.NoError(t, err)

	note, err := s.SaveNote(alice.ID, "T", "C")
	require.NoError(t, err)

	// bob must never observe alice's note, whatever the operation
	_, err = s.GetNote(bob.ID, note.ID)
	require.ErrorIs(t, err, storage.ErrNoteNotFound)

	_, err = s.UpdateNote(note.ID, bob.ID, "X", "Y")
	require.ErrorIs(t, err, storage.ErrNoteNotFound)

	_, err = s.DeleteNote(note.ID, bob.ID)
	require.ErrorIs(t, err, storage.ErrNoteNotFound)

	bobNotes, err := s.GetAllNotes(bob.ID)
	require.NoError(t, err)
	require.Empty(t, bobNotes)

	// the failed foreign operations left alice's note intact
	got, err := s.GetNote(alice.ID, note.ID)
	require.NoError(t, err)
	require.Equal(t, "T", got.Title)
	require.Equal(t, "C", got.Content)
}

func TestUpdateNote_RefreshesTimestamp(t *testing.T) {
	t.Parallel()

	s := New()
	alice, err := s.SaveUser("alice", "a@x.com", "Passw0rd")
	require.NoError(t, err)

	note, err := s.SaveNote(alice.ID, "T", "C")
	require.NoError(t, err)

	updated, err := s.UpdateNote(note.ID, alice.ID, "T2", "C2")
	require.NoError(t, err)
	require.Equal(t, "T2", updated.Title)
	require.Equal(t, "C2", updated.Content)
	require.False(t, updated.UpdatedAt.Before(note.UpdatedAt))
}

func TestDeleteNote_Idempotence(t *testing.T) {
	t.Parallel()

	s := New()
	alice, err := s.SaveUser("alice", "a@x.com", "Passw0rd")
	require.NoError(t, err)

	note, err := s.SaveNote(alice.ID, "T", "C")
	require.NoError(t, err)

	deleted, err := s.DeleteNote(note.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, note.ID, deleted.ID)

	_, err = s.DeleteNote(note.ID, alice.ID)
	require.ErrorIs(t, err, storage.ErrNoteNotFound)
}
