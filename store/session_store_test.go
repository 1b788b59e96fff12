package store

import (
	"testing"
	"time"

	"avolkov/resume-api/model"
	"avolkov/resume-api/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func insertSession(t *testing.T, db *gorm.DB, userID, token string, createdAt, expiresAt time.Time) *model.Session {
	t.Helper()

	id, err := newID()
	require.NoError(t, err)

	sess := &model.Session{
		ID:        id,
		UserID:    userID,
		TokenHash: security.TokenDigest(token),
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, db.Create(sess).Error)

	return sess
}

func TestSessionStore_CreateExpiryWindow(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "anna@example.com")
	sessions := NewSessionStore(db, 24*time.Hour)

	sess, err := sessions.Create(user.ID, "token-1")
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, sess.ExpiresAt.Sub(sess.CreatedAt))
	assert.Equal(t, security.TokenDigest("token-1"), sess.TokenHash)
	assert.NotContains(t, sess.TokenHash, "token-1")
}

func TestSessionStore_FindActive(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "anna@example.com")
	sessions := NewSessionStore(db, 24*time.Hour)

	now := time.Now()

	// One lapsed row and two live ones, the newest must win
	insertSession(t, db, user.ID, "expired", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	insertSession(t, db, user.ID, "older", now.Add(-2*time.Hour), now.Add(22*time.Hour))
	newest := insertSession(t, db, user.ID, "newest", now.Add(-time.Hour), now.Add(23*time.Hour))

	found, err := sessions.FindActive(user.ID)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, found.ID)
}

func TestSessionStore_FindActiveNone(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "anna@example.com")
	sessions := NewSessionStore(db, 24*time.Hour)

	_, err := sessions.FindActive(user.ID)
	assert.ErrorIs(t, err, ErrNoActiveSession)

	now := time.Now()
	insertSession(t, db, user.ID, "expired", now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	_, err = sessions.FindActive(user.ID)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSessionStore_Latest(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "anna@example.com")
	sessions := NewSessionStore(db, 24*time.Hour)

	_, err := sessions.Latest(user.ID)
	assert.ErrorIs(t, err, ErrNoSession)

	now := time.Now()
	lapsed := insertSession(t, db, user.ID, "expired", now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	// Latest reports even on a lapsed session
	found, err := sessions.Latest(user.ID)
	require.NoError(t, err)
	assert.Equal(t, lapsed.ID, found.ID)
}

func TestSessionStore_DeleteAll(t *testing.T) {
	db := newTestDB(t)
	anna := newTestUser(t, db, "anna@example.com")
	boris := newTestUser(t, db, "boris@example.com")
	sessions := NewSessionStore(db, 24*time.Hour)

	_, err := sessions.Create(anna.ID, "anna-1")
	require.NoError(t, err)
	_, err = sessions.Create(anna.ID, "anna-2")
	require.NoError(t, err)
	_, err = sessions.Create(boris.ID, "boris-1")
	require.NoError(t, err)

	n, err := sessions.DeleteAll(anna.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = sessions.FindActive(anna.ID)
	assert.ErrorIs(t, err, ErrNoActiveSession)

	// Other users keep their sessions
	_, err = sessions.FindActive(boris.ID)
	assert.NoError(t, err)
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "anna@example.com")
	sessions := NewSessionStore(db, 24*time.Hour)

	now := time.Now()
	insertSession(t, db, user.ID, "expired-1", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	insertSession(t, db, user.ID, "expired-2", now.Add(-25*time.Hour), now.Add(-time.Hour))
	live := insertSession(t, db, user.ID, "live", now, now.Add(24*time.Hour))

	n, err := sessions.PurgeExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	found, err := sessions.FindActive(user.ID)
	require.NoError(t, err)
	assert.Equal(t, live.ID, found.ID)

	// Idempotent, a second immediate pass removes nothing
	n, err = sessions.PurgeExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestSessionStore_CountAll(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "anna@example.com")
	sessions := NewSessionStore(db, 24*time.Hour)

	n, err := sessions.CountAll()
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = sessions.Create(user.ID, "token-1")
	require.NoError(t, err)

	n, err = sessions.CountAll()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
