package service

import (
	"testing"
	"time"

	"avolkov/resume-api/model"
	"avolkov/resume-api/security"
	"avolkov/resume-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestSessions(t *testing.T) (*gorm.DB, *store.SessionStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Session{}, &model.Resume{}))

	return db, store.NewSessionStore(db, 24*time.Hour)
}

func TestSessionReaper_Reap(t *testing.T) {
	db, sessions := newTestSessions(t)

	now := time.Now()
	rows := []*model.Session{
		{ID: "s1", UserID: "u1", TokenHash: security.TokenDigest("t1"), CreatedAt: now.Add(-48 * time.Hour), ExpiresAt: now.Add(-24 * time.Hour)},
		{ID: "s2", UserID: "u1", TokenHash: security.TokenDigest("t2"), CreatedAt: now.Add(-25 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
		{ID: "s3", UserID: "u2", TokenHash: security.TokenDigest("t3"), CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)},
	}
	for _, s := range rows {
		require.NoError(t, db.Create(s).Error)
	}

	r := NewSessionReaper(sessions, time.Minute)
	r.reap()

	var remaining []model.Session
	require.NoError(t, db.Find(&remaining).Error)

	require.Len(t, remaining, 1)
	assert.Equal(t, "s3", remaining[0].ID)

	// A second pass right away finds nothing more to remove
	r.reap()

	require.NoError(t, db.Find(&remaining).Error)
	assert.Len(t, remaining, 1)
}

func TestSessionReaper_StartStop(t *testing.T) {
	_, sessions := newTestSessions(t)

	r := NewSessionReaper(sessions, time.Hour)
	r.Start()
	r.Stop()
}
