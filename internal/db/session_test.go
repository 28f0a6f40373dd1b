package db

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/placeatlas/ops-portal/internal/model"
)

func TestMain(m *testing.M) {
	dB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}
	Init(dB)
	os.Exit(m.Run())
}

func newSession(userID uint, createdAt, expiresAt time.Time) *model.Session {
	return &model.Session{
		SessionID:      uuid.NewString(),
		UserID:         userID,
		SessionToken:   "tok_" + uuid.NewString(),
		RefreshToken:   "opr_" + uuid.NewString(),
		IPAddress:      "203.0.113.7",
		UserAgent:      "go-test",
		CreatedAt:      createdAt,
		LastActivityAt: createdAt,
		ExpiresAt:      expiresAt,
	}
}

func TestActiveFilterBoundary(t *testing.T) {
	now := time.Now()

	expired := newSession(101, now.Add(-time.Hour), now.Add(-time.Second))
	require.NoError(t, CreateSession(expired))
	_, err := GetActiveSessionByToken(expired.SessionToken)
	assert.Error(t, err)

	live := newSession(101, now, now.Add(time.Second))
	require.NoError(t, CreateSession(live))
	got, err := GetActiveSessionByToken(live.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, live.SessionID, got.SessionID)
}

func TestRevokeIsMonotonic(t *testing.T) {
	now := time.Now()
	s := newSession(102, now, now.Add(time.Hour))
	require.NoError(t, CreateSession(s))

	rows, err := RevokeSession(s.ID, model.RevokeReasonUserLogout)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	// second revoke is a no-op and must not overwrite the reason
	rows, err = RevokeSession(s.ID, model.RevokeReasonAdminAction)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)

	var got model.Session
	require.NoError(t, GetDb().First(&got, s.ID).Error)
	require.NotNil(t, got.RevokedAt)
	assert.Equal(t, model.RevokeReasonUserLogout, got.RevokedReason)
}

func TestCountAndOrdering(t *testing.T) {
	now := time.Now()
	s1 := newSession(103, now.Add(-3*time.Minute), now.Add(time.Hour))
	s2 := newSession(103, now.Add(-2*time.Minute), now.Add(time.Hour))
	s3 := newSession(103, now.Add(-time.Minute), now.Add(time.Hour))
	for _, s := range []*model.Session{s1, s2, s3} {
		require.NoError(t, CreateSession(s))
	}
	// revoked and expired rows must not count
	require.NoError(t, CreateSession(newSession(103, now.Add(-time.Hour), now.Add(-time.Minute))))
	revoked := newSession(103, now, now.Add(time.Hour))
	require.NoError(t, CreateSession(revoked))
	_, err := RevokeSession(revoked.ID, model.RevokeReasonUserLogout)
	require.NoError(t, err)

	count, err := CountActiveSessionsByUser(103)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	oldest, err := GetOldestActiveSession(103)
	require.NoError(t, err)
	assert.Equal(t, s1.SessionID, oldest.SessionID)

	list, err := ListActiveSessionsByUser(103)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, s3.SessionID, list[0].SessionID)
	assert.Equal(t, s1.SessionID, list[2].SessionID)
}

func TestRevokeAllUserSessions(t *testing.T) {
	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, CreateSession(newSession(104, now, now.Add(time.Hour))))
	}
	count, err := RevokeAllUserSessions(104, model.RevokeReasonUserLogoutAll)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = RevokeAllUserSessions(104, model.RevokeReasonUserLogoutAll)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestRevokeSessionByToken(t *testing.T) {
	now := time.Now()
	s := newSession(105, now, now.Add(time.Hour))
	require.NoError(t, CreateSession(s))

	rows, err := RevokeSessionByToken(s.SessionToken, model.RevokeReasonUserLogout)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	_, err = GetActiveSessionByToken(s.SessionToken)
	assert.Error(t, err)
}
