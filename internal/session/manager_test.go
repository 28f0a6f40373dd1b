package session

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/placeatlas/ops-portal/internal/alert"
	"github.com/placeatlas/ops-portal/internal/conf"
	"github.com/placeatlas/ops-portal/internal/db"
	"github.com/placeatlas/ops-portal/internal/model"
)

func TestMain(m *testing.M) {
	dB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}
	db.Init(dB)
	conf.Conf = conf.DefaultConfig()
	os.Exit(m.Run())
}

type fakeAlerter struct {
	mu     sync.Mutex
	alerts []*alert.SecurityAlert
}

func (f *fakeAlerter) SendSecurityAlert(_ context.Context, a *alert.SecurityAlert) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, a)
	return map[string]bool{"email": true, "slack": true, "discord": true}, nil
}

func (f *fakeAlerter) sent() []*alert.SecurityAlert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*alert.SecurityAlert(nil), f.alerts...)
}

func seedSession(t *testing.T, userID uint, createdAt time.Time) *model.Session {
	t.Helper()
	s := &model.Session{
		SessionID:      uuid.NewString(),
		UserID:         userID,
		SessionToken:   "tok_" + uuid.NewString(),
		RefreshToken:   "opr_" + uuid.NewString(),
		CreatedAt:      createdAt,
		LastActivityAt: createdAt,
		ExpiresAt:      createdAt.Add(24 * time.Hour),
	}
	require.NoError(t, db.CreateSession(s))
	return s
}

func TestCreateUnderCap(t *testing.T) {
	SetAlerter(nil)
	s, evicted, err := Create(201, "u201@example.com", "tok_"+uuid.NewString(), "203.0.113.7", "go-test")
	require.NoError(t, err)
	assert.Nil(t, evicted)
	assert.NotEmpty(t, s.SessionID)
	assert.NotEmpty(t, s.RefreshToken)
	assert.NotEmpty(t, s.DeviceFingerprint)
	assert.True(t, s.Active(time.Now()))
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), s.ExpiresAt, time.Minute)
}

func TestEvictionOrderAndAlert(t *testing.T) {
	fake := &fakeAlerter{}
	SetAlerter(fake)
	defer SetAlerter(nil)

	now := time.Now()
	s1 := seedSession(t, 202, now.Add(-3*time.Minute))
	seedSession(t, 202, now.Add(-2*time.Minute))
	seedSession(t, 202, now.Add(-time.Minute))

	s4, evicted, err := Create(202, "u202@example.com", "tok_"+uuid.NewString(), "203.0.113.7", "go-test")
	require.NoError(t, err)

	// exactly the oldest session goes, the new one is active
	require.NotNil(t, evicted)
	assert.Equal(t, s1.SessionID, evicted.SessionID)
	assert.True(t, s4.Active(time.Now()))

	var revoked model.Session
	require.NoError(t, db.GetDb().First(&revoked, s1.ID).Error)
	require.NotNil(t, revoked.RevokedAt)
	assert.Equal(t, model.RevokeReasonEviction, revoked.RevokedReason)

	count, err := db.CountActiveSessionsByUser(202)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, int64(conf.Conf.Session.MaxConcurrent))

	alerts := fake.sent()
	require.Len(t, alerts, 1)
	assert.Equal(t, "Concurrent session limit exceeded", alerts[0].Title)
	assert.Equal(t, s1.SessionID, alerts[0].Details["evicted_session_id"])
}

func TestCapHoldsOverSequence(t *testing.T) {
	SetAlerter(nil)
	for i := 0; i < 5; i++ {
		_, _, err := Create(203, "", "tok_"+uuid.NewString(), "203.0.113.7", "go-test")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond) // distinct created_at for eviction order
	}
	count, err := db.CountActiveSessionsByUser(203)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, int64(conf.Conf.Session.MaxConcurrent))
}

func TestValidateBoundary(t *testing.T) {
	now := time.Now()

	past := seedSession(t, 204, now.Add(-24*time.Hour).Add(-time.Second))
	assert.Nil(t, Validate(past.SessionToken))

	live := &model.Session{
		SessionID:      uuid.NewString(),
		UserID:         204,
		SessionToken:   "tok_" + uuid.NewString(),
		CreatedAt:      now,
		LastActivityAt: now.Add(-time.Minute),
		ExpiresAt:      now.Add(time.Second),
	}
	require.NoError(t, db.CreateSession(live))
	got := Validate(live.SessionToken)
	require.NotNil(t, got)
	assert.Equal(t, live.SessionID, got.SessionID)

	// validation refreshed the advisory activity timestamp
	var stored model.Session
	require.NoError(t, db.GetDb().First(&stored, live.ID).Error)
	assert.True(t, stored.LastActivityAt.After(now.Add(-time.Minute)))
}

func TestValidateRejectsRevokedAndEmpty(t *testing.T) {
	s := seedSession(t, 205, time.Now())
	require.True(t, Revoke(s.ID, model.RevokeReasonAdminAction))
	assert.Nil(t, Validate(s.SessionToken))
	assert.Nil(t, Validate(""))
	assert.Nil(t, Validate("tok_unknown"))
}

func TestRevokeIdempotent(t *testing.T) {
	s := seedSession(t, 206, time.Now())
	assert.True(t, Revoke(s.ID, model.RevokeReasonUserLogout))
	assert.True(t, Revoke(s.ID, model.RevokeReasonUserLogout))

	var stored model.Session
	require.NoError(t, db.GetDb().First(&stored, s.ID).Error)
	require.NotNil(t, stored.RevokedAt)
	assert.Equal(t, model.RevokeReasonUserLogout, stored.RevokedReason)
}

func TestRevokeAllForUser(t *testing.T) {
	for i := 0; i < 3; i++ {
		seedSession(t, 207, time.Now())
	}
	assert.EqualValues(t, 3, RevokeAllForUser(207, model.RevokeReasonUserLogoutAll))
	assert.EqualValues(t, 0, RevokeAllForUser(207, model.RevokeReasonUserLogoutAll))
	assert.Empty(t, ListForUser(207))
}

func TestListForUserNewestFirst(t *testing.T) {
	now := time.Now()
	seedSession(t, 208, now.Add(-2*time.Minute))
	newest := seedSession(t, 208, now)
	seedSession(t, 208, now.Add(-time.Minute))

	list := ListForUser(208)
	require.Len(t, list, 3)
	assert.Equal(t, newest.SessionID, list[0].SessionID)
}
