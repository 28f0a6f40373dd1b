package db

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/placeatlas/ops-portal/internal/model"
)

// A session is active iff revoked_at IS NULL AND expires_at > now. Every
// query and conditional update below encodes that predicate; revocation is
// monotonic so the WHERE clause doubles as the idempotence guard.

func CreateSession(s *model.Session) error {
	return errors.WithStack(db.Create(s).Error)
}

// GetActiveSessionByToken looks a session up by its provider token, filtered
// to active. Missing, revoked and expired all come back as the same error.
func GetActiveSessionByToken(token string) (*model.Session, error) {
	var s model.Session
	err := db.Where("session_token = ? AND revoked_at IS NULL AND expires_at > ?", token, time.Now()).
		First(&s).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed find active session")
	}
	return &s, nil
}

func CountActiveSessionsByUser(userID uint) (int64, error) {
	var count int64
	err := db.Model(&model.Session{}).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now()).
		Count(&count).Error
	return count, errors.WithStack(err)
}

// GetOldestActiveSession returns the least-recently-created active session of
// the user, the one the cap evicts first.
func GetOldestActiveSession(userID uint) (*model.Session, error) {
	var s model.Session
	err := db.Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now()).
		Order("created_at ASC").First(&s).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed get oldest active session")
	}
	return &s, nil
}

// ListActiveSessionsByUser returns the user's active sessions, newest first.
func ListActiveSessionsByUser(userID uint) ([]model.Session, error) {
	var sessions []model.Session
	err := db.Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").Find(&sessions).Error
	return sessions, errors.WithStack(err)
}

func revoke(query *gorm.DB, reason string) (int64, error) {
	res := query.Where("revoked_at IS NULL").Updates(map[string]interface{}{
		"revoked_at":     time.Now(),
		"revoked_reason": reason,
	})
	return res.RowsAffected, errors.WithStack(res.Error)
}

// RevokeSession revokes by internal id. Returns rows affected; 0 means the
// session was already revoked or does not exist.
func RevokeSession(id uint, reason string) (int64, error) {
	return revoke(db.Model(&model.Session{}).Where("id = ?", id), reason)
}

func RevokeSessionByToken(token string, reason string) (int64, error) {
	return revoke(db.Model(&model.Session{}).Where("session_token = ?", token), reason)
}

func RevokeAllUserSessions(userID uint, reason string) (int64, error) {
	return revoke(db.Model(&model.Session{}).Where("user_id = ?", userID), reason)
}

func UpdateSessionLastActivity(id uint, t time.Time) error {
	return errors.WithStack(db.Model(&model.Session{}).Where("id = ?", id).
		Update("last_activity_at", t).Error)
}
