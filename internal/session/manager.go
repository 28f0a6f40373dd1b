package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/placeatlas/ops-portal/internal/alert"
	"github.com/placeatlas/ops-portal/internal/conf"
	"github.com/placeatlas/ops-portal/internal/db"
	"github.com/placeatlas/ops-portal/internal/errs"
	"github.com/placeatlas/ops-portal/internal/model"
	"github.com/placeatlas/ops-portal/pkg/utils"
)

// Alerter receives security alerts raised by session enforcement.
// *alert.Dispatcher satisfies it; tests inject fakes.
type Alerter interface {
	SendSecurityAlert(ctx context.Context, a *alert.SecurityAlert) (map[string]bool, error)
}

var alerter Alerter

// SetAlerter wires the dispatcher in at bootstrap. A nil alerter disables
// eviction alerts but never session enforcement.
func SetAlerter(a Alerter) {
	alerter = a
}

// Create registers a session for a login the identity provider already
// verified. When the user is at the concurrency cap the oldest active session
// is revoked first; eviction failure is logged and the login still succeeds.
// The evicted session, if any, is returned alongside the new one.
func Create(userID uint, userEmail, providerAccessToken, ipAddress, userAgent string) (*model.Session, *model.Session, error) {
	maxSessions := conf.Conf.Session.MaxConcurrent
	// fail closed: if we cannot count we must not create
	count, err := db.CountActiveSessionsByUser(userID)
	if err != nil {
		return nil, nil, errors.WithMessage(errs.StorageError, err.Error())
	}

	var evicted *model.Session
	if maxSessions > 0 && count >= int64(maxSessions) {
		oldest, gerr := db.GetOldestActiveSession(userID)
		if gerr != nil {
			utils.Log.Warnf("failed find session to evict for user %d: %s", userID, gerr.Error())
		} else if _, rerr := db.RevokeSession(oldest.ID, model.RevokeReasonEviction); rerr != nil {
			utils.Log.Warnf("failed evict session %s: %s", oldest.SessionID, rerr.Error())
		} else {
			evicted = oldest
		}
	}

	now := time.Now()
	s := &model.Session{
		SessionID:         uuid.NewString(),
		UserID:            userID,
		SessionToken:      providerAccessToken,
		RefreshToken:      "opr_" + utils.SecureToken(32),
		IPAddress:         ipAddress,
		UserAgent:         userAgent,
		DeviceFingerprint: utils.DeviceFingerprint(userAgent, ipAddress),
		CreatedAt:         now,
		LastActivityAt:    now,
		ExpiresAt:         now.Add(time.Duration(conf.Conf.Session.DurationHours) * time.Hour),
	}
	if err := db.CreateSession(s); err != nil {
		// the evicted session stays revoked; revocation is monotonic and
		// the user can retry login
		return nil, evicted, errors.WithMessage(errs.StorageError, err.Error())
	}

	if evicted != nil && alerter != nil {
		a := alert.SessionLimitExceeded(userID, userEmail, ipAddress, userAgent,
			evicted.SessionID, maxSessions)
		if _, aerr := alerter.SendSecurityAlert(context.Background(), a); aerr != nil {
			utils.Log.Warnf("failed dispatch eviction alert for user %d: %s", userID, aerr.Error())
		}
	}
	return s, evicted, nil
}

// Validate returns the session for an active token, nil otherwise. Missing,
// revoked, expired and store failure are indistinguishable to the caller.
func Validate(token string) *model.Session {
	if token == "" {
		return nil
	}
	s, err := db.GetActiveSessionByToken(token)
	if err != nil {
		return nil
	}
	s.LastActivityAt = time.Now()
	// advisory field, best effort; last writer wins
	if err := db.UpdateSessionLastActivity(s.ID, s.LastActivityAt); err != nil {
		utils.Log.Debugf("failed refresh session activity: %s", err.Error())
	}
	return s
}

// Revoke marks a session revoked. Revoking an already revoked session is a
// no-op, not an error.
func Revoke(id uint, reason string) bool {
	_, err := db.RevokeSession(id, reason)
	if err != nil {
		utils.Log.Errorf("failed revoke session %d: %s", id, err.Error())
	}
	return err == nil
}

func RevokeByToken(token string, reason string) bool {
	_, err := db.RevokeSessionByToken(token, reason)
	if err != nil {
		utils.Log.Errorf("failed revoke session by token: %s", err.Error())
	}
	return err == nil
}

// RevokeAllForUser revokes every active session of the user and returns how
// many were revoked.
func RevokeAllForUser(userID uint, reason string) int64 {
	count, err := db.RevokeAllUserSessions(userID, reason)
	if err != nil {
		utils.Log.Errorf("failed revoke sessions of user %d: %s", userID, err.Error())
		return 0
	}
	return count
}

// ListForUser returns the user's active sessions, newest first. Store errors
// fail closed into an empty list.
func ListForUser(userID uint) []model.Session {
	sessions, err := db.ListActiveSessionsByUser(userID)
	if err != nil {
		utils.Log.Errorf("failed list sessions of user %d: %s", userID, err.Error())
		return nil
	}
	return sessions
}
