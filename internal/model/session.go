package model

import "time"

// Revocation reasons. Once a session is revoked the reason never changes.
const (
	RevokeReasonUserLogout    = "user_logout"
	RevokeReasonUserLogoutAll = "user_logout_all"
	RevokeReasonEviction      = "eviction"
	RevokeReasonAdminAction   = "admin_action"
)

// Session represents one logged-in device/browser instance of a user.
type Session struct {
	ID uint `json:"id" gorm:"primaryKey"`
	// SessionID is the externally visible identifier, safe to embed in
	// alerts and admin responses.
	SessionID string `json:"session_id" gorm:"size:36;uniqueIndex"`
	UserID    uint   `json:"user_id" gorm:"index"`
	// SessionToken mirrors the identity provider's access token and is the
	// lookup key for validation. The provider guarantees it is not reused
	// while a session is live.
	SessionToken string `json:"-" gorm:"size:512;index"`
	// RefreshToken is generated locally, opaque to the provider.
	RefreshToken      string     `json:"-" gorm:"size:128"`
	IPAddress         string     `json:"ip_address" gorm:"size:64"`
	UserAgent         string     `json:"user_agent" gorm:"size:512"`
	DeviceFingerprint string     `json:"device_fingerprint" gorm:"size:64"`
	CreatedAt         time.Time  `json:"created_at"`
	LastActivityAt    time.Time  `json:"last_activity_at"`
	ExpiresAt         time.Time  `json:"expires_at" gorm:"index"`
	RevokedAt         *time.Time `json:"revoked_at,omitempty" gorm:"index"`
	RevokedReason     string     `json:"revoked_reason,omitempty" gorm:"size:32"`
}

// Active reports whether the session is usable at the given instant.
// Expiry is inferred from ExpiresAt and never written back.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
