package handles

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/placeatlas/ops-portal/internal/model"
	"github.com/placeatlas/ops-portal/internal/session"
	"github.com/placeatlas/ops-portal/server/common"
)

type LoginReq struct {
	// UserID and AccessToken come from the identity provider's callback;
	// the token is already verified upstream and is trusted here.
	UserID      uint   `json:"user_id" binding:"required"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token" binding:"required"`
}

type SessionResp struct {
	SessionID      string `json:"session_id"`
	UserID         uint   `json:"user_id,omitempty"`
	IPAddress      string `json:"ip_address"`
	UserAgent      string `json:"user_agent"`
	Fingerprint    string `json:"device_fingerprint"`
	CreatedAt      int64  `json:"created_at"`
	LastActivityAt int64  `json:"last_activity_at"`
	ExpiresAt      int64  `json:"expires_at"`
}

func toSessionResp(s *model.Session, withUser bool) SessionResp {
	resp := SessionResp{
		SessionID:      s.SessionID,
		IPAddress:      s.IPAddress,
		UserAgent:      s.UserAgent,
		Fingerprint:    s.DeviceFingerprint,
		CreatedAt:      s.CreatedAt.Unix(),
		LastActivityAt: s.LastActivityAt.Unix(),
		ExpiresAt:      s.ExpiresAt.Unix(),
	}
	if withUser {
		resp.UserID = s.UserID
	}
	return resp
}

type LoginResp struct {
	Session          SessionResp `json:"session"`
	RefreshToken     string      `json:"refresh_token"`
	EvictedSessionID string      `json:"evicted_session_id,omitempty"`
}

func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	s, evicted, err := session.Create(req.UserID, req.Email, req.AccessToken,
		c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		common.ErrorResp(c, err, 500)
		return
	}
	resp := LoginResp{
		Session:      toSessionResp(s, false),
		RefreshToken: s.RefreshToken,
	}
	if evicted != nil {
		resp.EvictedSessionID = evicted.SessionID
	}
	common.SuccessResp(c, resp)
}

func Me(c *gin.Context) {
	s := c.MustGet("session").(*model.Session)
	common.SuccessResp(c, toSessionResp(s, true))
}

func Logout(c *gin.Context) {
	s := c.MustGet("session").(*model.Session)
	if !session.Revoke(s.ID, model.RevokeReasonUserLogout) {
		common.ErrorStrResp(c, "failed revoke session", 500)
		return
	}
	common.SuccessResp(c)
}

func LogoutAll(c *gin.Context) {
	s := c.MustGet("session").(*model.Session)
	count := session.RevokeAllForUser(s.UserID, model.RevokeReasonUserLogoutAll)
	common.SuccessResp(c, gin.H{"revoked": count})
}

func ListMySessions(c *gin.Context) {
	s := c.MustGet("session").(*model.Session)
	sessions := session.ListForUser(s.UserID)
	resp := make([]SessionResp, len(sessions))
	for i := range sessions {
		resp[i] = toSessionResp(&sessions[i], false)
	}
	common.SuccessResp(c, resp)
}

type RevokeSessionReq struct {
	SessionID string `json:"session_id" binding:"required"`
}

// RevokeMySession lets a user disconnect one of their own devices.
func RevokeMySession(c *gin.Context) {
	var req RevokeSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	s := c.MustGet("session").(*model.Session)
	for _, owned := range session.ListForUser(s.UserID) {
		if owned.SessionID == req.SessionID {
			if !session.Revoke(owned.ID, model.RevokeReasonUserLogout) {
				common.ErrorStrResp(c, "failed revoke session", 500)
			} else {
				common.SuccessResp(c)
			}
			return
		}
	}
	common.ErrorStrResp(c, "session not found", 404)
}

// Admin endpoints. Role enforcement happens at the portal gateway in front
// of this service.

func ListUserSessions(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	sessions := session.ListForUser(uint(userID))
	resp := make([]SessionResp, len(sessions))
	for i := range sessions {
		resp[i] = toSessionResp(&sessions[i], true)
	}
	common.SuccessResp(c, resp)
}

func RevokeUserSessions(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	count := session.RevokeAllForUser(uint(userID), model.RevokeReasonAdminAction)
	common.SuccessResp(c, gin.H{"revoked": count})
}

type AdminRevokeReq struct {
	UserID    uint   `json:"user_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

func RevokeSession(c *gin.Context) {
	var req AdminRevokeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	for _, s := range session.ListForUser(req.UserID) {
		if s.SessionID == req.SessionID {
			if !session.Revoke(s.ID, model.RevokeReasonAdminAction) {
				common.ErrorStrResp(c, "failed revoke session", 500)
			} else {
				common.SuccessResp(c)
			}
			return
		}
	}
	common.ErrorStrResp(c, "session not found", 404)
}
