package handles

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/placeatlas/ops-portal/internal/alert"
	"github.com/placeatlas/ops-portal/server/common"
)

var dispatcher *alert.Dispatcher

// SetDispatcher wires the alert pipeline in at router setup.
func SetDispatcher(d *alert.Dispatcher) {
	dispatcher = d
}

// SecurityEventReq is the envelope anomaly detectors post. Only the fields
// relevant to the named event type are read.
type SecurityEventReq struct {
	Type      string `json:"type" binding:"required"`
	UserID    uint   `json:"user_id"`
	UserEmail string `json:"user_email"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`

	// brute_force
	FailedAttempts int `json:"failed_attempts"`
	WindowSeconds  int `json:"window_seconds"`

	// impossible_travel
	FromCity       string  `json:"from_city"`
	ToCity         string  `json:"to_city"`
	FromLat        float64 `json:"from_lat"`
	FromLng        float64 `json:"from_lng"`
	ToLat          float64 `json:"to_lat"`
	ToLng          float64 `json:"to_lng"`
	ElapsedSeconds int     `json:"elapsed_seconds"`

	// new_device
	DeviceFingerprint string `json:"device_fingerprint"`

	// admin_role_granted
	GrantedBy string `json:"granted_by"`
	Role      string `json:"role"`
}

// ReportSecurityEvent lets external anomaly detectors feed the same alert
// pipeline session enforcement uses.
func ReportSecurityEvent(c *gin.Context) {
	var req SecurityEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	var a *alert.SecurityAlert
	switch req.Type {
	case "brute_force":
		a = alert.BruteForceDetected(req.UserEmail, req.IPAddress,
			req.FailedAttempts, time.Duration(req.WindowSeconds)*time.Second)
	case "impossible_travel":
		a = alert.ImpossibleTravel(req.UserID, req.UserEmail, req.IPAddress,
			req.FromCity, req.ToCity, req.FromLat, req.FromLng, req.ToLat, req.ToLng,
			time.Duration(req.ElapsedSeconds)*time.Second)
	case "new_device":
		a = alert.NewDeviceLogin(req.UserID, req.UserEmail, req.IPAddress,
			req.UserAgent, req.DeviceFingerprint)
	case "admin_role_granted":
		a = alert.AdminRoleGranted(req.UserID, req.UserEmail, req.GrantedBy, req.Role)
	default:
		common.ErrorStrResp(c, fmt.Sprintf("unknown event type: %s", req.Type), 400)
		return
	}
	outcome, err := dispatcher.SendSecurityAlert(c.Request.Context(), a)
	if err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	common.SuccessResp(c, gin.H{"channels": outcome})
}

// TestAlert fires a low-severity alert so operators can verify channel
// configuration end to end.
func TestAlert(c *gin.Context) {
	a := &alert.SecurityAlert{
		Title:       "Test alert",
		Severity:    alert.SeverityLow,
		Description: "Manual channel configuration test from the ops portal.",
		IPAddress:   c.ClientIP(),
		Timestamp:   time.Now(),
	}
	outcome, err := dispatcher.SendSecurityAlert(c.Request.Context(), a)
	if err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	common.SuccessResp(c, gin.H{"channels": outcome})
}
