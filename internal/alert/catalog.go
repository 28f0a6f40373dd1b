package alert

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/placeatlas/ops-portal/internal/conf"
)

// Typed constructors for the known security events. Severity and wording are
// fixed per event; the Details payload carries the machine-auditable fields.

func displayName(userID uint, email string) string {
	if email != "" {
		return email
	}
	return fmt.Sprintf("user #%d", userID)
}

func adminURL(path string) string {
	if conf.Conf == nil || conf.Conf.Alert.AdminBaseURL == "" {
		return ""
	}
	return strings.TrimRight(conf.Conf.Alert.AdminBaseURL, "/") + path
}

func BruteForceDetected(userEmail, ipAddress string, attempts int, window time.Duration) *SecurityAlert {
	return &SecurityAlert{
		Title:    "Brute force attack detected",
		Severity: SeverityHigh,
		Description: fmt.Sprintf("%d failed login attempts for %s within %s.",
			attempts, userEmail, window),
		UserEmail: userEmail,
		IPAddress: ipAddress,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"failed_attempts": attempts,
			"window_seconds":  int(window.Seconds()),
		},
		ActionURL: adminURL("/security/login-attempts"),
	}
}

// ImpossibleTravel flags two logins whose distance over elapsed time implies
// a physically impossible speed. The required speed lands in Details so the
// detector's threshold decision can be audited later.
func ImpossibleTravel(userID uint, userEmail, ipAddress string,
	fromCity, toCity string, fromLat, fromLng, toLat, toLng float64,
	elapsed time.Duration) *SecurityAlert {
	distanceKm := haversineKm(fromLat, fromLng, toLat, toLng)
	hours := elapsed.Hours()
	speed := math.Inf(1)
	if hours > 0 {
		speed = distanceKm / hours
	}
	return &SecurityAlert{
		Title:    "Impossible travel detected",
		Severity: SeverityCritical,
		Description: fmt.Sprintf("Login for %s from %s only %s after a login from %s (%.0f km apart).",
			userEmail, toCity, elapsed.Round(time.Second), fromCity, distanceKm),
		UserID:    userID,
		UserEmail: userEmail,
		IPAddress: ipAddress,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"from_city":          fromCity,
			"to_city":            toCity,
			"distance_km":        math.Round(distanceKm),
			"elapsed_seconds":    int(elapsed.Seconds()),
			"required_speed_kmh": math.Round(speed),
		},
		ActionURL: adminURL(fmt.Sprintf("/users/%d/sessions", userID)),
	}
}

func NewDeviceLogin(userID uint, userEmail, ipAddress, userAgent, fingerprint string) *SecurityAlert {
	return &SecurityAlert{
		Title:       "Login from a new device",
		Severity:    SeverityMedium,
		Description: fmt.Sprintf("%s signed in from a device not seen before.", userEmail),
		UserID:      userID,
		UserEmail:   userEmail,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Timestamp:   time.Now(),
		Details: map[string]interface{}{
			"device_fingerprint": fingerprint,
		},
		ActionURL: adminURL(fmt.Sprintf("/users/%d/sessions", userID)),
	}
}

// SessionLimitExceeded references the session that was evicted to make room,
// so operators can correlate the disconnect with the new login.
func SessionLimitExceeded(userID uint, userEmail, ipAddress, userAgent string,
	evictedSessionID string, maxSessions int) *SecurityAlert {
	return &SecurityAlert{
		Title:    "Concurrent session limit exceeded",
		Severity: SeverityLow,
		Description: fmt.Sprintf("%s exceeded the limit of %d concurrent sessions; the oldest session was disconnected.",
			displayName(userID, userEmail), maxSessions),
		UserID:    userID,
		UserEmail: userEmail,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"evicted_session_id": evictedSessionID,
			"max_sessions":       maxSessions,
		},
		ActionURL: adminURL(fmt.Sprintf("/users/%d/sessions", userID)),
	}
}

func AdminRoleGranted(userID uint, userEmail, grantedBy, role string) *SecurityAlert {
	return &SecurityAlert{
		Title:    "Privileged role granted",
		Severity: SeverityHigh,
		Description: fmt.Sprintf("%s was granted the %q role by %s.",
			userEmail, role, grantedBy),
		UserID:    userID,
		UserEmail: userEmail,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"role":       role,
			"granted_by": grantedBy,
		},
		ActionURL: adminURL(fmt.Sprintf("/users/%d", userID)),
	}
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
