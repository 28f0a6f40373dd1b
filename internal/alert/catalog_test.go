package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placeatlas/ops-portal/internal/conf"
)

func TestSeverityTables(t *testing.T) {
	for _, s := range []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
		assert.NotEqual(t, "unknown", s.String())
		assert.NotEmpty(t, s.Emoji())
		assert.Regexp(t, `^#[0-9a-f]{6}$`, s.Color())
	}
}

func TestRateKeyFallback(t *testing.T) {
	a := &SecurityAlert{Title: "T", UserEmail: "u@example.com", IPAddress: "203.0.113.7"}
	assert.Equal(t, "T:u@example.com", a.RateKey())

	a.UserEmail = ""
	assert.Equal(t, "T:203.0.113.7", a.RateKey())

	a.IPAddress = ""
	assert.Equal(t, "T:unknown", a.RateKey())
}

func TestImpossibleTravelSpeed(t *testing.T) {
	conf.Conf = nil
	// New York to Los Angeles in one hour
	a := ImpossibleTravel(7, "u@example.com", "203.0.113.7",
		"New York", "Los Angeles",
		40.7128, -74.0060, 34.0522, -118.2437,
		time.Hour)

	assert.Equal(t, SeverityCritical, a.Severity)
	assert.Equal(t, uint(7), a.UserID)
	assert.Empty(t, a.ActionURL)

	speed, ok := a.Details["required_speed_kmh"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 3936, speed, 50)
}

func TestSessionLimitExceeded(t *testing.T) {
	conf.Conf = conf.DefaultConfig()
	conf.Conf.Alert.AdminBaseURL = "https://admin.example.com/"
	defer func() { conf.Conf = nil }()

	a := SessionLimitExceeded(42, "u@example.com", "203.0.113.7", "go-test", "sess-1", 3)
	assert.Equal(t, SeverityLow, a.Severity)
	assert.Equal(t, "sess-1", a.Details["evicted_session_id"])
	assert.Equal(t, 3, a.Details["max_sessions"])
	assert.Equal(t, "https://admin.example.com/users/42/sessions", a.ActionURL)
	assert.Contains(t, a.Description, "u@example.com")
}

func TestSessionLimitExceededWithoutEmail(t *testing.T) {
	conf.Conf = nil
	a := SessionLimitExceeded(42, "", "203.0.113.7", "go-test", "sess-1", 3)
	assert.Contains(t, a.Description, "user #42")
	assert.Equal(t, "Concurrent session limit exceeded:203.0.113.7", a.RateKey())
}

func TestBruteForceDetected(t *testing.T) {
	conf.Conf = nil
	a := BruteForceDetected("u@example.com", "203.0.113.7", 12, 10*time.Minute)
	assert.Equal(t, SeverityHigh, a.Severity)
	assert.Equal(t, 12, a.Details["failed_attempts"])
	assert.Equal(t, 600, a.Details["window_seconds"])
}

func TestNewDeviceAndRoleGrant(t *testing.T) {
	conf.Conf = nil
	nd := NewDeviceLogin(9, "u@example.com", "203.0.113.7", "go-test", "fp123")
	assert.Equal(t, SeverityMedium, nd.Severity)
	assert.Equal(t, "fp123", nd.Details["device_fingerprint"])

	rg := AdminRoleGranted(9, "u@example.com", "root@example.com", "moderator")
	assert.Equal(t, SeverityHigh, rg.Severity)
	assert.Equal(t, "moderator", rg.Details["role"])
	assert.Equal(t, "root@example.com", rg.Details["granted_by"])
}
