package alert

import (
	"time"
)

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}

// Color returns the hex color channels use to badge the alert.
func (s Severity) Color() string {
	switch s {
	case SeverityLow:
		return "#36a64f"
	case SeverityMedium:
		return "#f2c744"
	case SeverityHigh:
		return "#e8710a"
	case SeverityCritical:
		return "#d32f2f"
	}
	return "#999999"
}

func (s Severity) Emoji() string {
	switch s {
	case SeverityLow:
		return "ℹ️"
	case SeverityMedium:
		return "⚠️"
	case SeverityHigh:
		return "🚨"
	case SeverityCritical:
		return "🔥"
	}
	return "❓"
}

// SecurityAlert is a transient notification unit. It is created, dispatched
// and discarded, never persisted.
type SecurityAlert struct {
	Title       string                 `json:"title"`
	Severity    Severity               `json:"severity"`
	Description string                 `json:"description"`
	UserID      uint                   `json:"user_id,omitempty"`
	UserEmail   string                 `json:"user_email,omitempty"`
	IPAddress   string                 `json:"ip_address,omitempty"`
	UserAgent   string                 `json:"user_agent,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
	Details     map[string]interface{} `json:"details,omitempty"`
	ActionURL   string                 `json:"action_url,omitempty"`
}

// RateKey is the identity used for cooldown suppression: same title and same
// subject within the window means the same alert.
func (a *SecurityAlert) RateKey() string {
	who := a.UserEmail
	if who == "" {
		who = a.IPAddress
	}
	if who == "" {
		who = "unknown"
	}
	return a.Title + ":" + who
}
