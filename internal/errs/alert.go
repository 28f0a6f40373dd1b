package errs

import "errors"

var (
	// MalformedAlert is the only error SendSecurityAlert surfaces to its
	// caller; channel failures are reported in the outcome map instead.
	MalformedAlert = errors.New("malformed security alert")

	ChannelNotConfigured = errors.New("channel not configured")
)
