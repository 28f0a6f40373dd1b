package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceFingerprint(t *testing.T) {
	fp := DeviceFingerprint("Mozilla/5.0", "203.0.113.7")
	assert.Len(t, fp, 32)
	assert.Equal(t, fp, DeviceFingerprint("Mozilla/5.0", "203.0.113.7"))
	assert.NotEqual(t, fp, DeviceFingerprint("Mozilla/5.0", "203.0.113.8"))
	assert.NotEqual(t, fp, DeviceFingerprint("curl/8.0", "203.0.113.7"))
}

func TestSecureToken(t *testing.T) {
	a := SecureToken(32)
	b := SecureToken(32)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestMaskIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ipv4", "203.0.113.7", "203.*.*.7"},
		{"ipv6", "2001:db8:85a3:0:0:8a2e:370:7334", "2001:*:*:*:*:*:*:7334"},
		{"garbage", "not-an-ip", "not-an-ip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskIP(tt.in))
		})
	}
}
