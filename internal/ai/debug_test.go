package ai

import "testing"

func TestEnableDebugLogging(t *testing.T) {
	EnableDebugLogging(false)
	t.Cleanup(func() { EnableDebugLogging(false) })

	tests := []struct {
		name     string
		enabled  bool
		expected bool
	}{
		{"enable", true, true},
		{"disable", false, false},
		{"enable again", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			EnableDebugLogging(tt.enabled)
			if got := IsDebugEnabled(); got != tt.expected {
				t.Errorf("IsDebugEnabled() = %v, want %v", got, tt.expected)
			}
		})
	}
}
