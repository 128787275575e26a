package main

import (
	"testing"

	"github.com/iwvelando/unit-analytics/pkg/constants"
)

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		env      string
		expected string
	}{
		{"Flag wins", "custom.yaml", "env.yaml", "custom.yaml"},
		{"Environment fallback", "", "env.yaml", "env.yaml"},
		{"Default", "", "", constants.DefaultConfigFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.ConfigEnvVar, tt.env)
			if got := configPath(tt.flag); got != tt.expected {
				t.Errorf("configPath(%q) = %q, expected %q", tt.flag, got, tt.expected)
			}
		})
	}
}
