package jdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"17.0.5", "17.0.5"},
		{"17.0.5+8", "17.0.5"},
		{"17.0.5+8-LTS", "17.0.5"},
		{"21.0.1-beta", "21.0.1"},
		{"1.8.0_345-b01", "1.8.0_345"},
		{"19 2022-09-20", "19"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanVersion(tt.raw), "raw=%q", tt.raw)
	}
}

func TestMatchVersionPrefersRuntimeVersion(t *testing.T) {
	out := []byte(`Property settings:
    java.runtime.version = 17.0.5+8-LTS
    java.version = 17.0.5
openjdk version "17.0.5" 2022-10-18 LTS
`)
	assert.Equal(t, "17.0.5+8-LTS", matchVersion(out))
}

func TestMatchVersionFallsBackToJavaVersion(t *testing.T) {
	out := []byte(`Property settings:
    java.version = 11.0.17
`)
	assert.Equal(t, "11.0.17", matchVersion(out))
}

func TestMatchVersionNoProperty(t *testing.T) {
	out := []byte("this is not a java banner\n")
	assert.Equal(t, "", matchVersion(out))
}
