package installer

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"jenv/internal/config"
)

func TestInstallName(t *testing.T) {
	inst := New(config.At(t.TempDir()), log.New(io.Discard))

	tests := []struct {
		openJDKVersion string
		major          string
		want           string
	}{
		{"21.0.4+7", "21", "temurin-21.0.4"},
		{"17.0.11", "17", "temurin-17.0.11"},
		{"", "21", "temurin-21"},
	}

	for _, tt := range tests {
		info := &DownloadInfo{OpenJDKVersion: tt.openJDKVersion}
		assert.Equal(t, tt.want, inst.installName(info, tt.major))
	}
}

func TestFallbackVersionsSortedAndTagged(t *testing.T) {
	releases := fallbackVersions()
	assert.NotEmpty(t, releases)

	lts := map[string]bool{}
	for _, r := range releases {
		if r.IsLTS {
			lts[r.Version] = true
		}
	}
	// The current LTS line is always offered.
	assert.True(t, lts["21"])
	assert.True(t, lts["17"])
}
