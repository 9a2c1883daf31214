package config

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("HEXFALL_TEST_VALUE", "set")

	assert.Equal(t, "set", GetEnv("HEXFALL_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("HEXFALL_TEST_MISSING", "fallback"))
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"empty uses fallback", "", time.Minute, false},
		{"seconds", "45s", 45 * time.Second, false},
		{"minutes", "3m", 3 * time.Minute, false},
		{"garbage", "soon", time.Minute, true},
		{"negative", "-5s", time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HEXFALL_TEST_DURATION", tt.value)

			got, err := GetEnvDuration("HEXFALL_TEST_DURATION", time.Minute)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "HEXFALL_TEST_DURATION")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvLevel(t *testing.T) {
	t.Setenv("HEXFALL_TEST_LEVEL", "debug")
	level, err := GetEnvLevel("HEXFALL_TEST_LEVEL", log.InfoLevel)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)

	t.Setenv("HEXFALL_TEST_LEVEL", "loud")
	level, err = GetEnvLevel("HEXFALL_TEST_LEVEL", log.InfoLevel)
	require.Error(t, err)
	assert.Equal(t, log.InfoLevel, level)

	level, err = GetEnvLevel("HEXFALL_TEST_LEVEL_MISSING", log.WarnLevel)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, level)
}
