package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLevel(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	tests := []struct {
		debug string
		want  zerolog.Level
	}{
		{"YES", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"yes", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.debug, func(t *testing.T) {
			t.Setenv("BAHN_LOG_FORMAT", "JSON")
			t.Setenv("BAHN_DEBUG", tt.debug)

			Setup()
			if got := log.Logger.GetLevel(); got != tt.want {
				t.Errorf("Expected level %s, got %s", tt.want, got)
			}
		})
	}
}
