// Package logging configures the global zerolog logger for the commands.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup writes human readable logs unless BAHN_LOG_FORMAT=JSON and enables
// debug output with BAHN_DEBUG=YES
func Setup() {
	if os.Getenv("BAHN_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("BAHN_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	zerolog.DefaultContextLogger = &log.Logger
}
