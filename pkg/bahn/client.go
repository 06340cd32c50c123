// Package bahn is the caller API for Deutsche Bahn station search, nearby
// station lookup and station plans.
package bahn

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jusunglee/bahn-go/pkg/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Client defines the interface for accessing Deutsche Bahn station data.
// Station lookups by position are answered from the local snapshot, pattern
// searches and plans are fetched from the Timetables API.
type Client interface {
	FindStationsNear(longitude, latitude, radiusMeters float64) ([]models.Station, error)
	FetchStationsByPattern(ctx context.Context, pattern string) (models.StationsResponse, error)
	FetchStationPlan(ctx context.Context, eva int64, date time.Time, hour int) (models.PlanResponse, error)
}

// ErrMissingConfig is returned by network operations when the connection
// parameters are incomplete. No request is sent in that case.
var ErrMissingConfig = errors.New("missing configuration")

// ErrInvalidArgument is returned for arguments no request could satisfy
var ErrInvalidArgument = errors.New("invalid argument")

// Config holds the connection parameters of the DB API marketplace
type Config struct {
	BaseURL      string        `yaml:"baseURL" validate:"required,url"`
	ClientID     string        `yaml:"clientID" validate:"required"`
	APIKey       string        `yaml:"apiKey" validate:"required"`
	StationsFile string        `yaml:"stationsFile"`
	Timeout      time.Duration `yaml:"timeout" validate:"gte=0"`
}

// DefaultConfig returns default configuration.
// BaseURL and the credentials have no defaults.
func DefaultConfig() Config {
	return Config{
		StationsFile: "data/stations.protobuf",
		Timeout:      30 * time.Second,
	}
}

// ConfigFromEnv returns the default configuration overlaid with the environment
func ConfigFromEnv() Config {
	return DefaultConfig().WithEnv()
}

// LoadConfigFile reads a YAML configuration file. Environment variables
// take precedence over values from the file.
func LoadConfigFile(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config.WithEnv(), nil
}

// WithEnv returns a copy of c with every set environment variable applied
func (c Config) WithEnv() Config {
	if v := os.Getenv("DB_API_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("DB_API_CLIENT_ID"); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv("DB_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("BAHN_STATIONS_FILE"); v != "" {
		c.StationsFile = v
	}
	if v := os.Getenv("BAHN_HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			log.Warn().Str("value", v).Err(err).Msg("Ignoring invalid BAHN_HTTP_TIMEOUT")
		} else {
			c.Timeout = timeout
		}
	}
	return c
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the connection parameters needed for network operations
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrMissingConfig, err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(fields, ", "))
}
