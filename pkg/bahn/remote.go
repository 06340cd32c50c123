package bahn

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jusunglee/bahn-go/internal/store"
	"github.com/jusunglee/bahn-go/internal/timetables"
	"github.com/jusunglee/bahn-go/internal/transport"
	"github.com/jusunglee/bahn-go/pkg/models"
	"github.com/rs/zerolog/log"
)

// RemoteClient implements Client against the DB API marketplace and a
// local station snapshot
type RemoteClient struct {
	config    Config
	store     *store.Store
	transport *transport.Client
}

var _ Client = (*RemoteClient)(nil)

// New creates a client. Nothing is loaded or requested until the first call.
func New(config Config) *RemoteClient {
	return &RemoteClient{
		config:    config,
		store:     store.NewStore(store.FromFile(config.StationsFile)),
		transport: transport.New(config.ClientID, config.APIKey, config.Timeout),
	}
}

// FindStationsNear returns the snapshot stations within radiusMeters of the
// given point. The snapshot is read on first use.
func (c *RemoteClient) FindStationsNear(longitude, latitude, radiusMeters float64) ([]models.Station, error) {
	return c.store.FindWithinRadius(longitude, latitude, radiusMeters)
}

// FetchStationsByPattern searches stations by name, EVA number or DS100 code
func (c *RemoteClient) FetchStationsByPattern(ctx context.Context, pattern string) (models.StationsResponse, error) {
	if err := c.config.Validate(); err != nil {
		return models.StationsResponse{}, err
	}

	body, err := c.transport.Get(ctx, c.url("/timetables/v1/station/"+url.PathEscape(pattern)))
	if err != nil {
		return models.StationsResponse{}, fmt.Errorf("failed to search stations %q: %w", pattern, err)
	}

	wire, err := timetables.DecodeStations(bytes.NewReader(body))
	if err != nil {
		return models.StationsResponse{}, err
	}

	return timetables.NormalizeStations(wire), nil
}

// FetchStationPlan returns the planned stops at station eva for the hour
// slice starting at hour on date. The date is taken in its own location.
func (c *RemoteClient) FetchStationPlan(ctx context.Context, eva int64, date time.Time, hour int) (models.PlanResponse, error) {
	if err := c.config.Validate(); err != nil {
		return models.PlanResponse{}, err
	}
	if hour < 0 || hour > 23 {
		return models.PlanResponse{}, fmt.Errorf("%w: hour %d", ErrInvalidArgument, hour)
	}

	body, err := c.transport.Get(ctx, c.url(planPath(eva, date, hour)))
	if err != nil {
		return models.PlanResponse{}, fmt.Errorf("failed to fetch plan for %d: %w", eva, err)
	}

	start := time.Now()
	wire, err := timetables.DecodePlan(bytes.NewReader(body))
	if err != nil {
		return models.PlanResponse{}, err
	}
	plan := timetables.Normalize(wire)

	log.Debug().
		Int64("eva", eva).
		Int("stops", len(plan.Timetable.Stops)).
		Dur("duration", time.Since(start)).
		Msg("Decoded station plan")

	return plan, nil
}

// planPath formats the plan resource: /plan/{eva}/{YYMMDD}/{HH}
func planPath(eva int64, date time.Time, hour int) string {
	return fmt.Sprintf("/timetables/v1/plan/%d/%s/%02d", eva, date.Format("060102"), hour)
}

func (c *RemoteClient) url(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + path
}
