package store

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jusunglee/bahn-go/internal/lazy"
	"github.com/jusunglee/bahn-go/internal/snapshot"
	"github.com/jusunglee/bahn-go/pkg/models"
	"github.com/rs/zerolog/log"
)

// ErrSnapshotLoad is returned when the station snapshot cannot be loaded
var ErrSnapshotLoad = errors.New("failed to load station snapshot")

// Store answers radius queries over the station snapshot.
// The snapshot is loaded on first use and kept for the lifetime of the Store.
type Store struct {
	stations *lazy.Value[[]models.Station]
}

// NewStore creates a store that loads its stations with load
func NewStore(load func() ([]models.Station, error)) *Store {
	return &Store{
		stations: lazy.New(load),
	}
}

// FromFile returns a loader that decodes the protobuf snapshot at path
func FromFile(path string) func() ([]models.Station, error) {
	return func() ([]models.Station, error) {
		start := time.Now()
		list, err := snapshot.ReadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug().
			Str("path", path).
			Int("stations", len(list.Stations)).
			Dur("duration", time.Since(start)).
			Msg("Loaded stations cache")
		return list.Stations, nil
	}
}

func (s *Store) all() ([]models.Station, error) {
	stations, err := s.stations.Get()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotLoad, err)
	}
	return stations, nil
}

// FindWithinRadius returns the stations whose great-circle distance to the
// given point is at most radius meters, in snapshot order
func (s *Store) FindWithinRadius(longitude, latitude, radius float64) ([]models.Station, error) {
	stations, err := s.all()
	if err != nil {
		return nil, err
	}

	result := []models.Station{}
	for _, station := range stations {
		if station.Position == nil {
			continue
		}
		if distance(latitude, longitude, station.Position.Latitude, station.Position.Longitude) <= radius {
			result = append(result, station)
		}
	}

	return result, nil
}

// FindByID returns the station with the given RIS station id
func (s *Store) FindByID(id string) (models.Station, error) {
	stations, err := s.all()
	if err != nil {
		return models.Station{}, err
	}

	for _, station := range stations {
		if station.StationID == id {
			return station, nil
		}
	}

	return models.Station{}, fmt.Errorf("station %s not found", id)
}

// Len returns the number of stations in the snapshot
func (s *Store) Len() (int, error) {
	stations, err := s.all()
	if err != nil {
		return 0, err
	}
	return len(stations), nil
}

// distance calculates the distance in meters between two points using the Haversine formula
func distance(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000 // Earth's radius in meters

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}
