// Package ris reads the station directory of the RIS::Stations API, the
// source of the local station snapshot.
package ris

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jusunglee/bahn-go/pkg/models"
	"github.com/rs/zerolog/log"
)

// Limit covers every station of the network in a single page
const Limit = 6000

// ErrDecode is returned when the station list is not valid JSON
var ErrDecode = errors.New("failed to decode stations")

// Getter fetches a URL and returns its body
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// StationsResponse is the RIS::Stations station list
type StationsResponse struct {
	Offset   int       `json:"offset"`
	Limit    int       `json:"limit"`
	Total    int       `json:"total"`
	Stations []Station `json:"stations"`
}

// Station is one entry of the RIS::Stations list
type Station struct {
	StationID       string           `json:"stationID"`
	Names           map[string]Name  `json:"names"`
	Address         *models.Address  `json:"address,omitempty"`
	StationCategory string           `json:"stationCategory"`
	CountryCode     string           `json:"countryCode"`
	TimeZone        string           `json:"timeZone"`
	Position        *models.Position `json:"position,omitempty"`
	ValidFrom       string           `json:"validFrom"`
}

// Name is a station name in one language
type Name struct {
	Name string `json:"name"`
}

// GermanName returns the DE name of the station, if any
func (s Station) GermanName() string {
	return s.Names["DE"].Name
}

// StationsURL builds the station list URL for the API at baseURL
func StationsURL(baseURL string) string {
	return fmt.Sprintf("%s/ris-stations/v1/stations?limit=%d", strings.TrimRight(baseURL, "/"), Limit)
}

// FetchStations downloads the full station list
func FetchStations(ctx context.Context, getter Getter, baseURL string) (*StationsResponse, error) {
	url := StationsURL(baseURL)
	log.Info().Str("url", url).Msg("Fetching stations")

	body, err := getter.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stations: %w", err)
	}

	var response StationsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	log.Info().Int("stations", len(response.Stations)).Msg("Fetched stations")
	return &response, nil
}

// ToStationList maps RIS stations onto snapshot stations. When
// requirePosition is set, stations without a position are left out.
func ToStationList(response *StationsResponse, requirePosition bool) models.StationList {
	list := models.StationList{Stations: []models.Station{}}
	if response == nil {
		return list
	}

	for _, s := range response.Stations {
		if requirePosition && s.Position == nil {
			continue
		}
		list.Stations = append(list.Stations, models.Station{
			StationID: s.StationID,
			Name:      s.GermanName(),
			Address:   s.Address,
			Position:  s.Position,
		})
	}
	return list
}
