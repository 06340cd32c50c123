package ris

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jusunglee/bahn-go/internal/transport"
)

const stationsJSON = `{
  "offset": 0,
  "limit": 6000,
  "total": 3,
  "stations": [
    {
      "stationID": "1",
      "names": {"DE": {"name": "Aachen Hbf"}},
      "address": {"street": "Zollamtstr.", "houseNumber": "8", "postalCode": "52064", "city": "Aachen", "state": "Nordrhein-Westfalen", "country": "DEU"},
      "stationCategory": "CATEGORY_2",
      "countryCode": "DE",
      "timeZone": "Europe/Berlin",
      "position": {"longitude": 6.091499, "latitude": 50.7678},
      "validFrom": "2024-01-01"
    },
    {
      "stationID": "2",
      "names": {"DE": {"name": "Aachen Bushof"}},
      "address": {"street": "Peterstr.", "postalCode": "52062", "city": "Aachen", "country": "DEU"}
    },
    {
      "stationID": "3",
      "names": {"DE": {"name": "Aachen-Rothe Erde"}},
      "position": {"longitude": 6.116475, "latitude": 50.770202}
    }
  ]
}`

func TestFetchStations(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(stationsJSON))
	}))
	defer server.Close()

	response, err := FetchStations(context.Background(), transport.New("id", "key", 5*time.Second), server.URL+"/")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotPath != "/ris-stations/v1/stations" || gotQuery != "limit=6000" {
		t.Errorf("Unexpected request %s?%s", gotPath, gotQuery)
	}
	if response.Total != 3 || len(response.Stations) != 3 {
		t.Fatalf("Expected 3 stations, got %d", len(response.Stations))
	}
	if name := response.Stations[0].GermanName(); name != "Aachen Hbf" {
		t.Errorf("Expected Aachen Hbf, got %s", name)
	}
	if response.Stations[1].Position != nil {
		t.Error("Expected missing position to stay absent")
	}
}

func TestFetchStationsErrors(t *testing.T) {
	t.Run("upstream failure keeps body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := FetchStations(context.Background(), transport.New("id", "key", 5*time.Second), server.URL)
		var statusErr *transport.StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("Expected StatusError, got %v", err)
		}
		if !strings.Contains(statusErr.Body, "quota exceeded") {
			t.Errorf("Expected body in error, got %q", statusErr.Body)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>"))
		}))
		defer server.Close()

		if _, err := FetchStations(context.Background(), transport.New("id", "key", 5*time.Second), server.URL); !errors.Is(err, ErrDecode) {
			t.Errorf("Expected ErrDecode, got %v", err)
		}
	})
}

func TestToStationList(t *testing.T) {
	response := &StationsResponse{
		Stations: []Station{
			{StationID: "1", Names: map[string]Name{"DE": {Name: "Aachen Hbf"}}},
			{StationID: "2"},
		},
	}

	tests := []struct {
		name            string
		requirePosition bool
		wantIDs         []string
	}{
		{"keeps stations without position", false, []string{"1", "2"}},
		{"drops stations without position", true, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := ToStationList(response, tt.requirePosition)
			if len(list.Stations) != len(tt.wantIDs) {
				t.Fatalf("Expected %d stations, got %d", len(tt.wantIDs), len(list.Stations))
			}
			for i, id := range tt.wantIDs {
				if list.Stations[i].StationID != id {
					t.Errorf("station %d: expected %s, got %s", i, id, list.Stations[i].StationID)
				}
			}
		})
	}

	if list := ToStationList(nil, true); list.Stations == nil {
		t.Error("Expected non-nil station list")
	}
}

func TestToStationListFromFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(stationsJSON))
	}))
	defer server.Close()

	response, err := FetchStations(context.Background(), transport.New("id", "key", 5*time.Second), server.URL)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	list := ToStationList(response, true)
	if len(list.Stations) != 2 {
		t.Fatalf("Expected 2 stations with position, got %d", len(list.Stations))
	}
	first := list.Stations[0]
	if first.Name != "Aachen Hbf" || first.Address == nil || first.Address.HouseNumber != "8" {
		t.Errorf("Unexpected first station %+v", first)
	}
	if list.Stations[1].Address != nil {
		t.Error("Expected absent address to stay absent")
	}
}
