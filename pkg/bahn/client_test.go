package bahn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jusunglee/bahn-go/internal/snapshot"
	"github.com/jusunglee/bahn-go/internal/timetables"
	"github.com/jusunglee/bahn-go/internal/transport"
	"github.com/jusunglee/bahn-go/pkg/models"
)

const singleStopPlan = `<?xml version='1.0' encoding='UTF-8'?>
<timetable station='Aachen Hbf'>
  <s id="-5804785683626546440-2405151021-2">
    <tl f="N" t="p" o="800165" c="RE" n="3112"/>
    <ar pt="2405151021" pp="12" l="2"/>
  </s>
</timetable>`

const twoStations = `<?xml version='1.0' encoding='UTF-8'?>
<stations>
  <station p="1|2" name="Berlin Hbf 1" eva="123456789" ds100="BLS1"/>
  <station p="3|4" name="Berlin Hbf 2" eva="897564321" ds100="BLS2"/>
</stations>`

type recordingServer struct {
	*httptest.Server
	requests atomic.Int32
	lastPath atomic.Value
}

func newRecordingServer(t *testing.T, status int, body string) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.requests.Add(1)
		rs.lastPath.Store(r.URL.EscapedPath())
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *recordingServer) path() string {
	p, _ := rs.lastPath.Load().(string)
	return p
}

func testConfig(baseURL string) Config {
	config := DefaultConfig()
	config.BaseURL = baseURL
	config.ClientID = "client"
	config.APIKey = "secret"
	return config
}

func TestNetworkOperationsFailFast(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, singleStopPlan)

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"missing base url", func(c *Config) { c.BaseURL = "" }},
		{"invalid base url", func(c *Config) { c.BaseURL = "not a url" }},
		{"missing client id", func(c *Config) { c.ClientID = "" }},
		{"missing api key", func(c *Config) { c.APIKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig(server.URL)
			tt.modify(&config)
			client := New(config)

			if _, err := client.FetchStationPlan(context.Background(), 8000001, time.Now(), 10); !errors.Is(err, ErrMissingConfig) {
				t.Errorf("FetchStationPlan: expected ErrMissingConfig, got %v", err)
			}
			if _, err := client.FetchStationsByPattern(context.Background(), "Aachen"); !errors.Is(err, ErrMissingConfig) {
				t.Errorf("FetchStationsByPattern: expected ErrMissingConfig, got %v", err)
			}
		})
	}

	if n := server.requests.Load(); n != 0 {
		t.Errorf("Expected no requests, got %d", n)
	}
}

func TestFetchStationPlan(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, singleStopPlan)
	client := New(testConfig(server.URL + "/"))

	// one hour past midnight in Berlin is still the previous day in UTC
	berlin := time.FixedZone("CEST", 2*60*60)
	date := time.Date(2024, 5, 16, 1, 0, 0, 0, berlin)

	plan, err := client.FetchStationPlan(context.Background(), 8000001, date, 9)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if want := "/timetables/v1/plan/8000001/240516/09"; server.path() != want {
		t.Errorf("Expected path %s, got %s", want, server.path())
	}
	if plan.Timetable == nil || len(plan.Timetable.Stops) != 1 {
		t.Fatalf("Expected one stop, got %+v", plan.Timetable)
	}

	stop := plan.Timetable.Stops[0]
	if stop.TripLabel == nil || stop.TripLabel.Category != "RE" || stop.TripLabel.Number != "3112" {
		t.Errorf("Unexpected trip label %+v", stop.TripLabel)
	}
	if stop.ArrivalEvent == nil || stop.ArrivalEvent.PlannedPlatform != "12" {
		t.Errorf("Unexpected arrival %+v", stop.ArrivalEvent)
	}
	if stop.DepartureEvent != nil {
		t.Error("Expected no departure")
	}
}

func TestFetchStationPlanInvalidHour(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, singleStopPlan)
	client := New(testConfig(server.URL))

	for _, hour := range []int{-1, 24} {
		if _, err := client.FetchStationPlan(context.Background(), 8000001, time.Now(), hour); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("hour %d: expected ErrInvalidArgument, got %v", hour, err)
		}
	}
	if n := server.requests.Load(); n != 0 {
		t.Errorf("Expected no requests, got %d", n)
	}
}

func TestFetchStationPlanErrors(t *testing.T) {
	t.Run("upstream status", func(t *testing.T) {
		server := newRecordingServer(t, http.StatusUnauthorized, "invalid credentials")
		client := New(testConfig(server.URL))

		_, err := client.FetchStationPlan(context.Background(), 8000001, time.Now(), 10)
		var statusErr *transport.StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("Expected StatusError, got %v", err)
		}
		if statusErr.StatusCode != http.StatusUnauthorized || statusErr.Body != "invalid credentials" {
			t.Errorf("Unexpected status error %+v", statusErr)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := newRecordingServer(t, http.StatusOK, "<timetable><s></timetable>")
		client := New(testConfig(server.URL))

		if _, err := client.FetchStationPlan(context.Background(), 8000001, time.Now(), 10); !errors.Is(err, timetables.ErrDecode) {
			t.Errorf("Expected ErrDecode, got %v", err)
		}
	})
}

func TestFetchStationsByPattern(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, twoStations)
	client := New(testConfig(server.URL))

	response, err := client.FetchStationsByPattern(context.Background(), "Berlin Hbf")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if want := "/timetables/v1/station/Berlin%20Hbf"; server.path() != want {
		t.Errorf("Expected path %s, got %s", want, server.path())
	}
	want := []models.StationData{
		{DS100: "BLS1", EVA: 123456789, Name: "Berlin Hbf 1", Platforms: "1|2"},
		{DS100: "BLS2", EVA: 897564321, Name: "Berlin Hbf 2", Platforms: "3|4"},
	}
	if len(response.Stations) != len(want) {
		t.Fatalf("Expected %d stations, got %d", len(want), len(response.Stations))
	}
	for i := range want {
		if response.Stations[i] != want[i] {
			t.Errorf("station %d: expected %+v, got %+v", i, want[i], response.Stations[i])
		}
	}
}

func TestFindStationsNear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.protobuf")
	list := models.StationList{Stations: []models.Station{
		{StationID: "1", Name: "Aachen Hbf", Position: &models.Position{Longitude: 6.091499, Latitude: 50.7678}},
		{StationID: "2", Name: "Köln Hbf", Position: &models.Position{Longitude: 6.958730, Latitude: 50.943029}},
	}}
	if err := snapshot.WriteFile(path, list); err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}

	// the snapshot needs no credentials
	config := DefaultConfig()
	config.StationsFile = path
	client := New(config)

	stations, err := client.FindStationsNear(6.091499, 50.7678, 1000)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(stations) != 1 || stations[0].Name != "Aachen Hbf" {
		t.Errorf("Expected Aachen Hbf, got %v", stations)
	}

	// later calls are served from memory
	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove snapshot: %v", err)
	}
	stations, err = client.FindStationsNear(6.5, 50.85, 100000)
	if err != nil {
		t.Fatalf("Unexpected error after first load: %v", err)
	}
	if len(stations) != 2 {
		t.Errorf("Expected 2 stations, got %d", len(stations))
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DB_API_URL", "https://apis.example.com/db")
	t.Setenv("DB_API_CLIENT_ID", "env-client")
	t.Setenv("DB_API_KEY", "env-key")
	t.Setenv("BAHN_STATIONS_FILE", "/tmp/stations.protobuf")
	t.Setenv("BAHN_HTTP_TIMEOUT", "5s")

	config := ConfigFromEnv()
	want := Config{
		BaseURL:      "https://apis.example.com/db",
		ClientID:     "env-client",
		APIKey:       "env-key",
		StationsFile: "/tmp/stations.protobuf",
		Timeout:      5 * time.Second,
	}
	if config != want {
		t.Errorf("Expected %+v, got %+v", want, config)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestConfigFromEnvInvalidTimeout(t *testing.T) {
	t.Setenv("BAHN_HTTP_TIMEOUT", "soon")

	if config := ConfigFromEnv(); config.Timeout != DefaultConfig().Timeout {
		t.Errorf("Expected default timeout, got %s", config.Timeout)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bahn.yaml")
	yaml := `baseURL: https://apis.example.com/file
clientID: file-client
apiKey: file-key
timeout: 10s
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("DB_API_URL", "")
	t.Setenv("DB_API_CLIENT_ID", "")
	t.Setenv("DB_API_KEY", "env-key")
	t.Setenv("BAHN_STATIONS_FILE", "")
	t.Setenv("BAHN_HTTP_TIMEOUT", "")

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := Config{
		BaseURL:      "https://apis.example.com/file",
		ClientID:     "file-client",
		APIKey:       "env-key",
		StationsFile: DefaultConfig().StationsFile,
		Timeout:      10 * time.Second,
	}
	if config != want {
		t.Errorf("Expected %+v, got %+v", want, config)
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
