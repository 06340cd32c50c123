package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/bahn-go/internal/logging"
	"github.com/jusunglee/bahn-go/pkg/bahn"
	"github.com/jusunglee/bahn-go/pkg/models"
	"github.com/rs/zerolog/log"

	_ "time/tzdata"
)

func main() {
	var (
		lon          = flag.Float64("lon", 6.091499, "Longitude")
		lat          = flag.Float64("lat", 50.7678, "Latitude")
		radius       = flag.Float64("radius", 2000, "Search radius in meters")
		pattern      = flag.String("pattern", "", "Search stations by name, EVA number or DS100 code")
		eva          = flag.Int64("eva", 0, "Show the plan of this station")
		hour         = flag.Int("hour", -1, "Plan hour (defaults to the current hour)")
		stationsFile = flag.String("stations-file", "", "Stations protobuf snapshot")
		timezone     = flag.String("timezone", "Europe/Berlin", "Timezone for plan dates")
	)
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")
	logging.Setup()

	config := bahn.ConfigFromEnv()
	if *stationsFile != "" {
		config.StationsFile = *stationsFile
	}
	client := bahn.New(config)

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout+5*time.Second)
	defer cancel()

	// Pattern search mode
	if *pattern != "" {
		response, err := client.FetchStationsByPattern(ctx, *pattern)
		if err != nil {
			log.Error().Err(err).Str("pattern", *pattern).Msg("Failed to search stations")
			os.Exit(1)
		}

		fmt.Printf("\nStations matching %q:\n", *pattern)
		for _, station := range response.Stations {
			fmt.Printf("- %s (eva %d, %s)\n", station.Name, station.EVA, station.DS100)
		}
		return
	}

	// Station plan mode
	if *eva != 0 {
		location, err := time.LoadLocation(*timezone)
		if err != nil {
			log.Error().Err(err).Str("timezone", *timezone).Msg("Unknown timezone")
			os.Exit(1)
		}

		date, planHour := planSlot(time.Now(), location, *hour)
		plan, err := client.FetchStationPlan(ctx, *eva, date, planHour)
		if err != nil {
			log.Error().Err(err).Int64("eva", *eva).Msg("Failed to fetch plan")
			os.Exit(1)
		}
		printPlan(plan.Timetable)
		return
	}

	// Default location-based query mode
	stations, err := client.FindStationsNear(*lon, *lat, *radius)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get stations")
		os.Exit(1)
	}

	fmt.Printf("\nStations within %.0f m of (%.4f, %.4f):\n", *radius, *lon, *lat)
	for _, station := range stations {
		fmt.Printf("\n%s (%s)\n", station.Name, station.StationID)
		if station.Address != nil {
			fmt.Printf("  %s %s, %s %s\n", station.Address.Street, station.Address.HouseNumber,
				station.Address.PostalCode, station.Address.City)
		}
	}
}

// planSlot resolves the plan date and hour in location. A negative hour
// means the current hour there.
func planSlot(now time.Time, location *time.Location, hour int) (time.Time, int) {
	date := now.In(location)
	if hour < 0 {
		hour = date.Hour()
	}
	return date, hour
}

func printPlan(timetable *models.Timetable) {
	if timetable == nil {
		fmt.Println("No plan available")
		return
	}

	fmt.Printf("\n%s\n", timetable.StationName)
	for _, stop := range timetable.Stops {
		train := stop.ID
		if stop.TripLabel != nil {
			train = stop.TripLabel.Category + " " + stop.TripLabel.Number
		}

		if stop.ArrivalEvent != nil {
			fmt.Printf("  %-10s arr %s  platform %-3s\n", train, formatTime(stop.ArrivalEvent.PlannedTime), stop.ArrivalEvent.PlannedPlatform)
		}
		if stop.DepartureEvent != nil {
			fmt.Printf("  %-10s dep %s  platform %-3s\n", train, formatTime(stop.DepartureEvent.PlannedTime), stop.DepartureEvent.PlannedPlatform)
		}
	}
}

// formatTime turns a YYMMddHHmm timestamp into HH:MM
func formatTime(ts string) string {
	t, err := time.Parse("0601021504", ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}
