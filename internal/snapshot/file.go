package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/jusunglee/bahn-go/pkg/models"
)

// ReadFile loads and decodes a protobuf snapshot from disk
func ReadFile(path string) (models.StationList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.StationList{}, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	list, err := Unmarshal(data)
	if err != nil {
		return models.StationList{}, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return list, nil
}

// WriteFile encodes list as protobuf and writes it to path
func WriteFile(path string, list models.StationList) error {
	return os.WriteFile(path, Marshal(list), 0644)
}

// WriteJSON writes the stations as a JSON array
func WriteJSON(w io.Writer, list models.StationList) error {
	stations := list.Stations
	if stations == nil {
		stations = []models.Station{}
	}
	return json.NewEncoder(w).Encode(stations)
}

type csvStation struct {
	StationID   string  `csv:"station_id"`
	Name        string  `csv:"name"`
	Street      string  `csv:"street"`
	HouseNumber string  `csv:"house_number"`
	PostalCode  string  `csv:"postal_code"`
	City        string  `csv:"city"`
	State       string  `csv:"state"`
	Country     string  `csv:"country"`
	Longitude   float64 `csv:"longitude"`
	Latitude    float64 `csv:"latitude"`
}

// WriteCSV writes one row per station with the address and position flattened
func WriteCSV(w io.Writer, list models.StationList) error {
	rows := make([]*csvStation, 0, len(list.Stations))
	for _, s := range list.Stations {
		row := &csvStation{StationID: s.StationID, Name: s.Name}
		if s.Address != nil {
			row.Street = s.Address.Street
			row.HouseNumber = s.Address.HouseNumber
			row.PostalCode = s.Address.PostalCode
			row.City = s.Address.City
			row.State = s.Address.State
			row.Country = s.Address.Country
		}
		if s.Position != nil {
			row.Longitude = s.Position.Longitude
			row.Latitude = s.Position.Latitude
		}
		rows = append(rows, row)
	}
	return gocsv.Marshal(rows, w)
}
