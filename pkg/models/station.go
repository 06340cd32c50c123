package models

// Position represents a WGS84 coordinate
type Position struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Address is the postal address of a station.
// PostalCode, City and Country are always set by the upstream API.
type Address struct {
	Street      string `json:"street,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
	PostalCode  string `json:"postalCode"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country"`
}

// Station is a single entry of the station snapshot
type Station struct {
	StationID string    `json:"stationID"`
	Name      string    `json:"name"`
	Address   *Address  `json:"address,omitempty"`
	Position  *Position `json:"position,omitempty"`
}

// StationList is the root of the station snapshot
type StationList struct {
	Stations []Station `json:"stations"`
}

// StationData is a station returned by the timetables station search
type StationData struct {
	DS100     string `json:"ds100,omitempty"`
	EVA       int64  `json:"eva"`
	Meta      string `json:"meta,omitempty"`
	Name      string `json:"name"`
	Platforms string `json:"p,omitempty"`
}

// StationsResponse is the result of a station search by pattern
type StationsResponse struct {
	Stations []StationData `json:"stations"`
}
