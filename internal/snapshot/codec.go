// Package snapshot encodes and decodes the station snapshot file.
//
// The snapshot uses the protobuf wire format described by stations.proto.
// Encoding and decoding are done field by field with protowire so no
// generated code has to be kept in sync with the schema.
package snapshot

import (
	"errors"
	"fmt"
	"math"

	"github.com/jusunglee/bahn-go/pkg/models"
	"google.golang.org/protobuf/encoding/protowire"
)

// ErrCorrupt is returned when a snapshot cannot be decoded
var ErrCorrupt = errors.New("corrupt station snapshot")

// Field numbers from stations.proto
const (
	fieldStationListStations protowire.Number = 1

	fieldStationID       protowire.Number = 1
	fieldStationName     protowire.Number = 2
	fieldStationAddress  protowire.Number = 3
	fieldStationPosition protowire.Number = 4

	fieldAddressStreet      protowire.Number = 1
	fieldAddressHouseNumber protowire.Number = 2
	fieldAddressPostalCode  protowire.Number = 3
	fieldAddressCity        protowire.Number = 4
	fieldAddressState       protowire.Number = 5
	fieldAddressCountry     protowire.Number = 6

	fieldPositionLongitude protowire.Number = 1
	fieldPositionLatitude  protowire.Number = 2
)

// Marshal encodes a station list
func Marshal(list models.StationList) []byte {
	var b []byte
	for i := range list.Stations {
		b = protowire.AppendTag(b, fieldStationListStations, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalStation(&list.Stations[i]))
	}
	return b
}

func marshalStation(s *models.Station) []byte {
	var b []byte
	b = appendString(b, fieldStationID, s.StationID)
	b = appendString(b, fieldStationName, s.Name)
	if s.Address != nil {
		b = protowire.AppendTag(b, fieldStationAddress, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalAddress(s.Address))
	}
	if s.Position != nil {
		b = protowire.AppendTag(b, fieldStationPosition, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalPosition(s.Position))
	}
	return b
}

func marshalAddress(a *models.Address) []byte {
	var b []byte
	b = appendString(b, fieldAddressStreet, a.Street)
	b = appendString(b, fieldAddressHouseNumber, a.HouseNumber)
	b = appendString(b, fieldAddressPostalCode, a.PostalCode)
	b = appendString(b, fieldAddressCity, a.City)
	b = appendString(b, fieldAddressState, a.State)
	b = appendString(b, fieldAddressCountry, a.Country)
	return b
}

func marshalPosition(p *models.Position) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldPositionLongitude, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(p.Longitude))
	b = protowire.AppendTag(b, fieldPositionLatitude, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(p.Latitude))
	return b
}

// proto3 leaves empty strings off the wire
func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// Unmarshal decodes a station list. Unknown fields are skipped.
func Unmarshal(b []byte) (models.StationList, error) {
	var list models.StationList
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num != fieldStationListStations {
			return nil
		}
		if typ != protowire.BytesType {
			return wrongType("StationList.stations", typ)
		}
		station, err := unmarshalStation(v)
		if err != nil {
			return fmt.Errorf("station %d: %w", len(list.Stations), err)
		}
		list.Stations = append(list.Stations, station)
		return nil
	})
	if err != nil {
		return models.StationList{}, err
	}
	return list, nil
}

func unmarshalStation(b []byte) (models.Station, error) {
	var s models.Station
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		switch num {
		case fieldStationID:
			if typ != protowire.BytesType {
				return wrongType("Station.stationID", typ)
			}
			s.StationID = string(v)
		case fieldStationName:
			if typ != protowire.BytesType {
				return wrongType("Station.name", typ)
			}
			s.Name = string(v)
		case fieldStationAddress:
			if typ != protowire.BytesType {
				return wrongType("Station.address", typ)
			}
			address, err := unmarshalAddress(v)
			if err != nil {
				return err
			}
			s.Address = &address
		case fieldStationPosition:
			if typ != protowire.BytesType {
				return wrongType("Station.position", typ)
			}
			position, err := unmarshalPosition(v)
			if err != nil {
				return err
			}
			s.Position = &position
		}
		return nil
	})
	return s, err
}

func unmarshalAddress(b []byte) (models.Address, error) {
	var a models.Address
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		var dst *string
		switch num {
		case fieldAddressStreet:
			dst = &a.Street
		case fieldAddressHouseNumber:
			dst = &a.HouseNumber
		case fieldAddressPostalCode:
			dst = &a.PostalCode
		case fieldAddressCity:
			dst = &a.City
		case fieldAddressState:
			dst = &a.State
		case fieldAddressCountry:
			dst = &a.Country
		default:
			return nil
		}
		if typ != protowire.BytesType {
			return wrongType("Address field", typ)
		}
		*dst = string(v)
		return nil
	})
	return a, err
}

func unmarshalPosition(b []byte) (models.Position, error) {
	var p models.Position
	err := walk(b, func(num protowire.Number, typ protowire.Type, _ []byte, fixed uint64) error {
		var dst *float64
		switch num {
		case fieldPositionLongitude:
			dst = &p.Longitude
		case fieldPositionLatitude:
			dst = &p.Latitude
		default:
			return nil
		}
		if typ != protowire.Fixed64Type {
			return wrongType("Position field", typ)
		}
		*dst = math.Float64frombits(fixed)
		return nil
	})
	return p, err
}

// walk calls fn for every field in b. Length-delimited payloads are passed
// as v, fixed64 payloads as fixed; other wire types are skipped over.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte, fixed uint64) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]

		var v []byte
		var fixed uint64
		switch typ {
		case protowire.BytesType:
			v, n = protowire.ConsumeBytes(b)
		case protowire.Fixed64Type:
			fixed, n = protowire.ConsumeFixed64(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.BytesType && typ != protowire.Fixed64Type {
			continue
		}
		if err := fn(num, typ, v, fixed); err != nil {
			return err
		}
	}
	return nil
}

func wrongType(field string, typ protowire.Type) error {
	return fmt.Errorf("%w: %s has wire type %d", ErrCorrupt, field, typ)
}
