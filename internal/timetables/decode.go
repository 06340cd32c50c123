// Package timetables decodes DB Timetables API XML documents and normalizes
// them into the canonical pkg/models representation.
//
// Decoding and normalization are separate steps: DecodePlan and
// DecodeStations turn XML into wire trees, Normalize and NormalizeStations
// turn wire trees into models without any I/O.
package timetables

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ErrDecode is returned for malformed or unexpected XML documents
var ErrDecode = errors.New("failed to decode timetables document")

// DecodeStations decodes a station search response
func DecodeStations(r io.Reader) (*WireStations, error) {
	var stations WireStations
	if err := decode(r, &stations); err != nil {
		return nil, err
	}
	return &stations, nil
}

// DecodePlan decodes a station plan response
func DecodePlan(r io.Reader) (*WireTimetable, error) {
	var timetable WireTimetable
	if err := decode(r, &timetable); err != nil {
		return nil, err
	}
	return &timetable, nil
}

func decode(r io.Reader, v interface{}) error {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	if err := d.Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: empty document", ErrDecode)
		}
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
