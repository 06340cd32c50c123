// Package models contains the canonical station and timetable types
// returned by the bahn client. None of the abbreviated upstream XML field
// names appear here; see internal/timetables for the wire shapes.
package models
