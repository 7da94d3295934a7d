// Package datetime holds the timestamp and date types exchanged with the
// clinic API and the helpers that turn them into human-readable text.
package datetime

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the layout used on the wire for timestamps sent by the
// console (UTC, millisecond precision).
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the wire layout for calendar dates.
const DateLayout = "2006-01-02"

// InputLayout is the layout accepted from datetime form inputs.
const InputLayout = "2006-01-02T15:04"

// The API may return naive timestamps (no zone) as well as RFC 3339 ones.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	InputLayout,
}

// Timestamp is a point in time exchanged as text.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses any of the layouts the API is known to produce.
// Naive values are interpreted as UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

// MarshalJSON writes the timestamp in UTC with millisecond precision, or
// null for the zero value.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.UTC().Format(ISOLayout) + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// ParseDate parses a yyyy-mm-dd value.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected yyyy-mm-dd", s)
	}
	return Date{Time: t}, nil
}

// String returns the wire representation.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*d = Date{}
		return nil
	}
	// Some drivers serialise dates as midnight timestamps.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Display converts wire values to local, human-readable text.
type Display struct {
	Location *time.Location
}

// NewDisplay returns a Display for the named IANA zone ("Local" or "" for the
// host zone).
func NewDisplay(zone string) (Display, error) {
	if zone == "" || zone == "Local" {
		return Display{Location: time.Local}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Display{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return Display{Location: loc}, nil
}

func (d Display) loc() *time.Location {
	if d.Location == nil {
		return time.Local
	}
	return d.Location
}

// DateTime renders dd/mm/yyyy hh:mm:ss in the display zone.
func (d Display) DateTime(ts Timestamp) string {
	if ts.IsZero() {
		return "N/A"
	}
	return ts.In(d.loc()).Format("02/01/2006 15:04:05")
}

// ShortDateTime renders dd/mm/yyyy hh:mm in the display zone.
func (d Display) ShortDateTime(ts Timestamp) string {
	if ts.IsZero() {
		return "N/A"
	}
	return ts.In(d.loc()).Format("02/01/2006 15:04")
}

// Date renders dd/mm/yyyy.
func (d Display) Date(dt Date) string {
	if dt.IsZero() {
		return "N/A"
	}
	return dt.Format("02/01/2006")
}

// Input renders a timestamp the way a datetime form input holds it.
func (d Display) Input(ts Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(d.loc()).Format(InputLayout)
}

// ParseInput reads a datetime form input (local wall clock) into a timestamp.
func (d Display) ParseInput(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(InputLayout, s, d.loc()); err == nil {
		return Timestamp{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	return Timestamp{}, fmt.Errorf("invalid datetime %q: expected yyyy-mm-ddThh:mm", s)
}
