// Package domain contains the core data types for the departure board.
// This package has zero external dependencies and is imported by every other
// internal package (upstream, service, board, poller, handler).
package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// StatusRecord is one row of arrival information as served by POST /poll.
// Field names match the upstream feed columns one-for-one.
// Decoding is lenient field by field: see UnmarshalJSON.
type StatusRecord struct {
	TimeStamp     Int    `json:"TimeStamp"` // server "now", epoch seconds
	Origin        string `json:"Origin"`
	Trip          string `json:"Trip"`
	Destination   string `json:"Destination"`
	ScheduledTime Int    `json:"ScheduledTime"` // epoch seconds
	Lateness      Int    `json:"Lateness"`      // seconds
	Track         string `json:"Track"`         // empty until assigned
	Status        string `json:"Status"`
}

// Batch is the ordered list of records returned by one poll.
// Order is display order.
type Batch []StatusRecord

// Int is an int64 that decodes leniently from JSON.
// The upstream feed is CSV, so producers frequently emit numbers as strings.
// Numbers, numeric strings, null, and the empty string are all accepted;
// anything unparseable decodes to zero rather than failing the whole batch.
type Int int64

// ParseInt converts s to an Int, returning zero for blank or malformed input.
// Fractional values are truncated toward zero. Values outside the int64 range
// are malformed.
func ParseInt(s string) Int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.Abs(f) >= math.MaxInt64 {
			return 0
		}
		return Int(int64(f))
	}
	return 0
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*i = 0
			return nil
		}
		*i = ParseInt(s)
		return nil
	}
	*i = ParseInt(string(b))
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Keys match case-insensitively.
// Int fields decode as Int does. Text fields take a JSON string as is and a
// JSON number as its decimal text; null, booleans, objects and arrays become
// "". Only a record that is not a JSON object is an error.
func (r *StatusRecord) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*r = StatusRecord{}
	for key, raw := range fields {
		switch strings.ToLower(key) {
		case "timestamp":
			_ = r.TimeStamp.UnmarshalJSON(raw)
		case "scheduledtime":
			_ = r.ScheduledTime.UnmarshalJSON(raw)
		case "lateness":
			_ = r.Lateness.UnmarshalJSON(raw)
		case "origin":
			r.Origin = lenientString(raw)
		case "trip":
			r.Trip = lenientString(raw)
		case "destination":
			r.Destination = lenientString(raw)
		case "track":
			r.Track = lenientString(raw)
		case "status":
			r.Status = lenientString(raw)
		}
	}
	return nil
}

func lenientString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	}
	return ""
}
