package domain

import (
	"strconv"
	"strings"
	"time"
)

// USGS feed positional field indexes (0-based). The feed is a literal
// comma-split, not quote-escaped CSV; see the package doc for the full layout.
const (
	fieldTime      = 0
	fieldLatitude  = 1
	fieldLongitude = 2
	fieldDepth     = 3
	fieldMagValue  = 4
	fieldMagUnits  = 5
	fieldID        = 11
	fieldPlace     = 13
	fieldEventType = 15

	// minRecordFields is the smallest field count that covers every
	// referenced index.
	minRecordFields = 16
)

// eventTypeEarthquake is the feed tag that classifies a record as an
// earthquake; other values (quarry blast, explosion, ...) pass through
// parsing but are dropped by the earthquake filter.
const eventTypeEarthquake = "earthquake"

// SeismicEvent is the parsed, domain-rich representation of one feed record.
// Events are built only by ParseRecord and never mutated afterwards; query
// results reference the originally parsed values.
type SeismicEvent struct {
	ID        string    `json:"id"`
	Time      EventTime `json:"time"`
	Location  GeoPoint  `json:"location"`
	Magnitude Magnitude `json:"magnitude"`
	EventType string    `json:"event_type"`

	IngestedAt time.Time `json:"ingested_at"`
}

// IsEarthquake reports whether the record's event-type tag is "earthquake".
func (e SeismicEvent) IsEarthquake() bool {
	return e.EventType == eventTypeEarthquake
}

// ParseRecord converts one raw comma-delimited feed record into a
// SeismicEvent. A malformed record always yields a typed ParseError, never a
// fault: insufficient field count, an unparseable timestamp, non-numeric
// coordinates, and a bad magnitude triplet are all reported with the
// offending raw value.
func ParseRecord(record string) (SeismicEvent, error) {
	fields := strings.Split(record, ",")
	if len(fields) < minRecordFields {
		return SeismicEvent{}, &ParseError{
			Field: "record",
			Value: record,
			Msg:   "want at least " + strconv.Itoa(minRecordFields) + " fields, got " + strconv.Itoa(len(fields)),
		}
	}

	eventTime, err := ParseEventTime(fields[fieldTime])
	if err != nil {
		return SeismicEvent{}, err
	}

	location, err := parseLocation(fields[fieldLatitude], fields[fieldLongitude], fields[fieldPlace])
	if err != nil {
		return SeismicEvent{}, err
	}

	magnitude, err := parseMagnitude([]string{fields[fieldMagValue], fields[fieldMagUnits], fields[fieldDepth]})
	if err != nil {
		return SeismicEvent{}, err
	}

	return SeismicEvent{
		ID:         strings.TrimSpace(fields[fieldID]),
		Time:       eventTime,
		Location:   location,
		Magnitude:  magnitude,
		EventType:  strings.TrimSpace(fields[fieldEventType]),
		IngestedAt: clock.Now(),
	}, nil
}

// parseLocation builds the event GeoPoint from the latitude, longitude, and
// place fields of a record.
func parseLocation(latField, lonField, place string) (GeoPoint, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latField), 64)
	if err != nil {
		return GeoPoint{}, &ParseError{Field: "latitude", Value: latField, Msg: "not numeric"}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonField), 64)
	if err != nil {
		return GeoPoint{}, &ParseError{Field: "longitude", Value: lonField, Msg: "not numeric"}
	}
	return NewGeoPoint(lat, lon, strings.TrimSpace(place))
}

// ParseResult tags one record's parse outcome: either Event is populated or
// Err is non-nil. Parse failures are captured as values and dropped, not
// escalated, at the earthquake-filter boundary.
type ParseResult struct {
	Event SeismicEvent
	Err   error
}

// Ok reports whether the record parsed successfully.
func (r ParseResult) Ok() bool { return r.Err == nil }
