package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Magnitude is a seismic magnitude reading with its unit label and source
// depth in kilometers. Depth is taken as reported; negative values pass
// through unvalidated.
type Magnitude struct {
	Value   float64 `json:"value"`
	Units   string  `json:"units"`
	DepthKm float64 `json:"depth_km"`
}

// parseMagnitude builds a Magnitude from the positional triplet
// [value, units, depth]. Wrong arity or a non-numeric value/depth fails with
// a ParseError.
func parseMagnitude(fields []string) (Magnitude, error) {
	if len(fields) != 3 {
		return Magnitude{}, &ParseError{
			Field: "magnitude",
			Value: strings.Join(fields, ","),
			Msg:   fmt.Sprintf("want 3 fields [value, units, depth], got %d", len(fields)),
		}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return Magnitude{}, &ParseError{Field: "magnitude value", Value: fields[0], Msg: "not numeric"}
	}
	depth, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return Magnitude{}, &ParseError{Field: "magnitude depth", Value: fields[2], Msg: "not numeric"}
	}

	return Magnitude{Value: value, Units: strings.TrimSpace(fields[1]), DepthKm: depth}, nil
}
