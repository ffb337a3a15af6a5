package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// eventTimeRe matches the fixed USGS feed timestamp shape
// YYYY-MM-DDThh:mm:ss.sssZ. The check is purely syntactic: each field group
// is a digit pattern, not a calendar-validated value, so "2020-19-39..."
// parses. Downstream ordering only needs consistent field comparison.
var eventTimeRe = regexp.MustCompile(`^([12]\d{3})-([01]\d)-([0-3]\d)T([0-2]\d):([0-5]\d):([0-5]\d)\.\d{3}Z$`)

// timeFieldChecks identifies which field group of a rejected timestamp is the
// first to deviate from the fixed shape, for ParseError diagnostics.
var timeFieldChecks = []struct {
	name string
	re   *regexp.Regexp
}{
	{"year", regexp.MustCompile(`^[12]\d{3}-`)},
	{"month", regexp.MustCompile(`^[12]\d{3}-[01]\d-`)},
	{"day", regexp.MustCompile(`^[12]\d{3}-[01]\d-[0-3]\dT`)},
	{"hour", regexp.MustCompile(`^[12]\d{3}-[01]\d-[0-3]\dT[0-2]\d:`)},
	{"minute", regexp.MustCompile(`^[12]\d{3}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d:`)},
	{"second", regexp.MustCompile(`^[12]\d{3}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d:[0-5]\d\.`)},
	{"milliseconds", regexp.MustCompile(`^[12]\d{3}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d:[0-5]\d\.\d{3}Z$`)},
}

// EventTime is a UTC feed timestamp broken into its six ordered fields.
// The feed is always Zulu time, so there is no zone component. Immutable.
type EventTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// ParseEventTime parses a feed timestamp of the exact shape
// YYYY-MM-DDThh:mm:ss.sssZ. Any deviation fails with a ParseError naming the
// first offending field group.
func ParseEventTime(s string) (EventTime, error) {
	m := eventTimeRe.FindStringSubmatch(s)
	if m == nil {
		return EventTime{}, &ParseError{
			Field: offendingTimeField(s),
			Value: s,
			Msg:   "timestamp does not match YYYY-MM-DDThh:mm:ss.sssZ",
		}
	}
	return EventTime{
		Year:   mustAtoi(m[1]),
		Month:  mustAtoi(m[2]),
		Day:    mustAtoi(m[3]),
		Hour:   mustAtoi(m[4]),
		Minute: mustAtoi(m[5]),
		Second: mustAtoi(m[6]),
	}, nil
}

func offendingTimeField(s string) string {
	for _, c := range timeFieldChecks {
		if !c.re.MatchString(s) {
			return c.name
		}
	}
	return "timestamp"
}

// mustAtoi converts a digit group already validated by eventTimeRe.
func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("regexp-validated digits failed to parse: %q", s))
	}
	return n
}

// Compare orders two event times field by field (year through second).
// Returns -1 if t is earlier than u, 0 if all fields match, 1 if later.
func (t EventTime) Compare(u EventTime) int {
	pairs := [6][2]int{
		{t.Year, u.Year},
		{t.Month, u.Month},
		{t.Day, u.Day},
		{t.Hour, u.Hour},
		{t.Minute, u.Minute},
		{t.Second, u.Second},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// String renders the canonical feed shape with zero milliseconds.
func (t EventTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.000Z",
		t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}
