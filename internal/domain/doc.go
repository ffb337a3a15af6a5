// Package domain models USGS earthquake feed records.
//
// # Data Source
//
// Records follow the USGS earthquake CSV feed layout: one event per line,
// comma-delimited, at least 16 positional fields. The feed is split on
// literal commas (it is not quote-escaped CSV). The fields this service
// reads, 0-indexed:
//
//	 0  time        fixed shape YYYY-MM-DDThh:mm:ss.sssZ, always Zulu
//	 1  latitude    decimal degrees, [-90, 90]
//	 2  longitude   decimal degrees, [-180, 180]
//	 3  depth       kilometers (taken as reported, may be negative)
//	 4  mag         magnitude value
//	 5  magType     magnitude unit label, e.g. "md", "ml", "mw"
//	11  id          USGS event id, e.g. "nc72666881"
//	13  place       free-text place label, e.g. "8km NE of Aguanga, CA"
//	15  type        event classification: "earthquake", "quarry blast", ...
//
// # Timestamp Laxity
//
// The timestamp check is a digit-shape match only ([12]\d{3}-[01]\d-[0-3]\d
// T[0-2]\d:[0-5]\d:[0-5]\d.\d{3}Z). Calendar-impossible values such as month
// 19 or day 39 parse successfully when the digit pattern matches. This is
// deliberate: ordering downstream needs only consistent field comparison,
// and rejecting such values would drop records the upstream feed emits.
//
// # Parse Failure Policy
//
// A malformed record never faults past [ParseRecord]; it yields a typed
// [ParseError] carrying the offending field group and raw value. Batch-level
// handling captures these as [ParseResult] values, and the earthquake filter
// drops them silently so one bad record never invalidates the batch.
package domain
