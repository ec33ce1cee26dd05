// Package domain models daily weather observations for the weather wheel.
//
// # Data Source
//
// Rows usually come from a yearly "history" export of a weather service such
// as Visual Crossing, one row per calendar day. The column names of those
// exports are long and human readable ("Minimum Temperature", "Conditions"),
// so every logical field is looked up through a [FieldMap] that callers may
// override.
//
// # Conventions
//
// Date format:
//
//	"01/02/2006" (the export default), ISO "2006-01-02", RFC 3339, or a
//	time.Time value. The original text is preserved verbatim in
//	DailyRecord.DateStr for display; anything else is a [MalformedDateError].
//	DailyRecord.Date is the calendar day as written, at midnight UTC; a
//	time of day or zone offset in the source is dropped.
//
// Numeric fields:
//
//	Temperatures, precipitation and relative humidity are passed through as
//	float64. Strings are parsed; empty or unparseable values, NaN and
//	infinities become 0. Units are opaque display labels and never
//	converted.
//
// Sky conditions:
//
//	Free text such as "Rain, Partially cloudy" or "Snow, Overcast" is folded
//	into a small fixed table:
//
//	  index 0 Clear
//	  index 1 Partially_cloudy
//	  index 2 Overcast
//	  index 3 Rain    (any text starting with "Rain")
//	  index 4 Snow    (any text starting with "Snow")
//
//	Spaces become underscores. Anything else ("Fog", "") is unclassified and
//	gets index -1; such days still have temperature, precipitation and
//	humidity tracks but take no part in the condition summary.
//
// # Ordering
//
// Normalization preserves input order and length. The wheel spaces days by
// their dates, so a dropped row would shift the angular layout; a single bad
// date therefore aborts the whole dataset instead of being skipped.
package domain
