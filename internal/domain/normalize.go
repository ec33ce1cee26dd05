package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when a date field holds text.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Normalize converts raw rows into daily records of the same length and order.
// A row with an unparseable date aborts the whole dataset with a *MalformedDateError.
// Unknown conditions are not an error; they get ConditionUnclassified.
func Normalize(rows []RawRow, fields FieldMap, table ConditionTable) ([]DailyRecord, error) {
	records := make([]DailyRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := NormalizeRow(i, row, fields, table)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// NormalizeRow converts a single raw row. i is only used for error reporting.
func NormalizeRow(i int, row RawRow, fields FieldMap, table ConditionTable) (DailyRecord, error) {
	rawDate := row[fields.Date]
	date, ok := parseDate(rawDate)
	if !ok {
		return DailyRecord{}, &MalformedDateError{Row: i, Field: fields.Date, Value: rawDate}
	}

	label := ClassifyCondition(stringValue(row[fields.Condition]))

	return DailyRecord{
		DateStr:        dateText(rawDate),
		Date:           date,
		Month:          int(date.Month()) - 1,
		Low:            floatOrZero(row[fields.Low]),
		High:           floatOrZero(row[fields.High]),
		Avg:            floatOrZero(row[fields.Avg]),
		Precipitation:  floatOrZero(row[fields.Precipitation]),
		Humidity:       floatOrZero(row[fields.Humidity]),
		Condition:      table.Index(label),
		ConditionLabel: label,
	}, nil
}

// parseDate returns the calendar day of v as midnight UTC. An offset in the
// source only selects the day; it never moves the day across a month edge.
func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return calendarDay(d), true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return calendarDay(t), true
			}
		}
	}
	return time.Time{}, false
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dateText keeps string dates verbatim and formats time values as ISO dates.
func dateText(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return stringValue(v)
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// floatOrZero converts a raw numeric value to a finite float64, returning 0
// when it cannot. NaN and infinities count as unparseable.
func floatOrZero(v any) float64 {
	f := rawFloat(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func rawFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
