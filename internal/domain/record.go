package domain

import "time"

// RawRow is one caller-supplied input row keyed by raw column name.
type RawRow map[string]any

// FieldMap maps each logical field to the raw column that holds it.
type FieldMap struct {
	Date          string `toml:"date" validate:"required"`
	Low           string `toml:"low" validate:"required"`
	High          string `toml:"high" validate:"required"`
	Avg           string `toml:"avg" validate:"required"`
	Precipitation string `toml:"precipitation" validate:"required"`
	Humidity      string `toml:"humidity" validate:"required"`
	Condition     string `toml:"condition" validate:"required"`
}

// DefaultFieldMap returns the column names used by Visual Crossing exports.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		Date:          "Date time",
		Low:           "Minimum Temperature",
		High:          "Maximum Temperature",
		Avg:           "Temperature",
		Precipitation: "Precipitation",
		Humidity:      "Relative Humidity",
		Condition:     "Conditions",
	}
}

// DailyRecord is the normalized form of a single day.
type DailyRecord struct {
	DateStr        string    `json:"date_str"`
	Date           time.Time `json:"date"`
	Month          int       `json:"month"` // 0..11
	Low            float64   `json:"low"`
	High           float64   `json:"high"`
	Avg            float64   `json:"avg"`
	Precipitation  float64   `json:"precipitation"`
	Humidity       float64   `json:"humidity"`
	Condition      Condition `json:"condition"`
	ConditionLabel string    `json:"condition_label"`
}

// Classified reports whether the record's condition is in the condition table.
func (r DailyRecord) Classified() bool {
	return r.Condition != ConditionUnclassified
}
