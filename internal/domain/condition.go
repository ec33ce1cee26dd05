package domain

import "strings"

// Condition is an index into the fixed condition table.
type Condition int

const (
	ConditionUnclassified Condition = -1
	ConditionClear        Condition = 0
	ConditionPartlyCloudy Condition = 1
	ConditionOvercast     Condition = 2
	ConditionRain         Condition = 3
	ConditionSnow         Condition = 4
)

// conditionIDs is the fixed label order; colors and icons are configurable, ids are not.
var conditionIDs = [...]string{"Clear", "Partially_cloudy", "Overcast", "Rain", "Snow"}

// ConditionStyle carries the display attributes of one condition class.
type ConditionStyle struct {
	ID    string `toml:"id" json:"id" validate:"required"`
	Color string `toml:"color" json:"color" validate:"required,hexcolor"`
	Icon  string `toml:"icon" json:"icon,omitempty"`
}

// ConditionTable is the ordered set of known condition classes.
type ConditionTable []ConditionStyle

// DefaultConditionTable returns the five known classes with their default colors.
func DefaultConditionTable() ConditionTable {
	return ConditionTable{
		{ID: conditionIDs[ConditionClear], Color: "#fff3b0"},
		{ID: conditionIDs[ConditionPartlyCloudy], Color: "#e7d8c9"},
		{ID: conditionIDs[ConditionOvercast], Color: "#dddddd"},
		{ID: conditionIDs[ConditionRain], Color: "#98c1d9"},
		{ID: conditionIDs[ConditionSnow], Color: "#c2dfe3"},
	}
}

// Index returns the position of label in the table, or ConditionUnclassified.
func (t ConditionTable) Index(label string) Condition {
	for i, c := range t {
		if c.ID == label {
			return Condition(i)
		}
	}
	return ConditionUnclassified
}

// Style returns the style of c. ok is false for unclassified or out-of-table conditions.
func (t ConditionTable) Style(c Condition) (ConditionStyle, bool) {
	if c < 0 || int(c) >= len(t) {
		return ConditionStyle{}, false
	}
	return t[c], true
}

// WithStyles returns a copy of the default table with colors and icons taken from
// overrides, matched by id. Unknown ids in overrides are ignored.
func WithStyles(overrides []ConditionStyle) ConditionTable {
	t := DefaultConditionTable()
	for _, o := range overrides {
		i := t.Index(o.ID)
		if i == ConditionUnclassified {
			continue
		}
		if o.Color != "" {
			t[i].Color = o.Color
		}
		if o.Icon != "" {
			t[i].Icon = o.Icon
		}
	}
	return t
}

// ClassifyCondition folds free-text sky conditions into a table label:
// "Rain..." becomes "Rain", "Snow..." becomes "Snow", and spaces become underscores.
func ClassifyCondition(raw string) string {
	switch {
	case strings.HasPrefix(raw, "Rain"):
		raw = "Rain"
	case strings.HasPrefix(raw, "Snow"):
		raw = "Snow"
	}
	return strings.ReplaceAll(raw, " ", "_")
}
