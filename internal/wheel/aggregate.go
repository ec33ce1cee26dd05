package wheel

import (
	"fmt"

	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/pack"
	"github.com/couchcryptid/weather-wheel/internal/scale"
)

// strokeDarken is how many steps darker than its fill a circle outline is drawn.
const strokeDarken = 0.75

// AggregateCircle is one condition class of the summary, packed into the wheel center.
// X and Y are relative to the top-left corner of the pack square.
type AggregateCircle struct {
	Condition domain.Condition `json:"condition"`
	Label     string           `json:"label"`
	Count     int              `json:"count"`
	Color     string           `json:"color"`
	Stroke    string           `json:"stroke"`
	Icon      string           `json:"icon,omitempty"`
	X         float64          `json:"x"`
	Y         float64          `json:"y"`
	Radius    float64          `json:"r"`
}

// Aggregate counts records by condition and packs one circle per class into a
// side × side square. Classes appear in order of first occurrence. Unclassified
// records are not counted.
func Aggregate(records []domain.DailyRecord, table domain.ConditionTable, side, padding float64) ([]AggregateCircle, error) {
	var (
		order  []domain.Condition
		counts = make(map[domain.Condition]int)
	)
	for _, r := range records {
		if _, ok := table.Style(r.Condition); !ok {
			continue
		}
		if counts[r.Condition] == 0 {
			order = append(order, r.Condition)
		}
		counts[r.Condition]++
	}

	weights := make([]float64, len(order))
	for i, c := range order {
		weights[i] = float64(counts[c])
	}
	placed, err := pack.Pack(weights, side, padding)
	if err != nil {
		return nil, fmt.Errorf("pack conditions: %w", err)
	}

	circles := make([]AggregateCircle, len(order))
	for i, c := range order {
		style, _ := table.Style(c)
		circles[i] = AggregateCircle{
			Condition: c,
			Label:     style.ID,
			Count:     counts[c],
			Color:     style.Color,
			Stroke:    stroke(style.Color),
			Icon:      style.Icon,
			X:         placed[i].X,
			Y:         placed[i].Y,
			Radius:    placed[i].R,
		}
	}
	return circles, nil
}

func stroke(fill string) string {
	c, err := scale.ParseHex(fill)
	if err != nil {
		return fill
	}
	return c.Darker(strokeDarken).Hex()
}
