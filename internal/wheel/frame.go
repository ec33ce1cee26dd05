package wheel

import (
	"time"

	"github.com/couchcryptid/weather-wheel/internal/domain"
)

// axisTicks is the maximum number of temperature axis rings.
const axisTicks = 5

// DayGeometry is the drawable description of one day. Radii are measured from
// the wheel center.
type DayGeometry struct {
	Index    int     `json:"index"`
	Date     string  `json:"date"`
	Angle    float64 `json:"angle"`
	Rotation float64 `json:"rotation"`

	LowRadius  float64 `json:"low_radius"`
	HighRadius float64 `json:"high_radius"`
	AvgRadius  float64 `json:"avg_radius"`

	BubbleRadius   float64 `json:"bubble_radius"`
	BubbleCenter   float64 `json:"bubble_center"`
	HumidityRadius float64 `json:"humidity_radius"`
	HumidityColor  string  `json:"humidity_color"`

	Condition      domain.Condition `json:"condition"`
	ConditionLabel string           `json:"condition_label"`
	Color          string           `json:"color,omitempty"`
}

// Tick is one temperature axis ring.
type Tick struct {
	Value  float64 `json:"value"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

// MonthMark is the interaction region of one month, starting at its first day.
type MonthMark struct {
	Month    int     `json:"month"`
	Name     string  `json:"name"`
	Angle    float64 `json:"angle"`
	Rotation float64 `json:"rotation"`
	Span     float64 `json:"span"`
}

// Frame is a complete snapshot of a chart for a rendering surface.
type Frame struct {
	Year   int     `json:"year"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Radii  Radii   `json:"radii"`

	DaySlot          float64 `json:"day_slot"`
	AverageLineWidth float64 `json:"average_line_width"`

	Days     []DayGeometry `json:"days"`
	Ticks    []Tick        `json:"ticks"`
	Months   []MonthMark   `json:"months"`
	Extremes Extremes      `json:"extremes"`
	Summary  Summary       `json:"summary"`

	Highlight   int       `json:"highlight"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Frame snapshots the chart state for a renderer.
func (c *Chart) Frame() Frame {
	return Frame{
		Year:             c.year,
		Width:            c.opts.Width,
		Height:           c.opts.Height,
		Radii:            c.radii,
		DaySlot:          c.scales.DaySlot,
		AverageLineWidth: c.AverageLineWidth(),
		Days:             c.Days(),
		Ticks:            c.ticks(),
		Months:           c.monthMarks(),
		Extremes:         c.extremes,
		Summary:          c.summary,
		Highlight:        c.highlight,
		GeneratedAt:      clock.Now().UTC(),
	}
}

func (c *Chart) dayGeometry() []DayGeometry {
	s := c.scales
	days := make([]DayGeometry, len(c.records))
	for i, r := range c.records {
		a := s.Angle.Map(r.Date)
		d := DayGeometry{
			Index:          i,
			Date:           r.DateStr,
			Angle:          a,
			Rotation:       Rotation(a),
			LowRadius:      s.Temperature.Map(r.Low),
			HighRadius:     s.Temperature.Map(r.High),
			AvgRadius:      s.Temperature.Map(r.Avg),
			BubbleRadius:   s.Bubble.Map(r.Precipitation),
			BubbleCenter:   c.radii.Outer + c.radii.Bubble,
			HumidityRadius: s.Humidity.Map(r.Humidity),
			HumidityColor:  s.HumidityColor.Map(r.Humidity).Hex(),
			Condition:      r.Condition,
			ConditionLabel: r.ConditionLabel,
		}
		if style, ok := c.opts.Conditions.Style(r.Condition); ok {
			d.Color = style.Color
		}
		days[i] = d
	}
	return days
}

func (c *Chart) ticks() []Tick {
	values := c.scales.Temperature.Ticks(axisTicks)
	if len(values) > axisTicks {
		values = values[:axisTicks]
	}
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{
			Value:  v,
			Radius: c.scales.Temperature.Map(v),
			Label:  formatValue(v) + c.opts.TemperatureUnit,
		}
	}
	return ticks
}

func (c *Chart) monthMarks() []MonthMark {
	marks := make([]MonthMark, len(c.opts.Months))
	for m, name := range c.opts.Months {
		a := c.scales.Angle.Map(time.Date(c.year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC))
		marks[m] = MonthMark{
			Month:    m,
			Name:     name,
			Angle:    a,
			Rotation: Rotation(a),
			Span:     fullTurn / 12,
		}
	}
	return marks
}
