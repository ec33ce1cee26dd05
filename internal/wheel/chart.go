package wheel

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/couchcryptid/weather-wheel/internal/domain"
)

// ErrDayOutOfRange is returned when a hovered day index is not in the dataset.
var ErrDayOutOfRange = errors.New("day index out of range")

// NoHighlight is the Highlight value when no day is hovered.
const NoHighlight = -1

// Summary is the condition summary for the active scope.
type Summary struct {
	Scope   Scope             `json:"scope"`
	Label   string            `json:"label"`
	Records int               `json:"records"`
	Circles []AggregateCircle `json:"circles"`
}

// DayInfo is the hover payload for one day.
type DayInfo struct {
	Index  int                `json:"index"`
	Record domain.DailyRecord `json:"record"`
	Icon   string             `json:"icon,omitempty"`

	Date          string `json:"date"`
	High          string `json:"high"`
	Low           string `json:"low"`
	Avg           string `json:"avg"`
	Precipitation string `json:"precipitation"`
	Humidity      string `json:"humidity"`
}

// Chart is one wheel instance: records and scales fixed at construction plus
// the mutable scope and hover state.
type Chart struct {
	opts     Options
	records  []domain.DailyRecord
	year     int
	radii    Radii
	scales   ScaleSet
	extremes Extremes
	days     []DayGeometry

	selector  ScopeSelector
	summary   Summary
	highlight int
}

// New normalizes rows and builds a chart from them.
func New(rows []domain.RawRow, opts Options) (*Chart, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	records, err := domain.Normalize(rows, opts.Fields, opts.Conditions)
	if err != nil {
		return nil, fmt.Errorf("normalize rows: %w", err)
	}
	return NewFromRecords(records, opts)
}

// NewFromRecords builds a chart from already normalized records, which must be
// ordered by date. The chart starts in year scope.
func NewFromRecords(records []domain.DailyRecord, opts Options) (*Chart, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("build chart: %w", domain.ErrEmptyDataset)
	}

	from, to, err := opts.humidityColors()
	if err != nil {
		return nil, fmt.Errorf("build chart: %w", err)
	}
	radii := NewRadii(opts.Width, opts.Height, opts.LabelBand)
	scales, err := BuildScales(records, radii, from, to)
	if err != nil {
		return nil, err
	}
	extremes, err := FindExtremes(records, scales.Angle)
	if err != nil {
		return nil, err
	}
	extremes.annotate(scales, radii, opts)

	c := &Chart{
		opts:      opts,
		records:   slices.Clone(records),
		year:      records[0].Date.Year(),
		radii:     radii,
		scales:    scales,
		extremes:  extremes,
		highlight: NoHighlight,
	}
	c.days = c.dayGeometry()

	summary, err := c.summarize(c.selector.Current())
	if err != nil {
		return nil, err
	}
	c.summary = summary
	return c, nil
}

// Year is the calendar year of the first record.
func (c *Chart) Year() int { return c.year }

// Records returns a copy of the normalized records.
func (c *Chart) Records() []domain.DailyRecord { return slices.Clone(c.records) }

func (c *Chart) Radii() Radii        { return c.radii }
func (c *Chart) Scales() ScaleSet    { return c.scales }
func (c *Chart) Extremes() Extremes  { return c.extremes }
func (c *Chart) Scope() Scope        { return c.selector.Current() }
func (c *Chart) Summary() Summary    { return c.summary }
func (c *Chart) Options() Options    { return c.opts }
func (c *Chart) Highlight() int      { return c.highlight }
func (c *Chart) Days() []DayGeometry { return slices.Clone(c.days) }

// AverageLineWidth is the stroke width of the average temperature marks.
func (c *Chart) AverageLineWidth() float64 {
	return (c.radii.Outer - c.radii.Inner) * 1.5 * math.Pi / float64(len(c.records))
}

// SelectMonth narrows the summary to month m and re-packs it.
// On error the chart is unchanged.
func (c *Chart) SelectMonth(m int) (Summary, error) {
	next, err := c.selector.peekMonth(m)
	if err != nil {
		return c.summary, err
	}
	return c.transition(next)
}

// ToggleYear widens the summary back to the whole year. It is a no-op that
// returns the current summary when the chart is already in year scope.
func (c *Chart) ToggleYear() (Summary, error) {
	next, ok := c.selector.peekYear()
	if !ok {
		return c.summary, nil
	}
	return c.transition(next)
}

// HoverMonth selects month m and returns the first day of that month as the focus date.
func (c *Chart) HoverMonth(m int) (Summary, time.Time, error) {
	summary, err := c.SelectMonth(m)
	if err != nil {
		return summary, time.Time{}, err
	}
	return summary, time.Date(c.year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC), nil
}

// HoverDay highlights day i and returns its display strings.
func (c *Chart) HoverDay(i int) (DayInfo, error) {
	if i < 0 || i >= len(c.records) {
		return DayInfo{}, fmt.Errorf("hover day %d: %w", i, ErrDayOutOfRange)
	}
	c.highlight = i
	return c.dayInfo(i), nil
}

// EndHover clears the day highlight.
func (c *Chart) EndHover() {
	c.highlight = NoHighlight
}

// transition re-packs for next and commits the scope only if packing succeeds.
func (c *Chart) transition(next Scope) (Summary, error) {
	summary, err := c.summarize(next)
	if err != nil {
		return c.summary, err
	}
	c.selector.current = next
	c.summary = summary
	return summary, nil
}

func (c *Chart) summarize(s Scope) (Summary, error) {
	subset := s.Filter(c.records)
	circles, err := Aggregate(subset, c.opts.Conditions, c.radii.PackSide(), c.opts.PackPadding)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize %s scope: %w", s.Mode, err)
	}
	return Summary{
		Scope:   s,
		Label:   s.Label(c.year, c.opts.Months),
		Records: len(subset),
		Circles: circles,
	}, nil
}

func (c *Chart) dayInfo(i int) DayInfo {
	r := c.records[i]
	info := DayInfo{
		Index:         i,
		Record:        r,
		Date:          r.DateStr,
		High:          fmt.Sprintf("High: %s%s", formatValue(r.High), c.opts.TemperatureUnit),
		Low:           fmt.Sprintf("Low: %s%s", formatValue(r.Low), c.opts.TemperatureUnit),
		Avg:           fmt.Sprintf("Avg: %s%s", formatValue(r.Avg), c.opts.TemperatureUnit),
		Precipitation: fmt.Sprintf("Prec.: %s%s", formatValue(r.Precipitation), c.opts.PrecipitationUnit),
		Humidity:      fmt.Sprintf("Humidity: %s%%", formatValue(r.Humidity)),
	}
	if style, ok := c.opts.Conditions.Style(r.Condition); ok {
		info.Icon = style.Icon
	}
	return info
}
