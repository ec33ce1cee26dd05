package wheel

import (
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/scale"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLabels = []string{"Clear", "Partially_cloudy", "Overcast", "Rain", "Snow", "Fog"}

// yearOfRecords returns one record per day of 2021. Every sixth day is unclassified.
func yearOfRecords() []domain.DailyRecord {
	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	table := domain.DefaultConditionTable()
	records := make([]domain.DailyRecord, 365)
	for i := range records {
		d := start.AddDate(0, 0, i)
		low := 30 + 20*math.Sin(float64(i)/365*2*math.Pi)
		label := testLabels[i%len(testLabels)]
		records[i] = domain.DailyRecord{
			DateStr:        d.Format("01/02/2006"),
			Date:           d,
			Month:          int(d.Month()) - 1,
			Low:            low,
			High:           low + 15,
			Avg:            low + 7.5,
			Precipitation:  float64(i%7) / 10,
			Humidity:       50 + float64(i%30),
			Condition:      table.Index(label),
			ConditionLabel: label,
		}
	}
	return records
}

func newTestChart(t *testing.T) *Chart {
	t.Helper()
	c, err := NewFromRecords(yearOfRecords(), DefaultOptions())
	require.NoError(t, err)
	return c
}

func TestNewRadii(t *testing.T) {
	r := NewRadii(640, 480, 15)

	assert.InDelta(t, 240, r.Max, 1e-9)
	assert.InDelta(t, 67.2, r.Inner, 1e-9)
	assert.InDelta(t, 28.8, r.Bubble, 1e-9)
	assert.InDelta(t, 240-57.6-15, r.Outer, 1e-9)
	assert.InDelta(t, 134.4, r.PackSide(), 1e-9)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
		errIs   error
	}{
		{name: "defaults", mutate: func(*Options) {}},
		{name: "zero width", mutate: func(o *Options) { o.Width = 0 }, wantErr: true},
		{name: "eleven months", mutate: func(o *Options) { o.Months = o.Months[:11] }, wantErr: true},
		{name: "bad humidity color", mutate: func(o *Options) { o.HumidityColors[0] = "grey" }, wantErr: true},
		{name: "missing field", mutate: func(o *Options) { o.Fields.Date = "" }, wantErr: true},
		{
			name:    "label band swallows wheel",
			mutate:  func(o *Options) { o.Width, o.Height = 40, 40 },
			wantErr: true,
			errIs:   ErrChartTooSmall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestBuildScales_AngleBounds(t *testing.T) {
	records := yearOfRecords()
	c := newTestChart(t)
	s := c.Scales()

	assert.InDelta(t, 0, s.Angle.Map(records[0].Date), 1e-12)
	assert.InDelta(t, 2*math.Pi*(1-1.0/365), s.Angle.Map(records[364].Date), 1e-9)
	assert.InDelta(t, 2*math.Pi/365, s.DaySlot, 1e-12)
}

func TestBuildScales_TemperatureCoversData(t *testing.T) {
	records := yearOfRecords()
	c := newTestChart(t)
	s, r := c.Scales(), c.Radii()

	for _, rec := range records {
		assert.GreaterOrEqual(t, s.Temperature.Map(rec.Low), r.Inner-1e-9)
		assert.LessOrEqual(t, s.Temperature.Map(rec.High), r.Outer+1e-9)
	}
	assert.InDelta(t, r.Inner, s.Temperature.Map(s.Temperature.Domain[0]), 1e-9)
	assert.InDelta(t, r.Outer, s.Temperature.Map(s.Temperature.Domain[1]), 1e-9)
	// Lows bottom out at 10 and highs peak just under 65.
	assert.Equal(t, [2]float64{10, 65}, s.Temperature.Domain)
}

func TestBuildScales_Idempotent(t *testing.T) {
	records := yearOfRecords()
	r := NewRadii(640, 640, 15)
	from, to := testColors(t)

	a, err := BuildScales(records, r, from, to)
	require.NoError(t, err)
	b, err := BuildScales(records, r, from, to)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(a, b))
}

func TestBuildScales_Empty(t *testing.T) {
	from, to := testColors(t)
	_, err := BuildScales(nil, NewRadii(640, 640, 15), from, to)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestBuildScales_BubbleAndHumidity(t *testing.T) {
	c := newTestChart(t)
	s, r := c.Scales(), c.Radii()

	assert.InDelta(t, 0, s.Bubble.Map(0), 1e-12)
	assert.InDelta(t, r.Bubble, s.Bubble.Map(0.6), 1e-9)
	assert.InDelta(t, r.Outer, s.Humidity.Map(50), 1e-9)
	assert.InDelta(t, r.Outer+0.75*r.Bubble, s.Humidity.Map(79), 1e-9)
	assert.Equal(t, "#fefefe", s.HumidityColor.Map(50).Hex())
	assert.Equal(t, "#dedede", s.HumidityColor.Map(79).Hex())
}

func TestFindExtremes_FirstOccurrenceWins(t *testing.T) {
	base := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.DailyRecord{
		{Date: base, DateStr: "03/01/2021", Low: 10, High: 50, Precipitation: 0.5},
		{Date: base.AddDate(0, 0, 1), DateStr: "03/02/2021", Low: 5, High: 60, Precipitation: 0.9},
		{Date: base.AddDate(0, 0, 2), DateStr: "03/03/2021", Low: 5, High: 60, Precipitation: 0.9},
		{Date: base.AddDate(0, 0, 3), DateStr: "03/04/2021", Low: 8, High: 55, Precipitation: 0.1},
	}
	r := NewRadii(640, 640, 15)
	from, to := testColors(t)
	s, err := BuildScales(records, r, from, to)
	require.NoError(t, err)

	e, err := FindExtremes(records, s.Angle)
	require.NoError(t, err)

	assert.Equal(t, 1, e.Hottest.Index)
	assert.Equal(t, 1, e.Coldest.Index)
	assert.Equal(t, 1, e.Rainiest.Index)
	assert.InDelta(t, 60, e.Hottest.Value, 0)
	assert.InDelta(t, e.Hottest.Angle+2*math.Pi, e.Hottest.ArcEnd, 1e-12)
	assert.InDelta(t, e.Hottest.Angle*180/math.Pi-180, e.Hottest.Rotation, 1e-9)
}

func TestFindExtremes_Empty(t *testing.T) {
	_, err := FindExtremes(nil, newTestChart(t).Scales().Angle)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestChart_ExtremeLabels(t *testing.T) {
	c := newTestChart(t)
	e := c.Extremes()

	assert.Equal(t, e.Hottest.Record.DateStr+" - "+formatValue(e.Hottest.Value)+"°F", e.Hottest.Label)
	assert.Equal(t, e.Rainiest.Record.DateStr+" - 0.6in", e.Rainiest.Label)
	assert.InDelta(t, c.Radii().Max-c.Radii().Label, e.Rainiest.Radius, 1e-12)
	// 0.6 first occurs on day 6.
	assert.Equal(t, 6, e.Rainiest.Index)
}

func TestAggregate(t *testing.T) {
	table := domain.DefaultConditionTable()
	records := []domain.DailyRecord{
		{Condition: domain.ConditionRain},
		{Condition: domain.ConditionClear},
		{Condition: domain.ConditionUnclassified},
		{Condition: domain.ConditionRain},
		{Condition: domain.ConditionRain},
		{Condition: domain.ConditionSnow},
	}

	circles, err := Aggregate(records, table, 100, 1)
	require.NoError(t, err)
	require.Len(t, circles, 3)

	assert.Equal(t, domain.ConditionRain, circles[0].Condition)
	assert.Equal(t, "Rain", circles[0].Label)
	assert.Equal(t, 3, circles[0].Count)
	assert.Equal(t, "#98c1d9", circles[0].Color)
	assert.Equal(t, "#7494a6", circles[0].Stroke)
	assert.Equal(t, domain.ConditionClear, circles[1].Condition)
	assert.Equal(t, 1, circles[1].Count)
	assert.Equal(t, domain.ConditionSnow, circles[2].Condition)

	ratio := circles[0].Radius * circles[0].Radius / 3
	assert.InDelta(t, ratio, circles[1].Radius*circles[1].Radius, 1e-6)
	assert.InDelta(t, ratio, circles[2].Radius*circles[2].Radius, 1e-6)
}

func TestAggregate_AllUnclassified(t *testing.T) {
	records := []domain.DailyRecord{
		{Condition: domain.ConditionUnclassified},
		{Condition: domain.ConditionUnclassified},
	}

	circles, err := Aggregate(records, domain.DefaultConditionTable(), 100, 1)
	require.NoError(t, err)
	assert.Empty(t, circles)
}

func TestScopeSelector(t *testing.T) {
	var s ScopeSelector
	assert.Equal(t, ModeYear, s.Current().Mode)

	assert.False(t, s.ToggleYear())
	assert.Equal(t, ModeYear, s.Current().Mode)

	require.NoError(t, s.SelectMonth(3))
	assert.Equal(t, Scope{Mode: ModeMonth, Month: 3}, s.Current())

	assert.True(t, s.ToggleYear())
	assert.Equal(t, Scope{Mode: ModeYear, Month: 3}, s.Current())

	assert.ErrorIs(t, s.SelectMonth(12), ErrInvalidMonth)
	assert.ErrorIs(t, s.SelectMonth(-1), ErrInvalidMonth)
	assert.Equal(t, ModeYear, s.Current().Mode)
}

func TestScope_Label(t *testing.T) {
	months := DefaultOptions().Months
	assert.Equal(t, "2021", Scope{Mode: ModeYear, Month: 4}.Label(2021, months))
	assert.Equal(t, "May", Scope{Mode: ModeMonth, Month: 4}.Label(2021, months))
}

func TestChart_SelectMonthThenToggleYear(t *testing.T) {
	c := newTestChart(t)
	assert.Equal(t, "2021", c.Summary().Label)
	assert.Equal(t, 365, c.Summary().Records)

	jan, err := c.SelectMonth(0)
	require.NoError(t, err)
	assert.Equal(t, "January", jan.Label)
	assert.Equal(t, 31, jan.Records)
	assert.Equal(t, Scope{Mode: ModeMonth, Month: 0}, c.Scope())

	classified := 0
	for _, r := range c.Records()[:31] {
		if r.Classified() {
			classified++
		}
	}
	total := 0
	for _, circle := range jan.Circles {
		total += circle.Count
	}
	assert.Equal(t, classified, total)

	year, err := c.ToggleYear()
	require.NoError(t, err)
	assert.Equal(t, "2021", year.Label)
	assert.Equal(t, ModeYear, c.Scope().Mode)
	assert.Len(t, year.Circles, 5)
}

func TestChart_ToggleYearWhenAlreadyYear(t *testing.T) {
	c := newTestChart(t)
	before := c.Summary()

	after, err := c.ToggleYear()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestChart_SelectMonthInvalidLeavesScope(t *testing.T) {
	c := newTestChart(t)
	_, err := c.SelectMonth(2)
	require.NoError(t, err)

	_, err = c.SelectMonth(13)
	require.ErrorIs(t, err, ErrInvalidMonth)
	assert.Equal(t, "March", c.Summary().Label)
	assert.Equal(t, Scope{Mode: ModeMonth, Month: 2}, c.Scope())
}

func TestChart_HoverDay(t *testing.T) {
	records := []domain.DailyRecord{{
		DateStr:        "01/01/2021",
		Date:           time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		Low:            28,
		High:           41.5,
		Avg:            34.2,
		Precipitation:  0.12,
		Humidity:       63.2,
		Condition:      domain.ConditionRain,
		ConditionLabel: "Rain",
	}}
	opts := DefaultOptions()
	opts.Conditions = domain.WithStyles([]domain.ConditionStyle{{ID: "Rain", Icon: "rain.svg"}})
	c, err := NewFromRecords(records, opts)
	require.NoError(t, err)

	info, err := c.HoverDay(0)
	require.NoError(t, err)
	assert.Equal(t, "01/01/2021", info.Date)
	assert.Equal(t, "High: 41.5°F", info.High)
	assert.Equal(t, "Low: 28°F", info.Low)
	assert.Equal(t, "Avg: 34.2°F", info.Avg)
	assert.Equal(t, "Prec.: 0.12in", info.Precipitation)
	assert.Equal(t, "Humidity: 63.2%", info.Humidity)
	assert.Equal(t, "rain.svg", info.Icon)
	assert.Equal(t, 0, c.Highlight())

	c.EndHover()
	assert.Equal(t, NoHighlight, c.Highlight())

	_, err = c.HoverDay(1)
	assert.ErrorIs(t, err, ErrDayOutOfRange)
}

func TestChart_HoverMonth(t *testing.T) {
	c := newTestChart(t)

	summary, focus, err := c.HoverMonth(6)
	require.NoError(t, err)
	assert.Equal(t, "July", summary.Label)
	assert.Equal(t, time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC), focus)
}

func TestChart_Frame(t *testing.T) {
	fixed := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	c := newTestChart(t)
	_, err := c.HoverDay(10)
	require.NoError(t, err)

	f := c.Frame()
	assert.Equal(t, fixed, f.GeneratedAt)
	assert.Equal(t, 2021, f.Year)
	assert.Equal(t, 10, f.Highlight)
	assert.Len(t, f.Days, 365)
	assert.Len(t, f.Months, 12)
	assert.LessOrEqual(t, len(f.Ticks), 5)
	assert.NotEmpty(t, f.Ticks)
	assert.InDelta(t, 0, f.Months[0].Angle, 1e-12)
	assert.InDelta(t, 2*math.Pi/12, f.Months[0].Span, 1e-12)
	assert.InDelta(t, (f.Radii.Outer-f.Radii.Inner)*1.5*math.Pi/365, f.AverageLineWidth, 1e-12)

	day := f.Days[5]
	assert.Equal(t, domain.ConditionUnclassified, day.Condition)
	assert.Empty(t, day.Color)
	assert.GreaterOrEqual(t, day.HighRadius, day.LowRadius)
	assert.Equal(t, "#98c1d9", f.Days[3].Color)
}

func TestNew_MalformedDate(t *testing.T) {
	rows := []domain.RawRow{{
		"Date time":           "not a date",
		"Minimum Temperature": 1.0,
		"Maximum Temperature": 2.0,
		"Temperature":         1.5,
		"Precipitation":       0.0,
		"Relative Humidity":   50.0,
		"Conditions":          "Clear",
	}}

	_, err := New(rows, DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrMalformedDate)
}

func TestNew_NonFiniteCellsStillEncode(t *testing.T) {
	rows := []domain.RawRow{
		{
			"Date time": "01/01/2021", "Minimum Temperature": "30", "Maximum Temperature": "Inf",
			"Temperature": "40", "Precipitation": "0.2", "Relative Humidity": "NaN", "Conditions": "Rain",
		},
		{
			"Date time": "01/02/2021", "Minimum Temperature": "28", "Maximum Temperature": "45",
			"Temperature": "36", "Precipitation": "-infinity", "Relative Humidity": "70", "Conditions": "Clear",
		},
	}

	c, err := New(rows, DefaultOptions())
	require.NoError(t, err)

	f := c.Frame()
	for _, d := range f.Days {
		for _, v := range []float64{d.LowRadius, d.HighRadius, d.AvgRadius, d.BubbleRadius, d.HumidityRadius} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "day %d has non-finite geometry", d.Index)
		}
	}

	_, err = json.Marshal(f)
	assert.NoError(t, err)
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil, DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func testColors(t *testing.T) (from, to scale.Color) {
	t.Helper()
	from, to, err := DefaultOptions().humidityColors()
	require.NoError(t, err)
	return from, to
}
