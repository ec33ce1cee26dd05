package wheel

import (
	"fmt"

	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/scale"
)

// Mark annotates one extreme day on the wheel.
type Mark struct {
	Index  int                `json:"index"`
	Record domain.DailyRecord `json:"record"`
	Value  float64            `json:"value"`

	// Angle is in radians, Rotation the same angle in degrees from 12 o'clock.
	Angle    float64 `json:"angle"`
	Rotation float64 `json:"rotation"`

	// ArcStart and ArcEnd bound the label arc, which spans a full turn.
	ArcStart float64 `json:"arc_start"`
	ArcEnd   float64 `json:"arc_end"`

	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

// Extremes are the hottest, coldest and rainiest days of the dataset.
type Extremes struct {
	Hottest  Mark `json:"hottest"`
	Coldest  Mark `json:"coldest"`
	Rainiest Mark `json:"rainiest"`
}

// FindExtremes scans records once. On ties the first record wins.
func FindExtremes(records []domain.DailyRecord, angle scale.Time) (Extremes, error) {
	if len(records) == 0 {
		return Extremes{}, fmt.Errorf("find extremes: %w", domain.ErrEmptyDataset)
	}

	hot, cold, wet := 0, 0, 0
	for i := 1; i < len(records); i++ {
		r := records[i]
		if r.High > records[hot].High {
			hot = i
		}
		if r.Low < records[cold].Low {
			cold = i
		}
		if r.Precipitation > records[wet].Precipitation {
			wet = i
		}
	}

	return Extremes{
		Hottest:  newMark(records, hot, records[hot].High, angle),
		Coldest:  newMark(records, cold, records[cold].Low, angle),
		Rainiest: newMark(records, wet, records[wet].Precipitation, angle),
	}, nil
}

func newMark(records []domain.DailyRecord, i int, v float64, angle scale.Time) Mark {
	a := angle.Map(records[i].Date)
	return Mark{
		Index:    i,
		Record:   records[i],
		Value:    v,
		Angle:    a,
		Rotation: Rotation(a),
		ArcStart: a,
		ArcEnd:   a + fullTurn,
	}
}

// annotate fills in radii and labels from the chart scales.
func (e *Extremes) annotate(scales ScaleSet, radii Radii, opts Options) {
	e.Hottest.Radius = scales.Temperature.Map(e.Hottest.Value)
	e.Hottest.Label = markLabel(e.Hottest, opts.TemperatureUnit)
	e.Coldest.Radius = scales.Temperature.Map(e.Coldest.Value)
	e.Coldest.Label = markLabel(e.Coldest, opts.TemperatureUnit)
	e.Rainiest.Radius = radii.Max - radii.Label
	e.Rainiest.Label = markLabel(e.Rainiest, opts.PrecipitationUnit)
}

func markLabel(m Mark, unit string) string {
	return fmt.Sprintf("%s - %s%s", m.Record.DateStr, formatValue(m.Value), unit)
}
