package wheel

import (
	"fmt"
	"math"
	"time"

	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/scale"
)

const fullTurn = 2 * math.Pi

// niceCount is the tick count used when widening the temperature domain.
const niceCount = 10

// ScaleSet holds the five mappings of a chart. All of them are derived from the
// same record set and are only ever rebuilt together.
type ScaleSet struct {
	Angle         scale.Time       `json:"angle"`
	Temperature   scale.Radial     `json:"temperature"`
	Bubble        scale.Linear     `json:"bubble"`
	Humidity      scale.Linear     `json:"humidity"`
	HumidityColor scale.ColorScale `json:"humidity_color"`

	// DaySlot is the angular width of one day.
	DaySlot float64 `json:"day_slot"`
}

// BuildScales derives the chart mappings from records and radii.
func BuildScales(records []domain.DailyRecord, radii Radii, humidityFrom, humidityTo scale.Color) (ScaleSet, error) {
	n := len(records)
	if n == 0 {
		return ScaleSet{}, fmt.Errorf("build scales: %w", domain.ErrEmptyDataset)
	}

	lows := make([]float64, n)
	highs := make([]float64, n)
	precs := make([]float64, n)
	humis := make([]float64, n)
	for i, r := range records {
		lows[i] = r.Low
		highs[i] = r.High
		precs[i] = r.Precipitation
		humis[i] = r.Humidity
	}

	minLow, _, _ := scale.Extent(lows)
	_, maxHigh, _ := scale.Extent(highs)
	minPrec, maxPrec, _ := scale.Extent(precs)
	minHum, maxHum, _ := scale.Extent(humis)

	slot := fullTurn / float64(n)
	return ScaleSet{
		Angle: scale.NewTime(
			[2]time.Time{records[0].Date, records[n-1].Date},
			[2]float64{0, fullTurn * (1 - 1/float64(n))},
		),
		Temperature: scale.NewRadial(
			[2]float64{minLow, maxHigh},
			[2]float64{radii.Inner, radii.Outer},
		).Nice(niceCount),
		Bubble: scale.NewLinear(
			[2]float64{minPrec, maxPrec},
			[2]float64{0, radii.Bubble},
		),
		Humidity: scale.NewLinear(
			[2]float64{minHum, maxHum},
			[2]float64{radii.Outer, radii.Outer + radii.Bubble*0.75},
		),
		HumidityColor: scale.NewColorScale([2]float64{minHum, maxHum}, humidityFrom, humidityTo),
		DaySlot:       slot,
	}, nil
}

// Rotation converts an angle in radians to degrees measured from 12 o'clock.
func Rotation(angle float64) float64 {
	return angle*180/math.Pi - 180
}
