package wheel

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/scale"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrChartTooSmall is returned when the label band leaves no room between the inner and outer radius.
var ErrChartTooSmall = errors.New("chart too small for its label band")

// Options configure a chart. They are fixed for the lifetime of a Chart.
// Width and Height come from the environment, everything else may be set in a style file.
type Options struct {
	Width       float64 `toml:"-" validate:"gt=0"`
	Height      float64 `toml:"-" validate:"gt=0"`
	LabelBand   float64 `toml:"label_band" validate:"gte=0"`
	PackPadding float64 `toml:"pack_padding" validate:"gte=0"`

	Fields     domain.FieldMap       `toml:"fields"`
	Conditions domain.ConditionTable `toml:"-" validate:"len=5,dive"`
	Months     []string              `toml:"months" validate:"len=12,dive,required"`

	// Units are display labels only.
	TemperatureUnit   string `toml:"temperature_unit"`
	PrecipitationUnit string `toml:"precipitation_unit"`

	HumidityColors [2]string `toml:"humidity_colors" validate:"dive,hexcolor"`
}

// DefaultOptions returns a 640×640 chart with the default field map and condition table.
func DefaultOptions() Options {
	return Options{
		Width:       640,
		Height:      640,
		LabelBand:   15,
		PackPadding: 1,
		Fields:      domain.DefaultFieldMap(),
		Conditions:  domain.DefaultConditionTable(),
		Months: []string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		TemperatureUnit:   "°F",
		PrecipitationUnit: "in",
		HumidityColors:    [2]string{"#fefefe", "#dedede"},
	}
}

// Validate checks the options and that the resulting radii leave room for the wheel.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid chart options: %w", err)
	}
	r := NewRadii(o.Width, o.Height, o.LabelBand)
	if r.Outer <= r.Inner {
		return fmt.Errorf("invalid chart options: %w (outer %.2f <= inner %.2f)", ErrChartTooSmall, r.Outer, r.Inner)
	}
	return nil
}

func (o Options) humidityColors() (from, to scale.Color, err error) {
	if from, err = scale.ParseHex(o.HumidityColors[0]); err != nil {
		return from, to, err
	}
	to, err = scale.ParseHex(o.HumidityColors[1])
	return from, to, err
}
