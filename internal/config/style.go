package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/wheel"
)

// styleFile is the layout of a chart style file:
//
//	[chart]
//	label_band = 15.0
//	months = ["Jan", "Feb", ...]
//
//	[chart.fields]
//	date = "Date time"
//
//	[[conditions]]
//	id = "Rain"
//	color = "#98c1d9"
//	icon = "rain.svg"
type styleFile struct {
	Chart      wheel.Options           `toml:"chart"`
	Conditions []domain.ConditionStyle `toml:"conditions"`
}

// ChartOptions returns the chart options for cfg: defaults, then the style file
// if one is configured, then the chart size from the environment.
func (c *Config) ChartOptions() (wheel.Options, error) {
	opts := wheel.DefaultOptions()
	if c.StylePath != "" {
		var err error
		if opts, err = LoadStyle(c.StylePath, opts); err != nil {
			return opts, err
		}
	}
	opts.Width = c.ChartWidth
	opts.Height = c.ChartHeight
	return opts, nil
}

// LoadStyle overlays the style file at path onto base. Keys absent from the file
// keep their value from base; unknown keys are an error.
func LoadStyle(path string, base wheel.Options) (wheel.Options, error) {
	sf := styleFile{Chart: base}
	md, err := toml.DecodeFile(path, &sf)
	if err != nil {
		return base, fmt.Errorf("decode style %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, fmt.Errorf("decode style %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	opts := sf.Chart
	if len(sf.Conditions) > 0 {
		opts.Conditions = domain.WithStyles(sf.Conditions)
	}
	return opts, nil
}
