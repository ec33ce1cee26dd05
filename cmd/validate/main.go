// Command validate builds a chart from a daily weather CSV and checks the
// geometric guarantees of the result: angular and radial scale bounds,
// extreme-day selection, summary packing for every scope, and scope labels.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -data data/mock/wheel_2021.csv \
//	  -style config/style.toml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/couchcryptid/weather-wheel/internal/adapter/csvsource"
	"github.com/couchcryptid/weather-wheel/internal/config"
	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/wheel"
)

// eps absorbs floating point error in geometric comparisons.
const eps = 1e-6

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataPath := flag.String("data", "", "path to a daily weather CSV export")
	stylePath := flag.String("style", "", "optional chart style TOML file")
	width := flag.Float64("width", 640, "chart width")
	height := flag.Float64("height", 640, "chart height")
	flag.Parse()

	if *dataPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg := &config.Config{StylePath: *stylePath, ChartWidth: *width, ChartHeight: *height}
	if code := run(*dataPath, cfg); code != 0 {
		os.Exit(code)
	}
}

func run(dataPath string, cfg *config.Config) int {
	fmt.Println("=== Weather Wheel Geometry Validation ===")
	fmt.Println()

	opts, err := cfg.ChartOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load style: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rows, err := csvsource.NewReader(dataPath, logger).ExtractRows(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	chart, err := wheel.New(rows, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: build chart: %v\n", err)
		return 1
	}
	records := chart.Records()

	// ── Run validation phases ──
	phases := []*phase{
		validateRecords(records),
		validateAngles(chart, records),
		validateRadii(chart, records),
		validateExtremes(chart, records),
		validatePacking(chart, records),
		validateScopeLabels(chart, opts),
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d rows, %d days, year %d\n", len(rows), len(records), chart.Year())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Records ──
// Dates ascend and month indices match the dates.

func validateRecords(records []domain.DailyRecord) *phase {
	p := &phase{name: "Phase 1: Records (order, months)"}
	for i, r := range records {
		if r.Month != int(r.Date.Month())-1 {
			p.errorf("day %d (%s): month %d does not match date", i, r.DateStr, r.Month)
		}
		if i > 0 && !r.Date.After(records[i-1].Date) {
			p.errorf("day %d (%s): not after previous day %s", i, r.DateStr, records[i-1].DateStr)
		}
	}
	return p
}

// ── Phase 2: Angles ──
// First day at 0, last day one slot short of a full turn, angles ascending.

func validateAngles(chart *wheel.Chart, records []domain.DailyRecord) *phase {
	p := &phase{name: "Phase 2: Angular scale"}
	s := chart.Scales()
	n := float64(len(records))

	if a := s.Angle.Map(records[0].Date); math.Abs(a) > eps {
		p.errorf("first day angle %g, want 0", a)
	}
	want := 2 * math.Pi * (1 - 1/n)
	if a := s.Angle.Map(records[len(records)-1].Date); math.Abs(a-want) > eps {
		p.errorf("last day angle %g, want %g", a, want)
	}
	days := chart.Days()
	for i := 1; i < len(days); i++ {
		if days[i].Angle < days[i-1].Angle {
			p.errorf("day %d angle %g below previous %g", i, days[i].Angle, days[i-1].Angle)
		}
	}
	return p
}

// ── Phase 3: Radii ──
// Every temperature lands between the inner and outer radius.

func validateRadii(chart *wheel.Chart, records []domain.DailyRecord) *phase {
	p := &phase{name: "Phase 3: Temperature and bubble radii"}
	r := chart.Radii()
	s := chart.Scales()

	if got := s.Temperature.Map(s.Temperature.Domain[1]); math.Abs(got-r.Outer) > eps {
		p.errorf("temperature domain max maps to %g, want outer radius %g", got, r.Outer)
	}
	for i, d := range chart.Days() {
		for _, v := range []float64{d.LowRadius, d.HighRadius, d.AvgRadius} {
			if v < r.Inner-eps || v > r.Outer+eps {
				p.errorf("day %d (%s): radius %g outside [%g, %g]", i, records[i].DateStr, v, r.Inner, r.Outer)
			}
		}
		if d.BubbleRadius < -eps || d.BubbleRadius > r.Bubble+eps {
			p.errorf("day %d (%s): bubble %g outside [0, %g]", i, records[i].DateStr, d.BubbleRadius, r.Bubble)
		}
	}
	return p
}

// ── Phase 4: Extremes ──
// Each mark holds the extreme value and is its first occurrence.

func validateExtremes(chart *wheel.Chart, records []domain.DailyRecord) *phase {
	p := &phase{name: "Phase 4: Extremes (first occurrence)"}
	e := chart.Extremes()

	check := func(name string, m wheel.Mark, value func(domain.DailyRecord) float64, better func(a, b float64) bool) {
		for i, r := range records {
			v := value(r)
			if better(v, m.Value) {
				p.errorf("%s: day %d (%s) has %g beyond mark %g", name, i, r.DateStr, v, m.Value)
			}
			if v == m.Value && i < m.Index {
				p.errorf("%s: day %d ties the mark but comes before index %d", name, i, m.Index)
			}
		}
	}
	greater := func(a, b float64) bool { return a > b }
	less := func(a, b float64) bool { return a < b }

	check("hottest", e.Hottest, func(r domain.DailyRecord) float64 { return r.High }, greater)
	check("coldest", e.Coldest, func(r domain.DailyRecord) float64 { return r.Low }, less)
	check("rainiest", e.Rainiest, func(r domain.DailyRecord) float64 { return r.Precipitation }, greater)
	return p
}

// ── Phase 5: Packing ──
// For the year and each month: counts add up, circles stay apart and inside.

func validatePacking(chart *wheel.Chart, records []domain.DailyRecord) *phase {
	p := &phase{name: "Phase 5: Summary packing (year + 12 months)"}
	side := chart.Radii().PackSide()
	padding := chart.Options().PackPadding

	checkSummary := func(s wheel.Summary) {
		subset := s.Scope.Filter(records)
		classified := 0
		for _, r := range subset {
			if r.Classified() {
				classified++
			}
		}
		total := 0
		for i, c := range s.Circles {
			total += c.Count
			if c.X-c.Radius < -eps || c.X+c.Radius > side+eps || c.Y-c.Radius < -eps || c.Y+c.Radius > side+eps {
				p.errorf("%s: circle %s outside the %gx%g square", s.Label, c.Label, side, side)
			}
			for _, o := range s.Circles[i+1:] {
				gap := math.Hypot(c.X-o.X, c.Y-o.Y) - c.Radius - o.Radius
				if gap < padding-eps {
					p.errorf("%s: circles %s and %s are %g apart, want >= %g", s.Label, c.Label, o.Label, gap, padding)
				}
			}
		}
		if total != classified {
			p.errorf("%s: circles count %d records, want %d", s.Label, total, classified)
		}
	}

	checkSummary(chart.Summary())
	for m := range 12 {
		s, err := chart.SelectMonth(m)
		if err != nil {
			p.errorf("select month %d: %v", m, err)
			continue
		}
		checkSummary(s)
	}
	if _, err := chart.ToggleYear(); err != nil {
		p.errorf("toggle year: %v", err)
	}
	return p
}

// ── Phase 6: Scope labels ──

func validateScopeLabels(chart *wheel.Chart, opts wheel.Options) *phase {
	p := &phase{name: "Phase 6: Scope labels"}

	for m, name := range opts.Months {
		s, err := chart.SelectMonth(m)
		if err != nil {
			p.errorf("select month %d: %v", m, err)
			continue
		}
		if s.Label != name {
			p.errorf("month %d: label %q, want %q", m, s.Label, name)
		}
	}
	s, err := chart.ToggleYear()
	if err != nil {
		p.errorf("toggle year: %v", err)
	}
	if want := strconv.Itoa(chart.Year()); s.Label != want {
		p.errorf("year label %q, want %q", s.Label, want)
	}
	if s, _ := chart.ToggleYear(); s.Scope.Mode != wheel.ModeYear {
		p.errorf("toggle in year scope left mode %s", s.Scope.Mode)
	}
	return p
}
