// Command genmock writes a deterministic synthetic year of daily weather in
// the Visual Crossing CSV layout. It builds a chart from the generated rows
// with the real wheel package, so a fixture that would not render is never
// written.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -year 2021 \
//	  -out data/mock/wheel_2021.csv \
//	  -frame-out data/mock/wheel_2021_frame.json
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/wheel"
	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
)

var header = []string{
	"Address",
	"Date time",
	"Minimum Temperature",
	"Maximum Temperature",
	"Temperature",
	"Precipitation",
	"Relative Humidity",
	"Conditions",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	year := flag.Int("year", 2021, "calendar year to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	out := flag.String("out", "", "output path for the CSV fixture")
	frameOut := flag.String("frame-out", "", "optional output path for the year-scope frame JSON")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	lines := generate(*year, *seed)

	// Fixed clock for a reproducible generated_at in the frame fixture.
	wheel.SetClock(clockwork.NewFakeClockAt(
		time.Date(*year+1, time.January, 1, 6, 0, 0, 0, time.UTC),
	))
	defer wheel.SetClock(nil)

	chart, err := wheel.New(toRows(lines), wheel.DefaultOptions())
	if err != nil {
		return fmt.Errorf("generated data does not build a chart: %w", err)
	}

	if err := writeCSV(*out, lines); err != nil {
		return fmt.Errorf("writing CSV fixture: %w", err)
	}
	log.Printf("wrote CSV fixture: %s (%d days)", *out, len(lines))

	if *frameOut != "" {
		if err := writeJSON(*frameOut, chart.Frame()); err != nil {
			return fmt.Errorf("writing frame fixture: %w", err)
		}
		log.Printf("wrote frame fixture: %s", *frameOut)
	}

	printStats(chart)
	return nil
}

// generate produces one CSV line per day of year. Temperatures follow a
// seasonal cosine with noise; the coldest point is mid-January.
func generate(year int, seed uint64) [][]string {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	days := end.Sub(start).Hours() / 24

	var lines [][]string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		season := -math.Cos(2 * math.Pi * float64(d.YearDay()-15) / days)
		avg := 48 + 30*season + rng.NormFloat64()*4
		spread := 14 + rng.Float64()*8
		low := avg - spread/2
		high := avg + spread/2
		humidity := math.Max(20, math.Min(100, 65+rng.NormFloat64()*12))

		precip := 0.0
		if rng.Float64() < 0.3 {
			precip = rng.ExpFloat64() * 0.25
		}

		lines = append(lines, []string{
			"Minneapolis, MN",
			d.Format("01/02/2006"),
			fmtFloat(low, 1),
			fmtFloat(high, 1),
			fmtFloat(avg, 1),
			fmtFloat(precip, 2),
			fmtFloat(humidity, 2),
			condition(rng, precip, avg),
		})
	}
	return lines
}

func condition(rng *rand.Rand, precip, avg float64) string {
	if precip >= 0.005 {
		if avg < 32 {
			return "Snow, Overcast"
		}
		return "Rain, Partially cloudy"
	}
	switch p := rng.Float64(); {
	case p < 0.40:
		return "Clear"
	case p < 0.75:
		return "Partially cloudy"
	case p < 0.97:
		return "Overcast"
	default:
		// Not in the condition table; exercises the unclassified path.
		return "Fog"
	}
}

func fmtFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func toRows(lines [][]string) []domain.RawRow {
	rows := make([]domain.RawRow, len(lines))
	for i, line := range lines {
		row := make(domain.RawRow, len(header))
		for j, h := range header {
			row[h] = line[j]
		}
		rows[i] = row
	}
	return rows
}

func writeCSV(path string, lines [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(lines); err != nil {
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type conditionCount struct {
	label string
	count int
}

func printStats(chart *wheel.Chart) {
	records := chart.Records()
	counts := map[string]int{}
	for _, r := range records {
		counts[r.ConditionLabel]++
	}
	cc := make([]conditionCount, 0, len(counts))
	for l, c := range counts {
		cc = append(cc, conditionCount{l, c})
	}
	sort.Slice(cc, func(i, j int) bool { return cc[i].count > cc[j].count })

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Year: %d, days: %d\n", chart.Year(), len(records))
	fmt.Print("Conditions: ")
	for _, c := range cc {
		fmt.Printf("%s=%d ", c.label, c.count)
	}
	fmt.Println()

	e := chart.Extremes()
	fmt.Printf("Hottest:  %s\n", e.Hottest.Label)
	fmt.Printf("Coldest:  %s\n", e.Coldest.Label)
	fmt.Printf("Rainiest: %s\n", e.Rainiest.Label)

	s := chart.Scales()
	fmt.Printf("Temperature domain: [%g, %g]\n", s.Temperature.Domain[0], s.Temperature.Domain[1])
	fmt.Printf("Summary circles: %d\n", len(chart.Summary().Circles))
}
