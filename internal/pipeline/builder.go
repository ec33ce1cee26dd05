package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/weather-wheel/internal/observability"
	"github.com/couchcryptid/weather-wheel/internal/wheel"
)

// Builder extracts a dataset and builds the chart for it.
type Builder struct {
	extractor RowExtractor
	opts      wheel.Options
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewBuilder creates a Builder with the given source and chart options.
func NewBuilder(e RowExtractor, opts wheel.Options, logger *slog.Logger, metrics *observability.Metrics) *Builder {
	return &Builder{
		extractor: e,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// Build reads all rows and returns a chart in year scope.
func (b *Builder) Build(ctx context.Context) (*wheel.Chart, error) {
	rows, err := b.extractor.ExtractRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract rows: %w", err)
	}

	chart, err := wheel.New(rows, b.opts)
	if err != nil {
		return nil, fmt.Errorf("build chart: %w", err)
	}

	records := chart.Records()
	unclassified := 0
	for _, r := range records {
		if !r.Classified() {
			unclassified++
		}
	}
	summary := chart.Summary()

	b.metrics.RecordsLoaded.Set(float64(len(records)))
	b.metrics.UnclassifiedRecords.Set(float64(unclassified))
	b.metrics.PackedCircles.Set(float64(len(summary.Circles)))

	if unclassified > 0 {
		b.logger.Warn("records with unknown conditions are left out of the summary", "count", unclassified)
	}
	b.logger.Info("chart built",
		"year", chart.Year(),
		"records", len(records),
		"circles", len(summary.Circles),
	)
	return chart, nil
}
