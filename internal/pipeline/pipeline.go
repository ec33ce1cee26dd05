package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/observability"
	"github.com/couchcryptid/weather-wheel/internal/wheel"
)

// RowExtractor reads the raw daily rows of a dataset.
type RowExtractor interface {
	ExtractRows(ctx context.Context) ([]domain.RawRow, error)
}

// FrameLoader delivers chart frames to a renderer. Implementations must not
// call back into the Pipeline that invoked them.
type FrameLoader interface {
	LoadFrame(ctx context.Context, frame wheel.Frame) error
}

// Pipeline owns one chart and applies interaction events to it one at a time.
// After every event that changes the chart a fresh frame is fanned out to the loaders.
// Frames are snapshotted under the chart lock and delivered in event order
// outside it, so a slow loader never blocks reads or later state changes.
type Pipeline struct {
	mu      sync.Mutex
	chart   *wheel.Chart
	tail    chan struct{} // closed once the last queued frame has been handed to the loaders
	loaders []FrameLoader
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Pipeline around chart.
func New(chart *wheel.Chart, loaders []FrameLoader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	tail := make(chan struct{})
	close(tail)
	return &Pipeline{
		chart:   chart,
		tail:    tail,
		loaders: loaders,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once the initial frame has been delivered.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("initial frame not published yet")
	}
	return nil
}

// Run publishes the initial frame, retrying with backoff until every loader
// accepts it, then blocks until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "loaders", len(p.loaders), "year", p.chart.Year())
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		p.mu.Lock()
		frame, prev, done := p.enqueue()
		p.mu.Unlock()
		err := p.deliver(ctx, frame, prev, done)
		if err == nil {
			break
		}
		p.logger.Error("initial frame publish failed", "error", err)
		if !backoffOrStop(ctx, &backoff, maxBackoff) {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
	}
	p.ready.Store(true)

	<-ctx.Done()
	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// Frame returns the current chart frame.
func (p *Pipeline) Frame() wheel.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chart.Frame()
}

// Summary returns the current scope summary.
func (p *Pipeline) Summary() wheel.Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chart.Summary()
}

// SelectMonth narrows the summary to month m.
func (p *Pipeline) SelectMonth(ctx context.Context, m int) (wheel.Summary, error) {
	var s wheel.Summary
	err := p.dispatch(ctx, "select_month", func() (bool, error) {
		start := time.Now()
		var err error
		if s, err = p.chart.SelectMonth(m); err != nil {
			return false, err
		}
		p.observeTransition(start, s)
		return true, nil
	})
	return s, err
}

// ToggleYear widens the summary to the whole year. Nothing is published when
// the chart is already in year scope.
func (p *Pipeline) ToggleYear(ctx context.Context) (wheel.Summary, error) {
	var s wheel.Summary
	err := p.dispatch(ctx, "toggle_year", func() (bool, error) {
		if p.chart.Scope().Mode == wheel.ModeYear {
			s = p.chart.Summary()
			return false, nil
		}
		start := time.Now()
		var err error
		if s, err = p.chart.ToggleYear(); err != nil {
			return false, err
		}
		p.observeTransition(start, s)
		return true, nil
	})
	return s, err
}

// HoverMonth selects month m and returns the first day of that month.
func (p *Pipeline) HoverMonth(ctx context.Context, m int) (wheel.Summary, time.Time, error) {
	var (
		s     wheel.Summary
		focus time.Time
	)
	err := p.dispatch(ctx, "hover_month", func() (bool, error) {
		start := time.Now()
		var err error
		if s, focus, err = p.chart.HoverMonth(m); err != nil {
			return false, err
		}
		p.observeTransition(start, s)
		return true, nil
	})
	return s, focus, err
}

// HoverDay highlights day i.
func (p *Pipeline) HoverDay(ctx context.Context, i int) (wheel.DayInfo, error) {
	var info wheel.DayInfo
	err := p.dispatch(ctx, "hover_day", func() (bool, error) {
		var err error
		info, err = p.chart.HoverDay(i)
		return err == nil, err
	})
	return info, err
}

// EndHover clears the day highlight.
func (p *Pipeline) EndHover(ctx context.Context) {
	_ = p.dispatch(ctx, "hover_end", func() (bool, error) {
		changed := p.chart.Highlight() != wheel.NoHighlight
		p.chart.EndHover()
		return changed, nil
	})
}

// dispatch runs fn under the pipeline lock and publishes a frame when fn reports
// a change. Publication failures are logged and counted, never returned.
func (p *Pipeline) dispatch(ctx context.Context, event string, fn func() (bool, error)) error {
	p.mu.Lock()
	changed, err := fn()
	if err != nil {
		p.mu.Unlock()
		p.metrics.Events.WithLabelValues(event, "error").Inc()
		p.logger.Debug("event rejected", "event", event, "error", err)
		return err
	}
	p.metrics.Events.WithLabelValues(event, "ok").Inc()

	if !changed || len(p.loaders) == 0 {
		p.mu.Unlock()
		return nil
	}
	frame, prev, done := p.enqueue()
	p.mu.Unlock()

	if err := p.deliver(ctx, frame, prev, done); err != nil {
		p.logger.Warn("frame publish failed", "event", event, "error", err)
	}
	return nil
}

// enqueue snapshots the chart and reserves the next delivery slot. prev is
// closed when every earlier frame has been delivered; the caller must close
// done once its own frame is. Callers hold p.mu.
func (p *Pipeline) enqueue() (frame wheel.Frame, prev <-chan struct{}, done chan struct{}) {
	prev = p.tail
	done = make(chan struct{})
	p.tail = done
	return p.chart.Frame(), prev, done
}

// deliver waits for the frames queued before this one, then publishes it.
// A cancelled wait gives up the frame but keeps the slot order intact.
func (p *Pipeline) deliver(ctx context.Context, frame wheel.Frame, prev <-chan struct{}, done chan struct{}) error {
	select {
	case <-prev:
	case <-ctx.Done():
		go func() {
			<-prev
			close(done)
		}()
		return ctx.Err()
	}
	defer close(done)
	return p.publish(ctx, frame)
}

// publish sends frame to every loader.
func (p *Pipeline) publish(ctx context.Context, frame wheel.Frame) error {
	if len(p.loaders) == 0 {
		return nil
	}
	var errs []error
	for _, l := range p.loaders {
		if err := l.LoadFrame(ctx, frame); err != nil {
			p.metrics.FrameErrors.Inc()
			errs = append(errs, err)
			continue
		}
		p.metrics.FramesPublished.Inc()
	}
	return errors.Join(errs...)
}

func (p *Pipeline) observeTransition(start time.Time, s wheel.Summary) {
	p.metrics.PackDuration.Observe(time.Since(start).Seconds())
	p.metrics.ScopeTransitions.WithLabelValues(s.Scope.Mode.String()).Inc()
	p.metrics.PackedCircles.Set(float64(len(s.Circles)))
	p.logger.Info("scope changed",
		"mode", s.Scope.Mode.String(),
		"label", s.Label,
		"records", s.Records,
		"circles", len(s.Circles),
	)
}

// backoffOrStop sleeps with the current backoff and advances it.
// Returns false if the context was cancelled.
func backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
