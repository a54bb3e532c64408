package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nepali-holidays/nepcal/internal/calendar"
	"github.com/nepali-holidays/nepcal/internal/config"
	"github.com/nepali-holidays/nepcal/internal/holiday"
	"github.com/nepali-holidays/nepcal/internal/logger"
	"github.com/nepali-holidays/nepcal/internal/scraper"
	"github.com/nepali-holidays/nepcal/internal/storage"
	"github.com/nepali-holidays/nepcal/internal/wikitable"
)

// Stage names a step of the run
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageExtract Stage = "extract"
	StageBuild   Stage = "build"
	StageWrite   Stage = "write"
)

// StageError wraps the failure of a stage
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// SkippedRow describes a row that produced no event
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
	Raw    string `json:"raw,omitempty"`
}

// Report summarizes a successful run
type Report struct {
	OutputPath string         `json:"output_path"`
	SourceURL  string         `json:"source_url"`
	Rows       int            `json:"rows"`
	Events     int            `json:"events"`
	Skipped    []SkippedRow   `json:"skipped,omitempty"`
	SkipCounts map[string]int `json:"skip_counts,omitempty"`
	Duration   time.Duration  `json:"duration"`
}

type options struct {
	parser  holiday.DateParser
	now     func() time.Time
	client  *http.Client
	metrics *logger.Metrics
}

// Option customizes a run
type Option func(*options)

// WithDateParser replaces the lenient date parser
func WithDateParser(p holiday.DateParser) Option {
	return func(o *options) {
		o.parser = p
	}
}

// WithClock fixes the clock used for DTSTAMP and for dates without a year
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithHTTPClient replaces the HTTP client of the fetcher
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithMetrics records counters and timings into m instead of the default tracker
func WithMetrics(m *logger.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Run executes the conversion described by cfg
func Run(ctx context.Context, cfg *config.Config, opts ...Option) (*Report, error) {
	o := options{
		now:     time.Now,
		metrics: logger.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.parser == nil {
		o.parser = &holiday.LenientParser{Now: o.now}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	started := o.now()
	report := &Report{
		OutputPath: cfg.Output.Path,
		SourceURL:  cfg.Source.URL,
		SkipCounts: make(map[string]int),
	}

	store, err := storage.New(cfg.Output.Path)
	if err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}
	report.OutputPath = store.Path()

	// fetch
	stageStart := time.Now()
	page, err := scraper.New(cfg.Source).WithClient(o.client).Fetch(ctx)
	o.metrics.RecordTiming("stage.fetch", time.Since(stageStart))
	if err != nil {
		return nil, &StageError{Stage: StageFetch, Err: err}
	}

	// extract
	stageStart = time.Now()
	rows, err := extract(page, cfg.Source.TableClass)
	o.metrics.RecordTiming("stage.extract", time.Since(stageStart))
	if err != nil {
		return nil, &StageError{Stage: StageExtract, Err: err}
	}
	report.Rows = len(rows)
	o.metrics.AddCounter("rows.total", int64(len(rows)))

	// normalize
	holidays, skipped := holiday.NewNormalizer(o.parser).NormalizeAll(rows)
	for _, res := range skipped {
		reason := res.Skip.String()
		logger.Warn("skipping row", logger.Fields{
			"row":    res.Row,
			"reason": reason,
			"raw":    res.Raw,
		})
		o.metrics.IncrCounter("rows.skipped." + reason)
		report.SkipCounts[reason]++
		report.Skipped = append(report.Skipped, SkippedRow{
			Row:    res.Row,
			Reason: reason,
			Raw:    res.Raw,
		})
	}

	// build
	cal := calendar.Build(calendar.MetaFromConfig(cfg.Calendar), holidays, o.now())
	data, err := calendar.Encode(cal)
	if err != nil {
		return nil, &StageError{Stage: StageBuild, Err: err}
	}
	report.Events = len(holidays)

	// write
	if err := store.WriteCalendar(data); err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}
	o.metrics.AddCounter("events.written", int64(len(holidays)))

	report.Duration = o.now().Sub(started)

	logger.Info("calendar written", logger.Fields{
		"path":    report.OutputPath,
		"rows":    report.Rows,
		"events":  report.Events,
		"skipped": len(report.Skipped),
	})

	return report, nil
}

func extract(page, class string) ([]holiday.RawRow, error) {
	if class == "" || class == wikitable.DefaultClass {
		return wikitable.Extract(page)
	}
	return wikitable.ExtractClass(strings.NewReader(page), class)
}
