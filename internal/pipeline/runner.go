// file: internal/pipeline/runner.go
// version: 1.1.0
// guid: 8fddd5a7-2915-4d46-995c-57a59be5f3d7

// Package pipeline drives extract, fetch and rename over a list of files,
// one file at a time, stopping at the first error.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jdfalk/isbn-renamer/internal/logging"
	"github.com/jdfalk/isbn-renamer/internal/metrics"
	"github.com/jdfalk/isbn-renamer/internal/models"
)

// Extractor finds the identifier in a filename
type Extractor interface {
	Extract(filename string) models.Record
}

// Fetcher adds bibliographic fields to a record
type Fetcher interface {
	Fetch(ctx context.Context, rec models.Record) (models.Record, error)
}

// Renamer moves the file named by a fetched record
type Renamer interface {
	Rename(rec models.Record, backup bool) (models.Record, error)
	DryRun() bool
}

// Progress is advanced once per finished file
type Progress interface {
	Add(n int) error
	Finish() error
}

// Options configures a Runner
type Options struct {
	Backup   bool
	Logger   *slog.Logger
	Progress Progress
}

// Runner processes files strictly in input order
type Runner struct {
	extractor Extractor
	fetcher   Fetcher
	renamer   Renamer
	opts      Options
	stats     RunStats
}

// NewRunner wires the three steps together
func NewRunner(extractor Extractor, fetcher Fetcher, renamer Renamer, opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Runner{
		extractor: extractor,
		fetcher:   fetcher,
		renamer:   renamer,
		opts:      opts,
	}
}

// Stats returns the counters of the last Run
func (r *Runner) Stats() RunStats {
	return r.stats
}

// Run processes files in order. The first error aborts the batch: files
// already renamed stay renamed and the rest are not touched. The records
// finished before the failure are returned alongside the error.
func (r *Runner) Run(ctx context.Context, files []string) ([]models.Record, error) {
	r.stats = RunStats{Total: len(files)}
	records := make([]models.Record, 0, len(files))
	log := r.opts.Logger
	if r.opts.Progress != nil {
		defer func() { _ = r.opts.Progress.Finish() }()
	}

	for i, filename := range files {
		r.stats.Current = i + 1
		if err := ctx.Err(); err != nil {
			return records, fmt.Errorf("interrupted before %s: %w", filename, err)
		}

		rec, err := r.Process(ctx, filename)
		if err != nil {
			r.stats.Failed++
			metrics.IncFile(metrics.ResultFailed)
			return records, fmt.Errorf("%s: %w", filename, err)
		}
		records = append(records, rec)
		r.advance()
	}

	log.Info("batch complete",
		"files", r.stats.Total,
		"renamed", r.stats.Renamed,
		"planned", r.stats.Planned,
		"skipped", r.stats.Skipped)
	return records, nil
}

// Process runs one file through extract, fetch and rename. A file without an
// identifier is passed through untouched.
func (r *Runner) Process(ctx context.Context, filename string) (models.Record, error) {
	log := r.opts.Logger.With("file", filename)

	rec := r.extractor.Extract(filename)
	if !rec.HasISBN() {
		log.Info("no isbn in file name, skipping")
		r.stats.Skipped++
		metrics.IncFile(metrics.ResultSkipped)
		return rec, nil
	}
	log.Debug("isbn extracted", "isbn", rec.ISBNValue())

	rec, err := r.fetcher.Fetch(ctx, rec)
	if err != nil {
		return rec, err
	}
	log.Debug("metadata fetched", "title", deref(rec.Title), "publisher", deref(rec.Publisher), "year", deref(rec.Year))

	rec, err = r.renamer.Rename(rec, r.opts.Backup)
	if err != nil {
		return rec, err
	}

	if r.renamer.DryRun() {
		r.stats.Planned++
		metrics.IncFile(metrics.ResultPlanned)
		log.Info("rename planned", "destination", rec.Rename)
	} else {
		r.stats.Renamed++
		metrics.IncFile(metrics.ResultRenamed)
		log.Info("renamed", "destination", rec.Rename, "backup", r.opts.Backup)
	}
	return rec, nil
}

func (r *Runner) advance() {
	if r.opts.Progress != nil {
		_ = r.opts.Progress.Add(1)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
