// Package convert drives the per-activity conversion pipeline: manifest
// iteration, filtering, format dispatch, and output naming. Execution is
// single-threaded and fully sequential; one activity is resolved,
// converted, and written before the next begins.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gpxport/gpxport/errors"
	"github.com/gpxport/gpxport/export"
	"github.com/gpxport/gpxport/logger"
)

// Converter converts the qualifying activities of one export into GPX
// files under a destination directory.
type Converter struct {
	export     *export.Export
	destDir    string
	filter     export.Filter
	timeLayout string
	verbosity  int
	log        *zap.SugaredLogger
	emitter    Emitter
}

// Option configures a Converter.
type Option func(*Converter)

// WithFilter restricts the run to activities matching the filter.
func WithFilter(f export.Filter) Option {
	return func(c *Converter) { c.filter = f }
}

// WithTimeLayout overrides the manifest timestamp layout for exports from
// accounts in other languages.
func WithTimeLayout(layout string) Option {
	return func(c *Converter) { c.timeLayout = layout }
}

// WithEmitter sets the progress emitter.
func WithEmitter(e Emitter) Option {
	return func(c *Converter) { c.emitter = e }
}

// WithVerbosity sets the -v count, passed through to emitters.
func WithVerbosity(v int) Option {
	return func(c *Converter) { c.verbosity = v }
}

// WithLogger overrides the component logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Converter) { c.log = log }
}

// New creates a Converter writing into destDir, which is created on Run if
// absent.
func New(exp *export.Export, destDir string, opts ...Option) *Converter {
	c := &Converter{
		export:     exp,
		destDir:    destDir,
		timeLayout: DefaultTimeLayout,
		log:        logger.ComponentLogger("convert"),
		emitter:    NopEmitter{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the explicit accumulator of one conversion run, threaded
// through the loop and returned at the end.
type Result struct {
	RunID     string    `json:"run_id"`
	Export    string    `json:"export"`
	OutputDir string    `json:"output_dir"`
	Total     int       `json:"total"`
	Converted int       `json:"converted"`
	Filtered  int       `json:"filtered"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	NoFile    int       `json:"no_file"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Elapsed returns the wall-clock duration of the run.
func (r *Result) Elapsed() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Run converts every qualifying activity in manifest order. Per-activity
// failures are counted and logged but never abort the run; only a manifest
// load failure does. Cancellation via ctx stops the loop at the next
// iteration boundary, leaving already-written outputs in place.
func (c *Converter) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		Export:    c.export.Path(),
		OutputDir: c.destDir,
		StartTime: time.Now(),
	}

	if je, ok := c.emitter.(*JSONEmitter); ok {
		je.BindRun(result.RunID)
	}
	ctx = logger.WithRunID(ctx, result.RunID)

	manifest, err := c.export.Manifest()
	if err != nil {
		result.EndTime = time.Now()
		result.Message = fmt.Sprintf("Failed to load manifest: %v", err)
		return result, err
	}
	// The extracted manifest copy outlives the whole loop: freed here, not
	// in the loader.
	defer manifest.Release()

	result.Total = len(manifest.Activities)

	if err := os.MkdirAll(c.destDir, 0o755); err != nil {
		result.EndTime = time.Now()
		result.Message = fmt.Sprintf("Failed to create output directory: %v", err)
		return result, errors.Wrapf(err, "failed to create output directory %s", c.destDir)
	}

	c.emitter.EmitStage("convert", fmt.Sprintf("Converting %d activities from %s", result.Total, c.export.Path()))

	for _, activity := range manifest.Activities {
		if ctx.Err() != nil {
			result.EndTime = time.Now()
			result.Message = fmt.Sprintf("Canceled after %d of %d activities", activity.Index, result.Total)
			return result, ctx.Err()
		}
		c.convertOne(ctx, activity, result)
	}

	result.EndTime = time.Now()
	result.Success = true
	result.Message = fmt.Sprintf("Converted %d of %d activities", result.Converted, result.Total)
	c.emitter.EmitComplete(result)
	return result, nil
}

// convertOne handles a single activity and books the outcome on result.
// Every early return is one accumulator bump; nothing here is fatal.
func (c *Converter) convertOne(ctx context.Context, a export.Activity, result *Result) {
	ctx = logger.WithActivityID(ctx, a.ID)
	log := logger.ChildLogger(c.log, logger.FieldsFromContext(ctx)...)

	if a.Filename == "" {
		// Manually entered activities have no uploaded track file.
		log.Debugw("Skipping activity", logger.FieldError, errors.ErrNoTrackFile)
		result.NoFile++
		return
	}

	normalizedDate, err := ParseManifestDate(c.timeLayout, a.Date)
	if err != nil {
		log.Errorw("Failed to parse activity date",
			"date", a.Date, "layout", c.timeLayout, logger.FieldError, err)
		c.emitter.EmitError("parse-date", err)
		result.Failed++
		return
	}

	if !c.filter.Match(a, normalizedDate) {
		log.Debugw("Activity filtered out",
			logger.FieldActivityType, a.Type, "year", normalizedDate[:4], logger.FieldGear, a.Gear)
		result.Filtered++
		return
	}

	src, extracted, err := c.export.ResolveTrack(a)
	defer extracted.Release()
	if err != nil {
		log.Errorw("Failed to resolve track file",
			logger.FieldFile, a.Filename, logger.FieldError, err)
		c.emitter.EmitError("resolve", err)
		result.Failed++
		return
	}

	dest := filepath.Join(c.destDir, OutputName(a, normalizedDate))
	c.emitter.EmitActivity(a.Index+1, a.Total, a.Filename, dest)

	if err := c.dispatch(src, dest); err != nil {
		if errors.IsUnrecognizedFormatError(err) {
			log.Warnw("Unrecognized track file format, skipping", logger.FieldFile, a.Filename)
			result.Skipped++
			return
		}
		log.Errorw("Failed to convert activity",
			logger.FieldFile, a.Filename, logger.FieldError, err)
		c.emitter.EmitError("convert", err)
		result.Failed++
		return
	}

	result.Converted++
}
