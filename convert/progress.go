package convert

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/gpxport/gpxport/logger"
)

// Emitter receives progress updates during a conversion run. The converter
// emits through this interface so terminal output and machine-readable
// event streams share one code path.
//
// Implementations:
//   - CLIEmitter: pretty terminal output via pterm
//   - JSONEmitter: newline-delimited JSON events on stdout
//   - NopEmitter: silence, for library callers and tests
type Emitter interface {
	// EmitStage announces the start of a processing stage.
	EmitStage(stage string, message string)

	// EmitActivity announces one activity being converted.
	EmitActivity(index, total int, source, dest string)

	// EmitComplete announces the run summary.
	EmitComplete(result *Result)

	// EmitError announces a per-activity or run-level error.
	EmitError(stage string, err error)
}

// CLIEmitter prints progress to the terminal.
type CLIEmitter struct {
	verbosity int
}

// NewCLIEmitter creates a terminal progress emitter.
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

// showProgress gates stage and per-activity lines on the -v count.
func (e *CLIEmitter) showProgress() bool {
	return logger.ShouldOutput(e.verbosity, logger.OutputProgress)
}

func (e *CLIEmitter) EmitStage(stage string, message string) {
	if !e.showProgress() {
		return
	}
	pterm.Info.Printfln("%s: %s", stage, message)
}

func (e *CLIEmitter) EmitActivity(index, total int, source, dest string) {
	if !e.showProgress() {
		return
	}
	pterm.Printfln("  [%d/%d] %s -> %s", index, total, source, dest)
}

func (e *CLIEmitter) EmitComplete(result *Result) {
	pterm.Success.Printfln("Converted %d of %d activities (filtered %d, skipped %d, failed %d, no track file %d) in %s",
		result.Converted, result.Total, result.Filtered, result.Skipped, result.Failed, result.NoFile,
		result.Elapsed().Round(time.Millisecond))
}

func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Error.Printfln("%s: %v", stage, err)
}

// JSONEmitter writes newline-delimited progress events to stdout, each
// stamped with the run ID so interleaved runs stay distinguishable.
type JSONEmitter struct {
	encoder *json.Encoder
	runID   string
}

// NewJSONEmitter creates a JSON progress emitter. The run ID is bound by
// the converter once the run starts.
func NewJSONEmitter() *JSONEmitter {
	return &JSONEmitter{encoder: json.NewEncoder(os.Stdout)}
}

// BindRun stamps subsequent events with the run ID, unless one was already
// bound.
func (e *JSONEmitter) BindRun(runID string) {
	if e.runID == "" {
		e.runID = runID
	}
}

// ProgressEvent is one emitted JSON event.
type ProgressEvent struct {
	Type      string                 `json:"type"` // "stage", "activity", "complete", "error"
	RunID     string                 `json:"run_id"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e *JSONEmitter) emit(eventType string, data map[string]interface{}) {
	e.encoder.Encode(ProgressEvent{
		Type:      eventType,
		RunID:     e.runID,
		Timestamp: time.Now(),
		Data:      data,
	})
}

func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]interface{}{"stage": stage, "message": message})
}

func (e *JSONEmitter) EmitActivity(index, total int, source, dest string) {
	e.emit("activity", map[string]interface{}{
		"index":  index,
		"total":  total,
		"source": source,
		"dest":   dest,
	})
}

func (e *JSONEmitter) EmitComplete(result *Result) {
	e.emit("complete", map[string]interface{}{
		"total":     result.Total,
		"converted": result.Converted,
		"filtered":  result.Filtered,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
		"no_file":   result.NoFile,
		"elapsed":   result.Elapsed().Round(time.Millisecond).String(),
	})
}

func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{"stage": stage, "error": err.Error()})
}

// NopEmitter discards all progress.
type NopEmitter struct{}

func (NopEmitter) EmitStage(string, string)              {}
func (NopEmitter) EmitActivity(int, int, string, string) {}
func (NopEmitter) EmitComplete(*Result)                  {}
func (NopEmitter) EmitError(string, error)               {}
