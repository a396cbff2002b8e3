// Package scratch manages temporary files created during conversion.
//
// Every decompression, extraction, or normalization step in the pipeline
// produces a transient file. Pairing creation and removal in one type keeps
// cleanup on every exit path, including error paths, without unlink calls
// scattered through the dispatch loop.
package scratch

import (
	"io"
	"os"

	"github.com/gpxport/gpxport/logger"
)

// File is a temporary file whose removal is guaranteed by Release.
// Release is idempotent and never fails the caller: a file that cannot be
// deleted is logged and left behind rather than aborting the run.
type File struct {
	path     string
	released bool
}

// New creates an empty scratch file whose name ends in suffix, so that
// suffix-driven format dispatch keeps working on intermediate files.
func New(suffix string) (*File, error) {
	f, err := os.CreateTemp("", "gpxport-*"+suffix)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	return &File{path: f.Name()}, nil
}

// Capture creates a scratch file ending in suffix and fills it from r.
// The file is closed before return; on any error nothing is left behind.
func Capture(r io.Reader, suffix string) (*File, error) {
	f, err := os.CreateTemp("", "gpxport-*"+suffix)
	if err != nil {
		return nil, err
	}
	sf := &File{path: f.Name()}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		sf.Release()
		return nil, err
	}
	if err := f.Close(); err != nil {
		sf.Release()
		return nil, err
	}
	return sf, nil
}

// Path returns the location of the scratch file on disk.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Release deletes the scratch file. Safe to call on nil and safe to call
// more than once. Deletion failures are logged, never raised.
func (f *File) Release() {
	if f == nil || f.released {
		return
	}
	f.released = true
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to remove scratch file", "file", f.path, "error", err)
	}
}
