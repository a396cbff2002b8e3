package convert

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/gpxport/gpxport/errors"
	"github.com/gpxport/gpxport/fitfile"
	"github.com/gpxport/gpxport/internal/scratch"
	"github.com/gpxport/gpxport/track"
)

// format is the closed state set of the dispatcher. Dispatch is keyed on
// file suffix only; file contents are never inspected here.
type format int

const (
	formatUnrecognized format = iota
	formatGzip                // compression layer wrapping a terminal format
	formatFIT                 // binary track: transform to TCX, then convert
	formatTCX                 // raw XML track: normalize lines, then convert
	formatGPX                 // already normalized: byte-for-byte copy
)

func formatOf(path string) format {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".gz"):
		return formatGzip
	case strings.HasSuffix(name, ".fit"):
		return formatFIT
	case strings.HasSuffix(name, ".tcx"):
		return formatTCX
	case strings.HasSuffix(name, ".gpx"):
		return formatGPX
	default:
		return formatUnrecognized
	}
}

// dispatch resolves src down to a terminal format and writes the converted
// document to dest. Compression layers are peeled iteratively, one scratch
// file per layer, so nesting depth is bounded only by disk space, never by
// the call stack. All scratch files are released before return, innermost
// first.
//
// An unrecognized suffix returns ErrUnrecognizedFormat; the caller skips
// the activity without failing the run.
func (c *Converter) dispatch(src, dest string) error {
	var layers []*scratch.File
	defer func() {
		for i := len(layers) - 1; i >= 0; i-- {
			layers[i].Release()
		}
	}()

	path := src
	for {
		switch formatOf(path) {
		case formatGzip:
			sf, err := gunzip(path)
			if err != nil {
				return err
			}
			layers = append(layers, sf)
			path = sf.Path()
			c.log.Debugw("Peeled compression layer", "file", path, "depth", len(layers))

		case formatFIT:
			return c.convertFIT(path, dest)

		case formatTCX:
			return c.convertTCX(path, dest)

		case formatGPX:
			return copyFile(path, dest)

		default:
			return errors.Wrapf(errors.ErrUnrecognizedFormat, "%s", filepath.Base(src))
		}
	}
}

// gunzip decompresses one layer into a scratch file that keeps the full
// inner name, so the next dispatch iteration sees the wrapped format even
// when compression layers are nested.
func gunzip(path string) (*scratch.File, error) {
	base := filepath.Base(path)
	inner := "-" + base[:len(base)-len(".gz")]

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open compressed file %s", path)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read gzip stream %s", path)
	}
	defer zr.Close()

	sf, err := scratch.Capture(zr, inner)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decompress %s", path)
	}
	return sf, nil
}

// convertFIT transforms a binary track into the intermediate document and
// hands that to the output converter.
func (c *Converter) convertFIT(src, dest string) error {
	activity, err := fitfile.Decode(src)
	if err != nil {
		return err
	}
	doc, err := track.FromFIT(activity)
	if err != nil {
		return err
	}
	return writeGPXFile(dest, track.TCXToGPX(doc))
}

// convertTCX normalizes the raw XML track into a scratch file first: some
// exporters emit indentation and stray whitespace the converter chokes on,
// so every line is stripped and the file ends in exactly one newline.
func (c *Converter) convertTCX(src, dest string) error {
	normalized, err := normalizeLines(src)
	if err != nil {
		return err
	}
	defer normalized.Release()

	doc, err := track.ParseTCX(normalized.Path())
	if err != nil {
		return err
	}
	return writeGPXFile(dest, track.TCXToGPX(doc))
}

func normalizeLines(path string) (*scratch.File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open TCX file %s", path)
	}
	defer in.Close()

	var out strings.Builder
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		out.WriteString(strings.TrimSpace(scanner.Text()))
		out.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to normalize TCX file %s", path)
	}

	return scratch.Capture(strings.NewReader(out.String()), ".tcx")
}

func writeGPXFile(dest string, doc *track.GPX) error {
	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "failed to create output file %s", dest)
	}
	if err := track.WriteGPX(f, doc); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "failed to finish output file %s", dest)
}

// copyFile copies an already-normalized track byte for byte.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "failed to open track file %s", src)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "failed to create output file %s", dest)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "failed to copy track file %s", src)
	}
	return errors.Wrapf(out.Close(), "failed to finish output file %s", dest)
}
