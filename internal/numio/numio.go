package numio

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/agbru/tancalc/internal/errors"
	"github.com/agbru/tancalc/internal/logging"
)

// Generate writes the integers 0..count-1 to path, one per line, replacing
// any existing file.
//
// Parameters:
//   - path: The file to create or truncate.
//   - count: How many integers to write. Must be non-negative.
//
// Returns:
//   - error: A ValidationError for a negative count, or an *IOError wrapping
//     the create, write, flush or close failure.
func Generate(path string, count int) (err error) {
	if count < 0 {
		return apperrors.ValidationError{Field: "count", Message: "must be non-negative, got " + strconv.Itoa(count)}
	}
	f, err := os.Create(path)
	if err != nil {
		return &apperrors.IOError{Op: "create", Path: path, Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &apperrors.IOError{Op: "close", Path: path, Cause: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	buf := make([]byte, 0, 24)
	for i := 0; i < count; i++ {
		buf = strconv.AppendInt(buf[:0], int64(i), 10)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return &apperrors.IOError{Op: "write", Path: path, Cause: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &apperrors.IOError{Op: "flush", Path: path, Cause: err}
	}
	return nil
}

// ReadSequence parses path as one floating-point value per line, in file
// order. It never fails: a missing file yields an empty sequence, and a read
// error or malformed line stops the read and returns the values parsed so
// far. Each of these conditions is logged as a warning.
func ReadSequence(path string, log logging.Logger) []float64 {
	values := []float64{}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("input file does not exist", logging.String("path", path))
		} else {
			log.Warn("could not open input file", logging.String("path", path), logging.Err(err))
		}
		return values
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		v, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			log.Warn("malformed line, stopping read",
				logging.String("path", path),
				logging.Int("line", line),
				logging.Int("parsed", len(values)),
				logging.Err(err))
			return values
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		log.Warn("error while reading input file",
			logging.String("path", path),
			logging.Int("parsed", len(values)),
			logging.Err(err))
	}
	return values
}

// WriteSequence writes each value's canonical text (see FormatCanonical) on
// its own line, replacing path. Failures are logged, not returned.
func WriteSequence(values []float64, path string, log logging.Logger) {
	if err := writeSequence(values, path); err != nil {
		log.Warn("could not write results", logging.String("path", path), logging.Int("values", len(values)), logging.Err(err))
	}
}

func writeSequence(values []float64, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &apperrors.IOError{Op: "create", Path: path, Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &apperrors.IOError{Op: "close", Path: path, Cause: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	for _, v := range values {
		if _, err := w.WriteString(FormatCanonical(v)); err != nil {
			return &apperrors.IOError{Op: "write", Path: path, Cause: err}
		}
		if err := w.WriteByte('\n'); err != nil {
			return &apperrors.IOError{Op: "write", Path: path, Cause: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &apperrors.IOError{Op: "flush", Path: path, Cause: err}
	}
	return nil
}
