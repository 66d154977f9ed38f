package labels

// Per-image label files: a box count line followed by one
// "x_min y_min x_max y_max class_id" line per box, in original image pixels.

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soocke/bbox-annotator-go/domain/annotate"
)

// ErrMalformed is matched by every *ParseError.
var ErrMalformed = errors.New("malformed label file")

// ParseError reports a label file line that could not be parsed. It aborts the
// whole load for that image.
type ParseError struct {
	Path string
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: cannot parse %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

// LabelPath returns the label file path for imagePath inside dir: the image
// base name with its extension replaced by ".txt".
func LabelPath(dir, imagePath string) string {
	base := filepath.Base(imagePath)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".txt")
}

// WriteLabelFile overwrites path with boxes, which must be in original image
// coordinates.
func WriteLabelFile(path string, boxes []annotate.Box) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write label file %q: %w", path, err)
	}
	defer closeWithErrCheck(file, &err)

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "%d\n", len(boxes))
	for _, b := range boxes {
		fmt.Fprintf(w, "%d %d %d %d %d\n", b.XMin, b.YMin, b.XMax, b.YMax, b.ClassID)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot write label file %q: %w", path, err)
	}
	return nil
}

// ReadLabelFile reads the boxes stored at path and maps their coordinates to
// display space with factor. A missing file yields no boxes and no error. The
// count line is read but not checked against the number of box lines, and
// blank box lines are skipped. Any other malformed line fails the whole file
// with a *ParseError.
func ReadLabelFile(path string, factor float64) ([]annotate.Box, error) {
	lines, err := readLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
		return nil, &ParseError{Path: path, Line: 1, Text: lines[0], Err: err}
	}

	boxes := make([]annotate.Box, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		b, err := parseBoxLine(lines[i])
		if err != nil {
			return nil, &ParseError{Path: path, Line: i + 1, Text: lines[i], Err: err}
		}
		boxes = append(boxes, b.ToDisplay(factor))
	}
	return boxes, nil
}

// parseBoxLine parses "x_min y_min x_max y_max class_id".
func parseBoxLine(line string) (annotate.Box, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return annotate.Box{}, fmt.Errorf("expected 5 fields, got %d", len(tokens))
	}
	var v [5]int
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return annotate.Box{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		v[i] = n
	}
	return annotate.NewBox(v[0], v[1], v[2], v[3], v[4]), nil
}
