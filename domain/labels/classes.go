package labels

import (
	"errors"
	"os"
	"strings"
)

// ReadClasses reads one class name per line from path. A missing file yields
// an empty list. Blank lines are skipped; names are otherwise kept verbatim.
func ReadClasses(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	classes := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		classes = append(classes, l)
	}
	return classes, nil
}
