package labels

// Training manifests: append-only aggregates with one line per image save,
// "<prefix>/<stem>.jpg x_min,y_min,x_max,y_max,class ...".

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soocke/bbox-annotator-go/domain/annotate"
)

// Manifest appends image entries to a training manifest file.
type Manifest struct {
	Path        string // manifest file
	ImagePrefix string // prepended to the image name, e.g. "data/training_data/"
	ForceClass  *int   // when set, every box is written with this class id
}

// Append writes one line for imagePath with boxes in original coordinates.
func (m Manifest) Append(imagePath string, boxes []annotate.Box) error {
	return AppendManifest(m.Path, m.ImagePrefix, imagePath, boxes, m.ForceClass)
}

// ManifestImageName returns the base name of imagePath with its extension
// normalised to ".jpg". The file on disk is not touched.
func ManifestImageName(imagePath string) string {
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
}

// ManifestLine formats a manifest entry without the trailing newline.
func ManifestLine(prefix, imagePath string, boxes []annotate.Box, classOverride *int) string {
	var sb strings.Builder
	sb.WriteString(path.Join(prefix, ManifestImageName(imagePath)))
	for _, b := range boxes {
		class := b.ClassID
		if classOverride != nil {
			class = *classOverride
		}
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(b.XMin))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(b.YMin))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(b.XMax))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(b.YMax))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(class))
	}
	return sb.String()
}

// AppendManifest appends exactly one line for imagePath to the manifest at
// file, creating it if needed. Entries are never deduplicated.
func AppendManifest(file, prefix, imagePath string, boxes []annotate.Box, classOverride *int) (err error) {
	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open manifest %q: %w", file, err)
	}
	defer closeWithErrCheck(f, &err)

	line := ManifestLine(prefix, imagePath, boxes, classOverride) + "\n"
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("cannot append to manifest %q: %w", file, err)
	}
	return nil
}
