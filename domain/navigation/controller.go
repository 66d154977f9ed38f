package navigation

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/soocke/bbox-annotator-go/domain/annotate"
	"github.com/soocke/bbox-annotator-go/domain/dataset"
	"github.com/soocke/bbox-annotator-go/domain/labels"
)

// Options configures where and how a Controller persists annotations.
type Options struct {
	ManifestFile        string // multi-class manifest name inside the output dir
	TinyManifestFile    string // single-class manifest name inside the output dir
	ManifestImagePrefix string
	TinyClassID         int
	Sizer               Sizer // defaults to dataset.ImageSize
}

// DefaultOptions returns the legacy manifest layout.
func DefaultOptions() Options {
	return Options{
		ManifestFile:        "training.data",
		TinyManifestFile:    "training_tiny.data",
		ManifestImagePrefix: "data/training_data/",
		TinyClassID:         0,
	}
}

// Controller sequences save, index change and load over one scanned image
// directory. It owns the image list and the current index; the box state is
// held by the Session it was built with.
type Controller struct {
	baseLogger *slog.Logger
	logger     *slog.Logger
	session    *annotate.Session
	opts       Options
	sizer      Sizer

	images    []dataset.ImageEntry
	current   int // 1-based, 0 before the first load
	outDir    string
	labelPath string // label file of the current image, "" when it could not be loaded
	sessionID string

	// Set when the current label file failed to parse; Save leaves that file
	// alone until the session revision moves past heldRev.
	held    bool
	heldRev uint64
}

// NewController returns a controller driving session.
func NewController(session *annotate.Session, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sizer := opts.Sizer
	if sizer == nil {
		sizer = dataset.ImageSize
	}
	return &Controller{baseLogger: logger, logger: logger, session: session, opts: opts, sizer: sizer}
}

// LoadDirectory scans src for images, creates dst if missing and shows the
// first image. A *dataset.DirectoryError leaves the controller unchanged.
// Otherwise the image shown so far is saved before the new list replaces it.
// If only the first image's labels fail to parse, the directory is still
// loaded and the count is returned together with the *labels.ParseError.
func (c *Controller) LoadDirectory(src, dst string) (int, error) {
	images, err := dataset.Scan(src)
	if err != nil {
		return 0, err
	}
	if err := dataset.EnsureDir(dst); err != nil {
		return 0, err
	}
	saveErr := c.Save()

	c.sessionID = uuid.NewString()
	c.logger = c.baseLogger.With("session", c.sessionID)
	c.images = images
	c.outDir = dst
	c.current = 1
	loadErr := c.load()
	c.logger.Info("images loaded", "count", len(images), "src", src, "dst", dst)
	return len(images), errors.Join(saveErr, loadErr)
}

// Current returns the 1-based index of the displayed image, 0 if none.
func (c *Controller) Current() int { return c.current }

// Total returns the number of images in the loaded directory.
func (c *Controller) Total() int { return len(c.images) }

// SessionID identifies the current directory load in logs.
func (c *Controller) SessionID() string { return c.sessionID }

// OutDir returns the label output directory.
func (c *Controller) OutDir() string { return c.outDir }

// Factor returns the scale factor of the current image.
func (c *Controller) Factor() float64 { return c.session.Factor() }

// Session returns the annotation session driven by the controller.
func (c *Controller) Session() *annotate.Session { return c.session }

// CurrentImage returns the displayed image entry.
func (c *Controller) CurrentImage() (dataset.ImageEntry, bool) {
	if c.current < 1 || c.current > len(c.images) {
		return dataset.ImageEntry{}, false
	}
	return c.images[c.current-1], true
}

// CurrentBoxes returns the current image's boxes in display coordinates.
func (c *Controller) CurrentBoxes() []annotate.Box { return c.session.Boxes() }

// CommitBox adds a box spanning the two corners.
func (c *Controller) CommitBox(x1, y1, x2, y2, classID int) annotate.Box {
	return c.session.CommitBox(x1, y1, x2, y2, classID)
}

// DeleteBox removes the box at index.
func (c *Controller) DeleteBox(index int) error { return c.session.DeleteBox(index) }

// ClearBoxes removes every box of the current image.
func (c *Controller) ClearBoxes() { c.session.ClearBoxes() }

// SetActiveClass changes the class used for new boxes.
func (c *Controller) SetActiveClass(id int) error { return c.session.SetActiveClass(id) }

// Navigate moves one image in direction d, clamping at the ends.
func (c *Controller) Navigate(d Direction) (int, error) {
	switch d {
	case DirNext:
		return c.Next()
	case DirPrevious:
		return c.Previous()
	}
	return c.current, fmt.Errorf("unknown direction %d", d)
}

// Next saves the current image and shows the following one. At the last
// image it only saves.
func (c *Controller) Next() (int, error) {
	if len(c.images) == 0 {
		return 0, ErrNoDirectory
	}
	if c.current >= len(c.images) {
		return c.current, c.Save()
	}
	return c.GoTo(c.current + 1)
}

// Previous saves the current image and shows the preceding one. At the first
// image it only saves.
func (c *Controller) Previous() (int, error) {
	if len(c.images) == 0 {
		return 0, ErrNoDirectory
	}
	if c.current <= 1 {
		return c.current, c.Save()
	}
	return c.GoTo(c.current - 1)
}

// GoTo saves the current image and shows image target (1-based). Out of range
// targets return a *NavigationError without saving or changing state. Every
// valid call saves, even when target is the current image.
func (c *Controller) GoTo(target int) (int, error) {
	if len(c.images) == 0 {
		return 0, ErrNoDirectory
	}
	if target < 1 || target > len(c.images) {
		return c.current, &NavigationError{Target: target, Total: len(c.images)}
	}
	saveErr := c.Save()
	c.current = target
	loadErr := c.load()
	return c.current, errors.Join(saveErr, loadErr)
}

// Save writes the current image's label file and appends one line to each
// manifest. Each write is attempted once; failures are joined. An image whose
// label file failed to parse is not saved until its boxes are edited, so the
// file on disk is not replaced by the empty list shown for it.
func (c *Controller) Save() error {
	entry, ok := c.CurrentImage()
	if !ok || c.labelPath == "" {
		return nil
	}
	if c.held && c.session.Revision() == c.heldRev {
		c.logger.Warn("unedited image with malformed labels not saved", "index", c.current, "labels", c.labelPath)
		return nil
	}
	boxes := c.session.OriginalBoxes()

	var errs []error
	if err := labels.WriteLabelFile(c.labelPath, boxes); err != nil {
		errs = append(errs, err)
	}
	tiny := c.opts.TinyClassID
	for _, m := range []labels.Manifest{
		{Path: filepath.Join(c.outDir, c.opts.ManifestFile), ImagePrefix: c.opts.ManifestImagePrefix},
		{Path: filepath.Join(c.outDir, c.opts.TinyManifestFile), ImagePrefix: c.opts.ManifestImagePrefix, ForceClass: &tiny},
	} {
		if err := m.Append(entry.Path, boxes); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		c.logger.Error("image save failed", "index", c.current, "error", err)
		return err
	}
	c.logger.Info("image saved", "index", c.current, "boxes", len(boxes), "labels", c.labelPath)
	return nil
}

// load replaces the session state with the current image's boxes.
func (c *Controller) load() error {
	entry := c.images[c.current-1]
	c.labelPath = ""
	c.held = false

	w, h, err := c.sizer(entry.Path)
	if err != nil {
		c.session.Replace(1, nil)
		c.logger.Error("image load failed", "index", c.current, "path", entry.Path, "error", err)
		return fmt.Errorf("load image %d: %w", c.current, err)
	}
	factor := annotate.ScaleFactor(w, h)
	c.labelPath = labels.LabelPath(c.outDir, entry.Path)

	boxes, err := labels.ReadLabelFile(c.labelPath, factor)
	c.session.Replace(factor, boxes)
	if err != nil {
		var pe *labels.ParseError
		if errors.As(err, &pe) {
			c.held, c.heldRev = true, c.session.Revision()
		}
		c.logger.Warn("label file skipped", "index", c.current, "path", c.labelPath, "error", err)
		return err
	}
	c.logger.Info("image loaded", "index", c.current, "path", entry.Path, "factor", factor, "boxes", len(boxes))
	return nil
}
