package navigation

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soocke/bbox-annotator-go/domain/annotate"
	"github.com/soocke/bbox-annotator-go/domain/dataset"
	"github.com/soocke/bbox-annotator-go/domain/labels"
)

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

var _ io.Writer = discardWriter{}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// fixture writes n small PNGs named img1.png.. into a fresh src dir.
func fixture(t *testing.T, n int) (src, dst string) {
	t.Helper()
	root := t.TempDir()
	src = filepath.Join(root, "in")
	dst = filepath.Join(root, "out")
	if err := os.Mkdir(src, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for i := 1; i <= n; i++ {
		writePNG(t, filepath.Join(src, fmt.Sprintf("img%d.png", i)), 8, 8)
	}
	return src, dst
}

func newController(t *testing.T, opts Options) *Controller {
	t.Helper()
	return NewController(annotate.NewSession([]string{"cat", "dog"}, discardLogger()), opts, discardLogger())
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestController_DrawNextSaves(t *testing.T) {
	src, dst := fixture(t, 3)
	c := newController(t, DefaultOptions())
	n, err := c.LoadDirectory(src, dst)
	if err != nil || n != 3 {
		t.Fatalf("LoadDirectory: n=%d err=%v", n, err)
	}
	if c.Current() != 1 || c.SessionID() == "" {
		t.Fatalf("unexpected state current=%d session=%q", c.Current(), c.SessionID())
	}
	c.CommitBox(30, 40, 10, 20, 0)

	idx, err := c.Next()
	if err != nil || idx != 2 {
		t.Fatalf("Next: idx=%d err=%v", idx, err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "img1.txt"))
	if err != nil {
		t.Fatalf("label file: %v", err)
	}
	if want := "1\n10 20 30 40 0\n"; string(data) != want {
		t.Fatalf("label file %q want %q", data, want)
	}
	if got := readLines(t, filepath.Join(dst, "training.data")); len(got) != 1 || got[0] != "data/training_data/img1.jpg 10,20,30,40,0" {
		t.Fatalf("manifest lines %q", got)
	}
	if got := readLines(t, filepath.Join(dst, "training_tiny.data")); len(got) != 1 || got[0] != "data/training_data/img1.jpg 10,20,30,40,0" {
		t.Fatalf("tiny manifest lines %q", got)
	}
	if len(c.CurrentBoxes()) != 0 {
		t.Fatalf("expected empty boxes on image 2, got %v", c.CurrentBoxes())
	}

	// Back to image 1 repopulates from its label file.
	if idx, err := c.Previous(); err != nil || idx != 1 {
		t.Fatalf("Previous: idx=%d err=%v", idx, err)
	}
	boxes := c.CurrentBoxes()
	if len(boxes) != 1 || boxes[0] != (annotate.Box{XMin: 10, YMin: 20, XMax: 30, YMax: 40}) {
		t.Fatalf("reloaded boxes %v", boxes)
	}
}

func TestController_GoToOutOfRangeIsNoop(t *testing.T) {
	src, dst := fixture(t, 5)
	c := newController(t, DefaultOptions())
	if _, err := c.LoadDirectory(src, dst); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	c.CommitBox(1, 1, 4, 4, 1)

	for _, target := range []int{0, 6, -3} {
		idx, err := c.GoTo(target)
		var ne *NavigationError
		if !errors.As(err, &ne) || !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("GoTo(%d): expected *NavigationError, got %v", target, err)
		}
		if ne.Target != target || ne.Total != 5 || idx != 1 {
			t.Fatalf("GoTo(%d): unexpected %+v idx=%d", target, ne, idx)
		}
	}
	if c.Current() != 1 || len(c.CurrentBoxes()) != 1 {
		t.Fatalf("state changed: current=%d boxes=%v", c.Current(), c.CurrentBoxes())
	}
	if _, err := os.Stat(filepath.Join(dst, "img1.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("out of range GoTo must not save, stat err=%v", err)
	}
}

func TestController_GoToSameIndexSavesEachTime(t *testing.T) {
	src, dst := fixture(t, 5)
	c := newController(t, DefaultOptions())
	if _, err := c.LoadDirectory(src, dst); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	for i := 0; i < 2; i++ {
		if idx, err := c.GoTo(3); err != nil || idx != 3 {
			t.Fatalf("GoTo(3) #%d: idx=%d err=%v", i, idx, err)
		}
	}
	lines := readLines(t, filepath.Join(dst, "training.data"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 manifest lines, got %q", lines)
	}
	if lines[0] != "data/training_data/img1.jpg" || lines[1] != "data/training_data/img3.jpg" {
		t.Fatalf("unexpected manifest lines %q", lines)
	}
	if got := readLines(t, filepath.Join(dst, "training_tiny.data")); len(got) != 2 {
		t.Fatalf("expected 2 tiny manifest lines, got %q", got)
	}
}

func TestController_BoundariesSaveAndClamp(t *testing.T) {
	src, dst := fixture(t, 2)
	c := newController(t, DefaultOptions())
	if _, err := c.LoadDirectory(src, dst); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if idx, err := c.Navigate(DirPrevious); err != nil || idx != 1 {
		t.Fatalf("Previous at first: idx=%d err=%v", idx, err)
	}
	if _, err := c.Navigate(DirNext); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if idx, err := c.Navigate(DirNext); err != nil || idx != 2 {
		t.Fatalf("Next at last: idx=%d err=%v", idx, err)
	}
	// previous(at 1), next(1->2), next(at 2)
	if got := readLines(t, filepath.Join(dst, "training.data")); len(got) != 3 {
		t.Fatalf("expected 3 manifest lines, got %q", got)
	}
}

func TestController_TinyManifestForcesClass(t *testing.T) {
	src, dst := fixture(t, 1)
	opts := DefaultOptions()
	opts.TinyClassID = 7
	c := newController(t, opts)
	if _, err := c.LoadDirectory(src, dst); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	c.CommitBox(0, 0, 2, 2, 1)
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := readLines(t, filepath.Join(dst, "training.data")); len(got) != 1 || got[0] != "data/training_data/img1.jpg 0,0,2,2,1" {
		t.Fatalf("manifest %q", got)
	}
	if got := readLines(t, filepath.Join(dst, "training_tiny.data")); len(got) != 1 || got[0] != "data/training_data/img1.jpg 0,0,2,2,7" {
		t.Fatalf("tiny manifest %q", got)
	}
}

func TestController_ScalesThroughFactor(t *testing.T) {
	src, dst := fixture(t, 2)
	opts := DefaultOptions()
	opts.Sizer = func(string) (int, int, error) { return 2000, 1000, nil }
	c := newController(t, opts)
	if err := os.MkdirAll(dst, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := labels.WriteLabelFile(filepath.Join(dst, "img1.txt"), []annotate.Box{{XMin: 100, YMin: 200, XMax: 300, YMax: 400, ClassID: 1}}); err != nil {
		t.Fatalf("seed labels: %v", err)
	}
	if _, err := c.LoadDirectory(src, dst); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if f := c.Session().Factor(); f != 2 {
		t.Fatalf("factor=%v want 2", f)
	}
	boxes := c.CurrentBoxes()
	if len(boxes) != 1 || boxes[0] != (annotate.Box{XMin: 50, YMin: 100, XMax: 150, YMax: 200, ClassID: 1}) {
		t.Fatalf("display boxes %v", boxes)
	}
	c.CommitBox(10, 10, 20, 20, 0)
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "img1.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := "2\n100 200 300 400 1\n20 20 40 40 0\n"; string(data) != want {
		t.Fatalf("label file %q want %q", data, want)
	}
}

func TestController_MalformedLabelsLoadEmpty(t *testing.T) {
	src, dst := fixture(t, 2)
	if err := os.MkdirAll(dst, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dst, "img2.txt"), []byte("1\n1 2 three 4 0\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := newController(t, DefaultOptions())
	if _, err := c.LoadDirectory(src, dst); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	idx, err := c.Next()
	var pe *labels.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *labels.ParseError, got %v", err)
	}
	if idx != 2 || c.Current() != 2 || len(c.CurrentBoxes()) != 0 {
		t.Fatalf("expected image 2 with no boxes, idx=%d boxes=%v", idx, c.CurrentBoxes())
	}
}

func TestController_MalformedLabelsKeptUntilEdited(t *testing.T) {
	src, dst := fixture(t, 2)
	if err := os.MkdirAll(dst, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	labelFile := filepath.Join(dst, "img1.txt")
	original := "2\n1 2 3 4 0\n5 6 7 x 1\n"
	if err := os.WriteFile(labelFile, []byte(original), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := newController(t, DefaultOptions())
	n, err := c.LoadDirectory(src, dst)
	var pe *labels.ParseError
	if n != 2 || !errors.As(err, &pe) {
		t.Fatalf("LoadDirectory: n=%d err=%v", n, err)
	}
	if _, err := c.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	data, err := os.ReadFile(labelFile)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != original {
		t.Fatalf("malformed label file rewritten: %q", data)
	}
	if got := readLines(t, filepath.Join(dst, "training.data")); got != nil {
		t.Fatalf("unedited image appended to manifest: %q", got)
	}

	// Once the user edits the boxes, the new list is saved.
	if _, err := c.Previous(); !errors.As(err, &pe) {
		t.Fatalf("Previous: expected *labels.ParseError, got %v", err)
	}
	c.CommitBox(1, 1, 5, 5, 1)
	if _, err := c.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	data, err = os.ReadFile(labelFile)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := "1\n1 1 5 5 1\n"; string(data) != want {
		t.Fatalf("label file %q want %q", data, want)
	}
}

func TestController_LoadDirectorySavesCurrentImage(t *testing.T) {
	src, dst := fixture(t, 2)
	c := newController(t, DefaultOptions())
	if _, err := c.LoadDirectory(src, dst); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	c.CommitBox(1, 2, 3, 4, 0)

	src2, dst2 := fixture(t, 1)
	if n, err := c.LoadDirectory(src2, dst2); err != nil || n != 1 {
		t.Fatalf("second LoadDirectory: n=%d err=%v", n, err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "img1.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := "1\n1 2 3 4 0\n"; string(data) != want {
		t.Fatalf("label file %q want %q", data, want)
	}
	if len(c.CurrentBoxes()) != 0 || c.OutDir() != dst2 {
		t.Fatalf("new directory not loaded: boxes=%v out=%s", c.CurrentBoxes(), c.OutDir())
	}
}

func TestController_NothingLoaded(t *testing.T) {
	c := newController(t, DefaultOptions())
	if err := c.Save(); err != nil {
		t.Fatalf("Save with nothing loaded: %v", err)
	}
	if _, err := c.Next(); !errors.Is(err, ErrNoDirectory) {
		t.Fatalf("Next: expected ErrNoDirectory, got %v", err)
	}
	if _, err := c.GoTo(1); !errors.Is(err, ErrNoDirectory) {
		t.Fatalf("GoTo: expected ErrNoDirectory, got %v", err)
	}
	if _, ok := c.CurrentImage(); ok {
		t.Fatalf("expected no current image")
	}
}

func TestController_LoadDirectoryErrorKeepsState(t *testing.T) {
	src, dst := fixture(t, 2)
	c := newController(t, DefaultOptions())
	if _, err := c.LoadDirectory(src, dst); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	empty := t.TempDir()
	_, err := c.LoadDirectory(empty, dst)
	var de *dataset.DirectoryError
	if !errors.As(err, &de) || !errors.Is(err, dataset.ErrNoImages) {
		t.Fatalf("expected DirectoryError(ErrNoImages), got %v", err)
	}
	if c.Total() != 2 || c.Current() != 1 {
		t.Fatalf("state changed: total=%d current=%d", c.Total(), c.Current())
	}
	if _, err := os.Stat(filepath.Join(dst, "img1.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("failed rescan must not save, stat err=%v", err)
	}
}

func TestController_UnreadableImageSkipsSave(t *testing.T) {
	src, dst := fixture(t, 1)
	opts := DefaultOptions()
	opts.Sizer = func(string) (int, int, error) { return 0, 0, errors.New("corrupt") }
	c := newController(t, opts)
	if _, err := c.LoadDirectory(src, dst); err == nil {
		t.Fatalf("expected load error")
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "img1.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("label file must not be written for an unreadable image, stat err=%v", err)
	}
}
