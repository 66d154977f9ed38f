package view

import (
	"log/slog"
	"strings"

	"github.com/soocke/bbox-annotator-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// DirectoryPanel holds the source and destination directory fields.
// Confirmed directories are written back into *config.Config and persisted.
type DirectoryPanel interface {
	Build(startRow int, onLoad func(), onFocus func(focused bool)) (endRow int)
	Directories() (src, dst string)
	Remember()
}

type directoryPanel struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	src     *TextWidget
	dst     *TextWidget
}

// NewDirectoryPanel creates the panel bound to cfg.
func NewDirectoryPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) DirectoryPanel {
	return &directoryPanel{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

func (v *directoryPanel) Build(startRow int, onLoad func(), onFocus func(focused bool)) (row int) {
	row = startRow
	makeRow := func(label, value, title string) *TextWidget {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(60))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		setText(w, value)
		watchFocus(w, onFocus)
		browse := Button(Txt("Browse..."), Command(func() {
			if dir := ChooseDirectory(Initialdir(textOf(w)), Title(title)); dir != "" {
				setText(w, dir)
			}
		}))
		Grid(browse, Row(row), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		row++
		return w
	}
	v.src = makeRow("Image Dir:", v.cfg.SourceDir, "Select image directory")
	v.dst = makeRow("Label Dir:", v.cfg.DestDir, "Select label output directory")

	load := Button(Txt("Load"), Command(func() {
		v.Remember()
		if onLoad != nil {
			onLoad()
		}
	}))
	Grid(load, Row(startRow), Column(3), Rowspan(2), Sticky("nswe"), Padx("0.4m"), Pady("0.15m"))
	return row
}

func (v *directoryPanel) Directories() (string, string) {
	return textOf(v.src), textOf(v.dst)
}

// Remember stores the entered directories in the config file so the next run
// starts with them.
func (v *directoryPanel) Remember() {
	if v.cfg == nil {
		return
	}
	src, dst := v.Directories()
	if src == v.cfg.SourceDir && dst == v.cfg.DestDir {
		return
	}
	cfg := *v.cfg // copy
	cfg.SourceDir, cfg.DestDir = src, dst
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}

func textOf(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

func setText(w *TextWidget, s string) {
	if w == nil {
		return
	}
	w.Delete("1.0", END)
	w.Insert("1.0", s)
}

// watchFocus reports keyboard focus entering and leaving w.
func watchFocus(w *TextWidget, onFocus func(focused bool)) {
	if onFocus == nil {
		return
	}
	Bind(w, "<FocusIn>", Command(func() { onFocus(true) }))
	Bind(w, "<FocusOut>", Command(func() { onFocus(false) }))
}
