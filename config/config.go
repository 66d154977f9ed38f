package config

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"
)

// DefaultPath is the config file looked up when -config is not given.
const DefaultPath = "annotator.json"

// Config holds runtime configuration for the annotator.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Directories pre-filled in the directory panel
	SourceDir string `json:"source_dir"`
	DestDir   string `json:"dest_dir"`

	ClassesFile string `json:"classes_file"`

	// Manifest layout inside DestDir
	ManifestFile        string `json:"manifest_file"`
	TinyManifestFile    string `json:"tiny_manifest_file"`
	ManifestImagePrefix string `json:"manifest_image_prefix"`
	TinyClassID         int    `json:"tiny_class_id"`

	// Appearance
	BoxColor string `json:"box_color"` // SVG color name, see colornames.Map
	DarkMode bool   `json:"dark_mode"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Config{
		Debug:               false,
		SourceDir:           filepath.Join(cwd, "input"),
		DestDir:             filepath.Join(cwd, "output"),
		ClassesFile:         "classes.name",
		ManifestFile:        "training.data",
		TinyManifestFile:    "training_tiny.data",
		ManifestImagePrefix: "data/training_data/",
		TinyClassID:         0,
		BoxColor:            "red",
		DarkMode:            false,
	}
}

// Validate restores defaults for empty or out of range values.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if strings.TrimSpace(c.SourceDir) == "" {
		c.SourceDir = d.SourceDir
	}
	if strings.TrimSpace(c.DestDir) == "" {
		c.DestDir = d.DestDir
	}
	if strings.TrimSpace(c.ClassesFile) == "" {
		c.ClassesFile = d.ClassesFile
	}
	if strings.TrimSpace(c.ManifestFile) == "" {
		c.ManifestFile = d.ManifestFile
	}
	if strings.TrimSpace(c.TinyManifestFile) == "" {
		c.TinyManifestFile = d.TinyManifestFile
	}
	if c.TinyClassID < 0 {
		c.TinyClassID = d.TinyClassID
	}
	c.BoxColor = strings.ToLower(strings.TrimSpace(c.BoxColor))
	if _, ok := colornames.Map[c.BoxColor]; !ok {
		c.BoxColor = d.BoxColor
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// ApplyFlags parses args with fs, loads the file named by -config and lets
// every flag given on the command line override the loaded value. It returns
// the resulting config and the config path in use. A broken config file is
// reported alongside the defaults-plus-flags config.
func ApplyFlags(fs *flag.FlagSet, args []string) (*Config, string, error) {
	var (
		path    = fs.String("config", DefaultPath, "path to the JSON config file")
		src     = fs.String("src", "", "image source directory")
		dst     = fs.String("dst", "", "label output directory")
		classes = fs.String("classes", "", "class names file, one name per line")
		debug   = fs.Bool("debug", false, "enable debug logging and runtime stats")
	)
	if err := fs.Parse(args); err != nil {
		return DefaultConfig(), DefaultPath, err
	}

	cfg, loadErr := Load(*path)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "src":
			cfg.SourceDir = *src
		case "dst":
			cfg.DestDir = *dst
		case "classes":
			cfg.ClassesFile = *classes
		case "debug":
			cfg.Debug = *debug
		}
	})
	_ = cfg.Validate()
	return cfg, *path, loadErr
}
