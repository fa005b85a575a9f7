package weft

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config is the YAML form of a session's options:
//
//	viewport: {width: 1024, height: 768}
//	frame_rate: 60
//	update_queue: 256
//	sheets: [theme.yaml]
//	root_sheets: [theme]
//	reload: true
type Config struct {
	Viewport struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"viewport"`
	FrameRate   int      `yaml:"frame_rate"`
	UpdateQueue int      `yaml:"update_queue"`
	Sheets      []string `yaml:"sheets"`
	RootSheets  []string `yaml:"root_sheets"`
	Reload      bool     `yaml:"reload"`
}

// ParseConfig decodes a config. Unknown fields are an error.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	return c, nil
}

// LoadConfig reads a config file. Relative sheet paths are resolved against
// the file's directory.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	dir := filepath.Dir(path)
	for i, p := range c.Sheets {
		if !filepath.IsAbs(p) {
			c.Sheets[i] = filepath.Join(dir, p)
		}
	}
	return c, nil
}

// Options converts the config to session options. Zero fields keep the
// defaults.
func (c Config) Options() []SessionOption {
	var opts []SessionOption
	if c.Viewport.Width != 0 || c.Viewport.Height != 0 {
		opts = append(opts, WithViewport(c.Viewport.Width, c.Viewport.Height))
	}
	if c.FrameRate != 0 {
		opts = append(opts, WithFrameRate(c.FrameRate))
	}
	if c.UpdateQueue != 0 {
		opts = append(opts, WithUpdateQueueSize(c.UpdateQueue))
	}
	if len(c.Sheets) > 0 {
		opts = append(opts, WithSheetFiles(c.Sheets...))
	}
	if len(c.RootSheets) > 0 {
		opts = append(opts, WithRootSheets(c.RootSheets...))
	}
	if c.Reload {
		opts = append(opts, WithSheetReload())
	}
	return opts
}
