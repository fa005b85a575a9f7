package weft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type tc struct {
		input    string
		expected Config
		wantErr  bool
	}

	full := Config{FrameRate: 30, UpdateQueue: 8, Sheets: []string{"a.yaml"}, RootSheets: []string{"app"}, Reload: true}
	full.Viewport.Width, full.Viewport.Height = 1024, 768

	tests := map[string]tc{
		"empty": {input: "{}"},
		"full": {
			input:    "viewport: {width: 1024, height: 768}\nframe_rate: 30\nupdate_queue: 8\nsheets: [a.yaml]\nroot_sheets: [app]\nreload: true\n",
			expected: full,
		},
		"unknown field": {input: "frame_rat: 30\n", wantErr: true},
		"wrong type":    {input: "frame_rate: fast\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := ParseConfig([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, c)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	sheets := "sheets:\n  - name: app\n    rules:\n      - selector: text\n        style:\n          color: red\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(sheets), 0o644))
	cfg := "viewport: {width: 320, height: 240}\nsheets: [app.yaml]\nroot_sheets: [app]\n"
	path := filepath.Join(dir, "weft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "app.yaml")}, c.Sheets)

	s := newSession(t, func(ui *Ui) {
		ui.Text(KeyOf("t"), "hi")
	}, c.Options()...)
	require.Equal(t, Size{Width: 320, Height: 240}, s.Viewport())

	f := frame(t, s)
	for _, it := range f.List.Items() {
		if it.Text == "hi" {
			require.EqualValues(t, 255, it.Color[0], "root sheet from the config applies")
		}
	}

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
