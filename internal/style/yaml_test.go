package style

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const appSheets = `
sheets:
  - name: app
    rules:
      - selector: "*"
        style:
          color: red
          padding: 2 4
      - selector: "button:hover"
        style:
          background: "#00ff0080"
  - name: empty
`

func TestParseSheets(t *testing.T) {
	sheets, err := ParseSheets([]byte(appSheets))
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	app := sheets[0]
	require.Equal(t, "app", app.Name)
	require.Len(t, app.Rules, 2)
	// Declarations stay in file order with shorthands expanded in place.
	require.Equal(t, []Decl{
		{Prop: PropColor, Value: "red"},
		{Prop: PropPaddingTop, Value: "2"},
		{Prop: PropPaddingRight, Value: "4"},
		{Prop: PropPaddingBottom, Value: "2"},
		{Prop: PropPaddingLeft, Value: "4"},
	}, app.Rules[0].Decls)

	res := NewCascade(NewRegistry(sheets...)).Resolve(Input{
		Chain:  []Elem{{Kind: "button", Pseudo: PseudoHover}},
		Sheets: [][]string{{"app"}},
	})
	require.Equal(t, "#00ff0080", res.Computed.Background.String())
	require.Equal(t, "empty", sheets[1].Name)
	require.Empty(t, sheets[1].Rules)
}

func TestParseSheets_Errors(t *testing.T) {
	type tc struct {
		input string
	}

	tests := map[string]tc{
		"not yaml":         {input: "sheets: [:"},
		"nameless sheet":   {input: "sheets:\n  - rules: []\n"},
		"bad selector":     {input: "sheets:\n  - name: a\n    rules:\n      - selector: \"a >\"\n"},
		"unknown property": {input: "sheets:\n  - name: a\n    rules:\n      - selector: a\n        style:\n          colour: red\n"},
		"style not a map":  {input: "sheets:\n  - name: a\n    rules:\n      - selector: a\n        style: [1, 2]\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSheets([]byte(tt.input))
			require.Error(t, err)
		})
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(appSheets), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads := make(chan []Sheet, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ string, sheets []Sheet, err error) {
			if err == nil {
				reloads <- sheets
			}
		})
	}()

	updated := "sheets:\n  - name: app\n    rules:\n      - selector: \"*\"\n        style:\n          color: blue\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	// A write may be observed as several events; wait for the new content.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case sheets := <-reloads:
			if len(sheets) == 1 && len(sheets[0].Rules) == 1 && sheets[0].Rules[0].Decls[0].Value == "blue" {
				cancel()
				require.NoError(t, <-done)
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
