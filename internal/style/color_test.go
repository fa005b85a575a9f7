package style

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	type tc struct {
		input    string
		expected string
		wantErr  bool
	}

	tests := map[string]tc{
		"name":        {input: "Red", expected: "#ff0000"},
		"short hex":   {input: "#0f0", expected: "#00ff00"},
		"long hex":    {input: "#123456", expected: "#123456"},
		"with alpha":  {input: "#12345680", expected: "#12345680"},
		"transparent": {input: "transparent", expected: "#00000000"},
		"bad hex":     {input: "#12", wantErr: true},
		"bad alpha":   {input: "#123456zz", wantErr: true},
		"unknown":     {input: "chartreuse-ish", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, c.String())
		})
	}
}

func TestColor_Over(t *testing.T) {
	white := RGB(255, 255, 255)
	require.Equal(t, white, white.Over(RGB(0, 0, 0)), "opaque colour hides the background")

	half := RGB(0, 0, 0).WithOpacity(0.5)
	mixed := half.Over(white)
	require.Equal(t, 1.0, mixed.A)
	r, g, b, _ := mixed.RGBA8()
	require.Equal(t, r, g)
	require.Equal(t, g, b)
	require.Less(t, r, uint8(255))
	require.Greater(t, r, uint8(0))
}
