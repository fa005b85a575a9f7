package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_WritesToInitializedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "weft.log")
	require.NoError(t, Init(path))
	defer Close()

	Log("session %s: frame %d committed", "abc", 7)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSuffix(string(data), "\n")
	require.True(t, strings.HasPrefix(line, "["), "log = %q", data)
	require.True(t, strings.HasSuffix(line, "] session abc: frame 7 committed"), "log = %q", data)
	require.True(t, Enabled())
}

func TestLog_NoFileIsNoop(t *testing.T) {
	require.NoError(t, Close())
	// Must not panic or create files.
	Log("dropped %s", "message")
}
