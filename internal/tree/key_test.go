package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func siteKey(i uint64) Key {
	return ID(0, i)
}

func TestID_StablePerCallSite(t *testing.T) {
	var keys []Key
	for range 3 {
		keys = append(keys, ID(0))
	}
	require.Equal(t, keys[0], keys[1])
	require.Equal(t, keys[1], keys[2])

	other := ID(0)
	require.NotEqual(t, keys[0], other, "another line is another key")

	left, right := ID(0), ID(0)
	require.NotEqual(t, left, right, "two calls on one line are two call sites")

	require.NotEqual(t, siteKey(1), siteKey(2), "disambiguators split a call site")
	require.Equal(t, siteKey(1), siteKey(1))
}

func TestKeyOf(t *testing.T) {
	require.Equal(t, KeyOf("a"), KeyOf("a"))
	require.NotEqual(t, KeyOf("a"), KeyOf("b"))
	require.NotEqual(t, KeyOf("row", 1), KeyOf("row", 2))
	require.NotEqual(t, KeyOf("row"), KeyOf("row", 0))
}

func TestPath(t *testing.T) {
	require.Equal(t, RootID, Path())
	require.Equal(t, Path(KeyOf("a"), KeyOf("b")), Path(KeyOf("a"), KeyOf("b")))
	require.NotEqual(t, Path(KeyOf("a"), KeyOf("b")), Path(KeyOf("b"), KeyOf("a")))
	require.NotEqual(t, Path(KeyOf("a")), Path(KeyOf("x"), KeyOf("a")), "same key, other parent")
}
