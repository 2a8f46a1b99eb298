package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidQuery(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"hello", true},
		{"naïve", true},
		{"ab", true},
		{"aa", true},
		{"", false},
		{"12345", false},
		{"zzzz", false},
		{"ééé", false},
		{"a\tb", false},
		{string([]byte{0xff, 'a'}), false},
		{"route66", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidQuery(tt.in))
		})
	}
}

type sample struct {
	Name  string `toml:"name"`
	Count int    `toml:"count"`
}

func TestTOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "sample.toml")
	require.NoError(t, EnsureDir(filepath.Dir(path)))
	require.NoError(t, SaveTOMLFile(sample{Name: "tags", Count: 3}, path))
	assert.True(t, FileExists(path))

	var got sample
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, sample{Name: "tags", Count: 3}, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.toml")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nn = 7\nb = true\ns = \"x\"\nwrong = \"7\"\n"), 0o644))

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	sec, ok := ExtractSection(raw, "a")
	require.True(t, ok)

	n, ok := ExtractInt64(sec, "n")
	assert.True(t, ok)
	assert.Equal(t, 7, n)
	b, ok := ExtractBool(sec, "b")
	assert.True(t, ok)
	assert.True(t, b)
	s, ok := ExtractString(sec, "s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = ExtractInt64(sec, "wrong")
	assert.False(t, ok)
	_, ok = ExtractSection(raw, "missing")
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("[a\n"), 0o644))
	_, err = ParseTOMLWithRecovery(path)
	assert.Error(t, err)
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	st := CheckDirStatus(dir)
	require.NoError(t, st.Error)
	assert.True(t, st.Exists)
	assert.True(t, st.Writable)
	assert.Equal(t, "unknown", GetAbsolutePath(""))
	assert.True(t, filepath.IsAbs(GetAbsolutePath("x.toml")))
}
