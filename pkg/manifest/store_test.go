package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "maps.json"))
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.json")
	require.NoError(t,
		os.WriteFile(path, []byte("{not json"), 0644),
	)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.json")
	m := Manifest{
		{
			Title:   "Azeroth Reborn",
			Version: "0.0.3",
			Asset:   "Azeroth_Reborn.png",
			Maps: []Entry{
				{
					Name:    "one.SC2Map",
					Version: "0.0.1",
					SHA256:  "abc",
					URL:     "https://example/one.SC2Map",
				},
				{
					Name:         "big.SC2Map",
					Version:      "0.0.2",
					SHA256:       "def",
					URL:          "https://example/big.SC2Map",
					ReleaseAsset: true,
				},
			},
		},
	}

	require.NoError(t, Save(path, m))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestSaveByteStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.json")
	m := Manifest{
		{Title: "C", Version: "1.0", Asset: "C.png"},
	}

	require.NoError(t, Save(path, m))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Save(path, m))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSaveEmptyMapsAsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.json")
	m := Manifest{
		{Title: "C", Version: "1.0", Asset: "C.png"},
	}
	require.NoError(t, Save(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"maps": []`)
	assert.NotContains(t, string(data), `"maps": null`)
	assert.NotContains(t, string(data), "release_asset")
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maps.json")
	require.NoError(t, Save(path, Manifest{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "maps.json", entries[0].Name())
}
