package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veskara/mapsmith/pkg/scan"
)

// End-to-end over a real tree: scan, reconcile, save, and do it all
// again. With nothing changed on disk the two manifests must be
// byte-identical.
func TestRegenerateIdempotent(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t,
			os.WriteFile(full, []byte(content), 0644),
		)
	}
	write("My Campaign/map one.SC2Map", "terrain")
	write("My Campaign/zz_launcher.SC2Map", "launcher")
	write("My Campaign/mods/core.SC2Mod", "shared data")

	manifestPath := filepath.Join(root, "maps.json")
	opts := testOptions()

	regenerate := func() []byte {
		t.Helper()
		prev, err := Load(manifestPath)
		require.NoError(t, err)
		campaigns, err := scan.Campaigns(root, nil)
		require.NoError(t, err)
		next, _ := Reconcile(prev, campaigns, opts)
		require.NoError(t, Save(manifestPath, next))
		data, err := os.ReadFile(manifestPath)
		require.NoError(t, err)
		return data
	}

	first := regenerate()
	second := regenerate()
	assert.Equal(t, string(first), string(second))

	// launcher map leads the list despite sorting last by name
	m, err := Load(manifestPath)
	require.NoError(t, err)
	require.Len(t, m, 1)
	require.Len(t, m[0].Maps, 3)
	assert.Equal(t, "zz_launcher.SC2Map", m[0].Maps[0].Name)
	assert.Contains(t, m[0].Maps[1].URL, "My%20Campaign")

	// touching content changes exactly the touched entry
	write("My Campaign/map one.SC2Map", "terrain v2")
	third := regenerate()
	assert.NotEqual(t, string(first), string(third))

	m, err = Load(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, "0.0.2", m[0].Version)
	for _, e := range m[0].Maps {
		if e.Name == "map one.SC2Map" {
			assert.Equal(t, "0.0.2", e.Version)
		} else {
			assert.Equal(t, "0.0.1", e.Version)
		}
	}
}
