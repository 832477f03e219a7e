package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemote(t *testing.T) {
	cases := map[string]Identity{
		"git@github.com:alice/maps.git": {
			Owner: "alice", Name: "maps",
		},
		"https://github.com/alice/maps.git": {
			Owner: "alice", Name: "maps",
		},
		"https://github.com/alice/maps": {
			Owner: "alice", Name: "maps",
		},
		"ssh://git@github.com/alice/azeroth-reborn.git": {
			Owner: "alice", Name: "azeroth-reborn",
		},
	}
	for remote, want := range cases {
		got, err := ParseRemote(remote)
		require.NoError(t, err, "remote %q", remote)
		assert.Equal(t, want, got, "remote %q", remote)
	}
}

func TestParseRemoteRejectsUnknownHost(t *testing.T) {
	_, err := ParseRemote("https://example.com/alice/maps.git")
	assert.Error(t, err)
}

func TestResolveFromEnv(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "alice/maps")
	id, err := Resolve(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Identity{Owner: "alice", Name: "maps"}, id)
}

func TestResolveFromEnvMalformed(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "not-a-repo")
	_, err := Resolve(t.TempDir())
	assert.Error(t, err)
}

func TestResolveFailsWithoutRemote(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "")
	// a bare temp dir has no git config to fall back on
	_, err := Resolve(t.TempDir())
	assert.Error(t, err)
}
