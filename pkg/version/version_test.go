package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScheme(t *testing.T) {
	s, err := ParseScheme("semver")
	assert.NoError(t, err)
	assert.Equal(t, SemVerPatch, s)

	s, err = ParseScheme("majorminor")
	assert.NoError(t, err)
	assert.Equal(t, MajorMinor, s)

	s, err = ParseScheme("MajorMinor")
	assert.NoError(t, err)
	assert.Equal(t, MajorMinor, s)

	_, err = ParseScheme("calver")
	assert.Error(t, err)
}

func TestBaseline(t *testing.T) {
	assert.Equal(t, "0.0.0", SemVerPatch.Baseline())
	assert.Equal(t, "1.0", MajorMinor.Baseline())
}

func TestBumpSemVerPatch(t *testing.T) {
	assert.Equal(t, "0.0.1", SemVerPatch.Bump("0.0.0"))
	assert.Equal(t, "1.2.4", SemVerPatch.Bump("1.2.3"))
	assert.Equal(t, "3.0.10", SemVerPatch.Bump("3.0.9"))
}

func TestBumpMajorMinor(t *testing.T) {
	assert.Equal(t, "1.1", MajorMinor.Bump("1.0"))
	assert.Equal(t, "2.8", MajorMinor.Bump("2.7"))
}

func TestBumpInvalidTreatedAsBaseline(t *testing.T) {
	assert.Equal(t, "0.0.1", SemVerPatch.Bump(""))
	assert.Equal(t, "0.0.1", SemVerPatch.Bump("garbage"))
	assert.Equal(t, "0.0.1", SemVerPatch.Bump("1.2"))

	assert.Equal(t, "1.1", MajorMinor.Bump(""))
	assert.Equal(t, "1.1", MajorMinor.Bump("1.2.3"))
}
