package strandcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	c := Config{SampleRate: 48000}.WithDefaults()
	assert.Equal(t, uint32(48000), c.SampleRate)
	assert.Equal(t, Default().BlockFrames, c.BlockFrames)
	assert.Equal(t, Default().SpeedOfSound, c.SpeedOfSound)
}

func TestLoadParsesPartialYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strand.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sample_rate: 96000\nmax_delay: 2.5\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(96000), c.SampleRate)
	assert.Equal(t, float32(2.5), c.MaxDelay)
	assert.Equal(t, Default().EarSeparation, c.EarSeparation)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
