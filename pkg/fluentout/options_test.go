package fluentout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/plot"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())
	assert.Equal(t, "Data", opts.DataDir)
	assert.Equal(t, '?', opts.Delimiter())
	assert.Equal(t, plot.ModeLine, opts.Plot.Mode)
	assert.Equal(t, 1600, opts.Plot.Width)
}

func TestOptionsSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "fluentout.yaml")
	opts := DefaultOptions()
	opts.ReferenceDelimiter = ";"
	opts.Plot.Mode = plot.ModeScatter
	require.NoError(t, opts.Save(path))

	loaded, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, opts, loaded)
	assert.Equal(t, ';', loaded.Delimiter())
}

func TestLoadOptionsKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fluentout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: results\nplot:\n  mode: scatter\n"), 0644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "results", opts.OutputDir)
	assert.Equal(t, plot.ModeScatter, opts.Plot.Mode)
	assert.Equal(t, 900, opts.Plot.Height)
	assert.Equal(t, "reference_quantities.dat", opts.ReferenceFile)
}

func TestLoadOptionsOrDefault(t *testing.T) {
	opts, err := LoadOptionsOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	opts, err = LoadOptionsOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	opts.ReferenceDelimiter = "??"
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.Plot.Mode = "bars"
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.Precision = 0
	assert.Error(t, opts.Validate())
}
