package fluentout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/catalog"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/plot"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/prompt"
)

type recordingRenderer struct {
	specs []models.PlotSpec
	modes []plot.Mode
}

func (r *recordingRenderer) Render(spec models.PlotSpec, mode plot.Mode) (string, error) {
	r.specs = append(r.specs, spec)
	r.modes = append(r.modes, mode)
	return spec.Name + ".png", nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testSession(t *testing.T, script *prompt.Script) (*Session, *recordingRenderer) {
	t.Helper()
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.DataDir = filepath.Join(dir, "Data")
	opts.ReferenceFile = ""
	opts.OutputDir = filepath.Join(dir, "out")
	s := NewSession(opts, script, nil, nil)
	r := &recordingRenderer{}
	s.Renderer = r
	return s, r
}

func TestSessionEndToEnd(t *testing.T) {
	script := prompt.NewScript(
		true, // use reference for force
		"xdata", "Time [s]", prompt.Default, prompt.Default,
		true, // add time to the store
		true, // write files
		"delimited-pairs", ",",
		true,  // create plots
		true,  // individual plots
		false, // no title
		true,  // computed ranges
	)
	s, renderer := testSession(t, script)

	force := models.NewQuantity("force")
	force.Kind, force.Description, force.Scale = models.KindDependent, "Force [N]", 2
	store := catalog.NewMemStore(force)
	s.Store = store
	s.Options.Manifest = filepath.Join(t.TempDir(), "manifest.json")

	report := writeFile(t, t.TempDir(), "run.out", "(\"time\" \"force\")\n0 0\n1 1\n2 0.5\n")

	res, err := s.Run([]string{report})
	require.NoError(t, err)
	assert.Equal(t, 0, script.Remaining())

	require.Len(t, res.Series, 1)
	assert.Equal(t, "run", res.Series[0].Label)
	assert.Equal(t, []float64{0, 1, 2}, res.Series[0].XValues)
	assert.Equal(t, []float64{0, 2, 1}, res.Series[0].YValues)

	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "time", records[1].Name)
	assert.Equal(t, models.KindIndependent, records[1].Kind)

	data, err := os.ReadFile(filepath.Join(s.Options.OutputDir, "run.txt"))
	require.NoError(t, err)
	assert.Equal(t, "time,force\nTime [s],Force [N]\n0.0,0.0\n1.0,2.0\n2.0,1.0\n", string(data))

	require.Len(t, renderer.specs, 1)
	assert.Equal(t, "run", renderer.specs[0].Name)
	assert.Equal(t, plot.ModeLine, renderer.modes[0])
	assert.Equal(t, models.Bounds{Min: 0, Max: 2}, renderer.specs[0].YRange)

	_, err = os.Stat(s.Options.Manifest)
	require.NoError(t, err)
	assert.Len(t, res.Manifest.Artifacts, 2)
	assert.Len(t, res.Manifest.Quantities, 2)
}

func TestSessionRequiresPairing(t *testing.T) {
	script := prompt.NewScript(
		"xdata", "Time [s]", prompt.Default, prompt.Default, false,
		"x", "Step", prompt.Default, prompt.Default, false,
	)
	s, _ := testSession(t, script)
	report := writeFile(t, t.TempDir(), "steps.out", "(\"time\" \"step\")\n0 1\n1 2\n")

	_, err := s.Run([]string{report})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrMissingPairing)

	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, "classify", stage.Stage)
}

func TestSessionSelectsFromDataDir(t *testing.T) {
	script := prompt.NewScript(
		false,    // not all files
		[]int{},  // nothing selected, asked again
		[]int{1}, // b.out
	)
	s, _ := testSession(t, script)
	require.NoError(t, os.MkdirAll(s.Options.DataDir, 0755))
	writeFile(t, s.Options.DataDir, "a.out", "(\"time\" \"force\")\n0 0\n")
	writeFile(t, s.Options.DataDir, "b.out", "no header here\n")

	res, err := s.Run(nil)
	assert.ErrorIs(t, err, catalog.ErrNoQuantities)
	assert.Equal(t, []string{filepath.Join(s.Options.DataDir, "b.out")}, res.Manifest.Skipped)
	assert.Equal(t, 0, script.Remaining())
}

func TestSessionWithoutReports(t *testing.T) {
	s, _ := testSession(t, prompt.NewScript())
	_, err := s.Run(nil)
	assert.ErrorIs(t, err, ErrNoReportFiles)
}

func TestSessionSkipsDatasetsWithoutPairs(t *testing.T) {
	script := prompt.NewScript(
		"xdata", "Time [s]", prompt.Default, prompt.Default, false,
		"ydata", "Force [N]", prompt.Default, prompt.Default, false,
		false, // no files
		false, // no plots
	)
	s, _ := testSession(t, script)
	dir := t.TempDir()
	full := writeFile(t, dir, "full.out", "(\"time\" \"force\")\n0 1\n1 2\n")
	onlyTime := writeFile(t, dir, "only-time.out", "(\"time\")\n0\n1\n")

	res, err := s.Run([]string{full, onlyTime})
	require.NoError(t, err)
	require.Len(t, res.Series, 1)
	assert.Equal(t, "full", res.Series[0].Label)
	assert.Len(t, res.Datasets, 2)
	assert.Equal(t, 0, script.Remaining())
}

func TestSessionSkipsMissingReportsAndAmbiguousDelimiters(t *testing.T) {
	script := prompt.NewScript(
		"xdata", "Time [s]", prompt.Default, prompt.Default, false,
		"ydata", "Force [N]", prompt.Default, prompt.Default, false,
		true, // write files
		"delimited-pairs",
		// a space occurs in both descriptions
		"",
		";",
		false, // no plots
	)
	s, _ := testSession(t, script)
	dir := t.TempDir()
	report := writeFile(t, dir, "run.out", "(\"time\" \"force\")\n0 1\n1 2\n")
	missing := filepath.Join(dir, "missing.out")

	res, err := s.Run([]string{report, missing})
	require.NoError(t, err)
	assert.Equal(t, []string{missing}, res.Manifest.Skipped)
	require.Len(t, res.Series, 1)
	assert.Equal(t, 0, script.Remaining())

	data, err := os.ReadFile(filepath.Join(s.Options.OutputDir, "run.txt"))
	require.NoError(t, err)
	assert.Equal(t, "time;force\nTime [s];Force [N]\n0.0;1.0\n1.0;2.0\n", string(data))
}
