package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/prompt"
)

func newCatalog(names ...string) *Catalog {
	c := New()
	c.Discover(models.Dataset{Name: "run", Columns: names})
	return c
}

func TestClassifierAcceptsReference(t *testing.T) {
	store := NewMemStore(
		models.Quantity{Name: "time", Kind: models.KindIndependent, Description: "Time [s]", Scale: 1},
		models.Quantity{Name: "force", Kind: models.KindDependent, Description: "Force [N]", Offset: -1, Scale: 2},
	)
	c := newCatalog("time", "force")
	script := prompt.NewScript(true, true)

	cl := NewClassifier(c, store, script, nil, nil)
	require.NoError(t, cl.Run())
	assert.Zero(t, script.Remaining())

	force, _ := c.Get("force")
	assert.Equal(t, models.KindDependent, force.Kind)
	assert.Equal(t, -1.0, force.Offset)
	assert.Equal(t, 2.0, force.Scale)
	assert.Empty(t, c.Unclassified())

	_, err := c.Freeze()
	assert.NoError(t, err)
}

func TestClassifierManualAndAppend(t *testing.T) {
	store := NewMemStore()
	c := newCatalog("time", "force", "iter")
	script := prompt.NewScript(
		// time, appended
		"xdata", "Time [s]", prompt.Default, prompt.Default, true,
		// force, not stored
		"y", "Force [N]", -1.0, 2.0, false,
		// iter, appended
		"none", true,
	)

	cl := NewClassifier(c, store, script, nil, nil)
	require.NoError(t, cl.Run())
	assert.Zero(t, script.Remaining())

	time, _ := c.Get("time")
	assert.Equal(t, models.Quantity{Name: "time", Kind: models.KindIndependent, Description: "Time [s]", Offset: 0, Scale: 1, Occurrences: 1}, time)

	force, _ := c.Get("force")
	assert.Equal(t, 2.0*(3.0+force.Offset), force.Transform(3))

	iter, _ := c.Get("iter")
	assert.Equal(t, "none", iter.Description)

	refs, _ := store.Load()
	require.Len(t, refs, 2)
	assert.Equal(t, "time", refs[0].Name)
	assert.Equal(t, "iter", refs[1].Name)
}

func TestClassifierDeclinedReferenceOverwrites(t *testing.T) {
	old := models.Quantity{Name: "force", Kind: models.KindDependent, Description: "Old", Offset: 0, Scale: 1}
	store := NewMemStore(old)
	c := newCatalog("force")
	script := prompt.NewScript(
		// decline the reference, re-enter, update the stored record
		false,
		"ydata", "New", 5.0, prompt.Default,
		true,
	)

	cl := NewClassifier(c, store, script, nil, nil)
	require.NoError(t, cl.Run())

	refs, _ := store.Load()
	require.Len(t, refs, 1)
	assert.Equal(t, "New", refs[0].Description)
	assert.Equal(t, 5.0, refs[0].Offset)
	assert.Contains(t, script.Asked[len(script.Asked)-1], "Update settings")
}

func TestClassifierUnchangedReferenceSkipsUpdatePrompt(t *testing.T) {
	ref := models.Quantity{Name: "time", Kind: models.KindIndependent, Description: "T", Offset: 0, Scale: 1}
	c := newCatalog("time")
	script := prompt.NewScript(false, "x", "T", prompt.Default, prompt.Default)

	cl := NewClassifier(c, NewMemStore(ref), script, nil, nil)
	require.NoError(t, cl.Run())
	assert.Zero(t, script.Remaining())
}

func TestClassifierPropagatesDeciderErrors(t *testing.T) {
	c := newCatalog("time")
	cl := NewClassifier(c, NewMemStore(), prompt.NewScript(), nil, nil)
	assert.ErrorIs(t, cl.Run(), prompt.ErrScriptExhausted)
}
