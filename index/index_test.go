package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafthub/depcraft/core"
)

func TestIndexInsertAndLookup(t *testing.T) {
	x := New()
	x.Insert(core.InstalledEntry{Hash: "h1", ProjectID: "sodium", FileName: "sodium.jar"})

	assert.True(t, x.ContainsHash("h1"))
	assert.True(t, x.ContainsProject("sodium"))
	assert.False(t, x.ContainsHash("h2"))
	assert.False(t, x.ContainsProject("lithium"))

	entry, ok := x.Lookup("h1")
	require.True(t, ok)
	assert.Equal(t, "sodium.jar", entry.FileName)

	entry, ok = x.LookupProject("sodium")
	require.True(t, ok)
	assert.Equal(t, "h1", entry.Hash)
}

func TestIndexRemoveHash(t *testing.T) {
	x := New()
	x.Insert(core.InstalledEntry{Hash: "h1", ProjectID: "sodium", FileName: "sodium.jar"})
	x.RemoveHash("h1")

	assert.False(t, x.ContainsHash("h1"))
	assert.False(t, x.ContainsProject("sodium"))
	assert.Zero(t, x.Len())

	// removing an unknown hash is a no-op
	x.RemoveHash("h1")
}

func TestIndexReplace(t *testing.T) {
	x := New()
	x.Insert(core.InstalledEntry{Hash: "old", ProjectID: "old-project", FileName: "old.jar"})

	x.Replace([]core.InstalledEntry{
		{Hash: "h1", ProjectID: "sodium", FileName: "sodium.jar"},
		{Hash: "h2", FileName: "unknown.jar"},
	})

	assert.False(t, x.ContainsHash("old"))
	assert.False(t, x.ContainsProject("old-project"))
	assert.True(t, x.ContainsHash("h1"))
	assert.True(t, x.ContainsHash("h2"))
	assert.Equal(t, 2, x.Len())
}

func TestIndexFindByFileName(t *testing.T) {
	x := New()
	x.Insert(core.InstalledEntry{Hash: "h1", FileName: "sodium.jar.disabled", Disabled: true})

	// matches regardless of which form is on disk or asked for
	entry, ok := x.FindByFileName("sodium.jar")
	require.True(t, ok)
	assert.Equal(t, "h1", entry.Hash)

	entry, ok = x.FindByFileName("sodium.jar.disabled")
	require.True(t, ok)
	assert.Equal(t, "h1", entry.Hash)

	_, ok = x.FindByFileName("lithium.jar")
	assert.False(t, ok)
}
