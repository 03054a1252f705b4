package orchestrate

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafthub/depcraft/core"
)

func TestToggleRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.addMod(t, "sodium")
	require.NoError(t, h.orch.AutoInstall(context.Background(), "sodium", h.inst))

	newName, err := h.orch.Toggle(h.inst, core.PackageMod, "sodium-1.0.jar")
	require.NoError(t, err)
	assert.Equal(t, "sodium-1.0.jar.disabled", newName)

	_, statErr := os.Stat(h.modPath("sodium-1.0.jar.disabled"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(h.modPath("sodium-1.0.jar"))
	assert.True(t, os.IsNotExist(statErr))

	entry, ok := h.installed.FindByFileName("sodium-1.0.jar")
	require.True(t, ok)
	assert.True(t, entry.Disabled)
	assert.Equal(t, "sodium-1.0.jar.disabled", entry.FileName)

	newName, err = h.orch.Toggle(h.inst, core.PackageMod, newName)
	require.NoError(t, err)
	assert.Equal(t, "sodium-1.0.jar", newName)

	_, statErr = os.Stat(h.modPath("sodium-1.0.jar"))
	assert.NoError(t, statErr)

	entry, ok = h.installed.FindByFileName("sodium-1.0.jar")
	require.True(t, ok)
	assert.False(t, entry.Disabled)
}

func TestToggleStaleName(t *testing.T) {
	h := newHarness(t)
	h.addMod(t, "sodium")
	require.NoError(t, h.orch.AutoInstall(context.Background(), "sodium", h.inst))

	_, err := h.orch.Toggle(h.inst, core.PackageMod, "sodium-1.0.jar")
	require.NoError(t, err)

	// caller still holds the enabled name; the file is already disabled
	newName, err := h.orch.Toggle(h.inst, core.PackageMod, "sodium-1.0.jar")
	require.NoError(t, err)
	assert.Equal(t, "sodium-1.0.jar.disabled", newName)
}

func TestToggleMissingFile(t *testing.T) {
	h := newHarness(t)
	_, err := h.orch.Toggle(h.inst, core.PackageMod, "ghost.jar")
	assert.Error(t, err)
}

func TestDeleteInstalledFile(t *testing.T) {
	h := newHarness(t)
	h.addMod(t, "sodium")
	require.NoError(t, h.orch.AutoInstall(context.Background(), "sodium", h.inst))

	require.NoError(t, h.orch.Delete(h.inst, core.PackageMod, "sodium-1.0.jar"))

	_, statErr := os.Stat(h.modPath("sodium-1.0.jar"))
	assert.True(t, os.IsNotExist(statErr))
	assert.False(t, h.installed.ContainsProject("sodium"))
}

func TestDeleteResolvesDisabledVariant(t *testing.T) {
	h := newHarness(t)
	h.addMod(t, "sodium")
	require.NoError(t, h.orch.AutoInstall(context.Background(), "sodium", h.inst))
	_, err := h.orch.Toggle(h.inst, core.PackageMod, "sodium-1.0.jar")
	require.NoError(t, err)

	require.NoError(t, h.orch.Delete(h.inst, core.PackageMod, "sodium-1.0.jar"))

	_, statErr := os.Stat(h.modPath("sodium-1.0.jar.disabled"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteRejectsModpack(t *testing.T) {
	h := newHarness(t)
	h.addMod(t, "sodium")
	require.NoError(t, h.orch.AutoInstall(context.Background(), "sodium", h.inst))

	err := h.orch.Delete(h.inst, core.PackageModpack, "sodium-1.0.jar")
	assert.ErrorIs(t, err, core.ErrUnsupportedType)

	// rejected before any side effect
	_, statErr := os.Stat(h.modPath("sodium-1.0.jar"))
	assert.NoError(t, statErr)
	assert.True(t, h.installed.ContainsProject("sodium"))
}

func TestDeleteMissingFile(t *testing.T) {
	h := newHarness(t)
	err := h.orch.Delete(h.inst, core.PackageMod, "ghost.jar")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
