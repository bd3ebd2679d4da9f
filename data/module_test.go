package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleFile(t *testing.T) {
	m, err := New(".", "")
	require.NoError(t, err)

	path, ok := m.File("effects/drop-shadow.effect")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(".", "effects", "drop-shadow.effect"), path)

	_, ok = m.File("effects/missing.effect")
	assert.False(t, ok)
	_, ok = m.File("effects")
	assert.False(t, ok, "directories are not resources")
}

func TestModuleText(t *testing.T) {
	m, err := New(".", "de-DE")
	require.NoError(t, err)
	assert.Equal(t, "de-DE", m.Locale())
	assert.Equal(t, "Schlagschatten", m.Text("DropShadowFilterName"))
	assert.Equal(t, "UnknownKey", m.Text("UnknownKey"))

	m, err = New(".", "xx-XX")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, m.Locale())
	assert.Equal(t, "Drop Shadow", m.Text("DropShadowFilterName"))
}

func TestModuleWithoutLocales(t *testing.T) {
	dir := t.TempDir()
	m, err := New(dir, "en-US")
	require.NoError(t, err)
	assert.Equal(t, "", m.Locale())
	assert.Equal(t, "OffsetX", m.Text("OffsetX"))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "locale"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locale", "en-US.toml"), []byte("= broken"), 0o644))
	_, err = New(dir, "en-US")
	assert.Error(t, err)
}

func TestModuleMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), "")
	assert.Error(t, err)
}
