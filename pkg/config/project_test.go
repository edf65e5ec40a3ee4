package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAppNameFromModule(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/acme/Card_Deck/v2\n\ngo 1.24\n"), 0o644))

	p, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "example.com/acme/Card_Deck/v2", p.ModulePath)
	assert.Equal(t, "card_deck", p.AppName)
	assert.NotNil(t, p.Document)
}

func TestResolveAppNameFromStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("sinks: {store: {app: demo}}\n"), 0o644))

	p, err := Resolve(dir)
	require.NoError(t, err)
	assert.Empty(t, p.ModulePath)
	assert.Equal(t, "demo", p.AppName)
}

func TestResolveWithoutModule(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Scene")
	require.NoError(t, os.Mkdir(dir, 0o755))

	p, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "myscene", p.AppName)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultFile), nil, 0o644))

	got, err := FindProjectRoot(nested)
	require.NoError(t, err)
	want, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSanitizeSegment(t *testing.T) {
	assert.Equal(t, "motion", sanitizeSegment("  "))
	assert.Equal(t, "abc-1_2", sanitizeSegment("ABC-1_2!"))
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("animations: {a: {target: {x: 1}}}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/scenes\n"), 0o644))

	p, err := ResolveFile(path)
	require.NoError(t, err)
	assert.Equal(t, "scenes", p.AppName)
	assert.Contains(t, p.Document.Animations, "a")

	_, err = ResolveFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
