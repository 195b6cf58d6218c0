package cms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, relPath, body string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLocalClientGetPage(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "docs/getting-started.md", "# Getting Started\n\nWelcome aboard.")
	writePage(t, dir, "docs/setup/install.md", "# Install Guide\n\nRun the installer.")
	writePage(t, dir, "marketing/hero.md", "No heading here.")

	client := newLocalClient(dir)

	page, err := client.GetPage("getting-started")
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", page.Title)
	assert.Equal(t, "docs", page.Collection)
	assert.Empty(t, page.Parent)

	// Nested files pick up their directory as parent
	page, err = client.GetPage("install")
	require.NoError(t, err)
	assert.Equal(t, "Install Guide", page.Title)
	assert.Equal(t, "docs", page.Collection)
	assert.Equal(t, "setup", page.Parent)

	// Without a heading the slug stands in for the title
	page, err = client.GetPage("hero")
	require.NoError(t, err)
	assert.Equal(t, "hero", page.Title)
	assert.Equal(t, "marketing", page.Collection)

	_, err = client.GetPage("missing")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestLocalClientListPages(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "docs/b-second.md", "# Second")
	writePage(t, dir, "docs/a-first.md", "# First")
	writePage(t, dir, "marketing/hero.md", "# Hero")

	client := newLocalClient(dir)

	pages, err := client.ListPages("docs")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "a-first", pages[0].Slug)
	assert.Equal(t, "b-second", pages[1].Slug)

	// Unknown collections are empty, not an error
	pages, err = client.ListPages("nope")
	require.NoError(t, err)
	assert.Empty(t, pages)
}
