package cms

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// localClient reads markdown files from a content directory laid out as
// <dir>/<collection>/<slug>.md. Nested directories become parent pages, so
// <dir>/docs/setup/install.md has parent "setup".
type localClient struct {
	dir string
}

func newLocalClient(dir string) *localClient {
	return &localClient{dir: dir}
}

func (l *localClient) GetPage(slug string) (*Page, error) {
	pages, err := l.walk("")
	if err != nil {
		return nil, err
	}
	for i := range pages {
		if pages[i].Slug == slug {
			return &pages[i], nil
		}
	}
	return nil, ErrPageNotFound
}

func (l *localClient) ListPages(collection string) ([]Page, error) {
	return l.walk(collection)
}

func (l *localClient) walk(collection string) ([]Page, error) {
	root := l.dir
	if collection != "" {
		root = filepath.Join(l.dir, collection)
	}

	var pages []Page
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Missing content dir yields an empty collection, not an error.
			return nil
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(l.dir, path)
		if err != nil {
			return err
		}
		pages = append(pages, buildPage(rel, string(raw)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })
	return pages, nil
}

// buildPage derives slug, collection and parent from the relative file path
// and pulls the title from the first markdown heading.
func buildPage(relPath, body string) Page {
	parts := strings.Split(filepath.ToSlash(relPath), "/")

	page := Page{
		Slug: strings.TrimSuffix(parts[len(parts)-1], ".md"),
		Body: body,
	}
	if len(parts) > 1 {
		page.Collection = parts[0]
	}
	if len(parts) > 2 {
		page.Parent = parts[len(parts)-2]
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			page.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			break
		}
	}
	if page.Title == "" {
		page.Title = page.Slug
	}

	return page
}
