package cms

import (
	"errors"
	"fmt"

	"truckscout/config"
)

// ErrPageNotFound is returned when no page exists for a slug.
var ErrPageNotFound = errors.New("cms: page not found")

// Page is a single marketing or documentation content item.
type Page struct {
	Slug        string `json:"slug"`
	Collection  string `json:"collection"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
	Parent      string `json:"parent,omitempty"`
	Order       int    `json:"order"`
}

// Client serves hierarchical marketing/docs content.
type Client interface {
	GetPage(slug string) (*Page, error)
	ListPages(collection string) ([]Page, error)
}

// NewClient selects the content provider from configuration. The provider
// set is closed: "local" reads a content directory from disk, "http" talks
// to an external content API.
func NewClient(cfg *config.Config) (Client, error) {
	switch cfg.CMSProvider {
	case "local":
		return newLocalClient(cfg.CMSContentDir), nil
	case "http":
		return newHTTPClient(cfg.CMSBaseURL, cfg.CMSAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown CMS provider: %s", cfg.CMSProvider)
	}
}
