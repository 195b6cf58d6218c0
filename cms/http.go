package cms

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// httpClient fetches content from an external content API.
type httpClient struct {
	client *resty.Client
}

func newHTTPClient(baseURL, apiKey string) *httpClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &httpClient{client: client}
}

func (h *httpClient) GetPage(slug string) (*Page, error) {
	var page Page
	resp, err := h.client.R().
		SetResult(&page).
		SetPathParam("slug", slug).
		Get("/api/pages/{slug}")
	if err != nil {
		return nil, fmt.Errorf("cms: fetch page: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrPageNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("cms: fetch page failed, code: %d", resp.StatusCode())
	}
	return &page, nil
}

func (h *httpClient) ListPages(collection string) ([]Page, error) {
	var pages []Page
	resp, err := h.client.R().
		SetResult(&pages).
		SetQueryParam("collection", collection).
		Get("/api/pages")
	if err != nil {
		return nil, fmt.Errorf("cms: list pages: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("cms: list pages failed, code: %d", resp.StatusCode())
	}
	return pages, nil
}
