package dish

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Importer creates catalog dishes from recipe pages on the web.
type Importer struct {
	repo       *Repository
	httpClient *http.Client
}

// NewImporter creates a new Importer.
func NewImporter(repo *Repository) *Importer {
	return &Importer{
		repo:       repo,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ImportFromURL fetches the page, extracts a dish name, and saves it to the
// catalog as an "other" dish. The caller can re-categorize it afterwards.
func (i *Importer) ImportFromURL(ctx context.Context, url string) (*Dish, error) {
	name, err := i.extractTitle(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to extract dish name: %w", err)
	}

	d, err := i.repo.Create(ctx, name, TypeOther)
	if err != nil {
		return nil, fmt.Errorf("failed to save imported dish: %w", err)
	}
	return d, nil
}

func (i *Importer) extractTitle(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Prefer the Open Graph title; recipe sites keep the clean dish name there.
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title := strings.TrimSpace(og); title != "" {
			return title, nil
		}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("no title found at %s", url)
	}
	return title, nil
}
