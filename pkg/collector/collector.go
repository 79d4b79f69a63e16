// Package collector fetches recall announcements from the FDA and USDA
// listing pages, filters navigation noise out of the discovered links and
// persists one raw record per detail page.
package collector

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/vualidon/FoodRecallReportAgent/pkg/config"
	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
	"github.com/vualidon/FoodRecallReportAgent/pkg/fetcher"
	"github.com/vualidon/FoodRecallReportAgent/pkg/retry"
	"github.com/vualidon/FoodRecallReportAgent/pkg/store"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Fetcher renders a page via the external crawl capability
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string, formats []string) (*fetcher.Page, error)
}

// Store persists raw records
type Store interface {
	Save(ctx context.Context, key string, v any) error
}

// Collector runs the collection stage for both recall sources
type Collector struct {
	fetcher Fetcher
	store   Store
	sources config.SourcesConfig
	policy  *retry.Policy
	now     func() time.Time
}

// New creates a Collector. All page fetches share one retry policy with the
// fetch/search delay ceiling.
func New(f Fetcher, s Store, sources config.SourcesConfig, retryCfg config.RetryConfig, retryOpts ...retry.Option) *Collector {
	return &Collector{
		fetcher: f,
		store:   s,
		sources: sources,
		policy:  retry.New(retryCfg.MaxAttempts, retryCfg.BaseDelay, retryCfg.SearchMaxDelay, retryOpts...),
		now:     time.Now,
	}
}

// Collect fetches both source listings and every surviving detail page,
// persisting a raw record per announcement. A failed listing degrades that
// source to an empty contribution; a failed detail page is skipped.
func (c *Collector) Collect(ctx context.Context) ([]string, error) {
	log.Printf("[INFO] starting data collection")

	keys := c.collectSource(ctx, domain.SourceFDA, c.sources.FDAListingURL, c.isFDARecallLink)
	usdaKeys := c.collectSource(ctx, domain.SourceUSDA, c.sources.USDAListingURL, c.isUSDARecallLink)
	keys = append(keys, usdaKeys...)

	log.Printf("[INFO] data collection complete, collected %d recall announcements", len(keys))
	return keys, ctx.Err()
}

// collectSource fetches one source's listing page, filters its links and
// persists a raw record per detail page fetched.
func (c *Collector) collectSource(ctx context.Context, source domain.Source, listingURL string, keep func(string) bool) []string {
	log.Printf("[INFO] collecting %s recalls from %s", source, listingURL)

	listing := c.fetchPage(ctx, listingURL, []string{"markdown", "links"})
	if listing == nil {
		log.Printf("[ERROR] failed to get %s recalls listing", source)
		return nil
	}

	var links []string
	for _, link := range listing.Links {
		if keep(link) {
			links = append(links, link)
		}
	}
	log.Printf("[INFO] found %d valid %s recall links", len(links), source)

	var keys []string
	for _, link := range links {
		detail := c.fetchPage(ctx, link, []string{"markdown"})
		if detail == nil || detail.Markdown == "" {
			log.Printf("[ERROR] failed to get detail content for %s", link)
			continue
		}

		rec := domain.RawRecord{
			Source:      source,
			URL:         link,
			Content:     detail.Markdown,
			CollectedAt: c.now(),
		}

		key := store.NewKey(source, rec.CollectedAt)
		if err := c.store.Save(ctx, key, rec); err != nil {
			log.Printf("[ERROR] failed to save raw record for %s: %v", link, err)
			continue
		}
		keys = append(keys, key)
	}

	log.Printf("[INFO] collected %d %s recall announcements", len(keys), source)
	return keys
}

// fetchPage runs one fetch under the shared retry policy, degrading every
// failure mode to nil so the caller can skip and continue.
func (c *Collector) fetchPage(ctx context.Context, pageURL string, formats []string) *fetcher.Page {
	var page *fetcher.Page
	err := c.policy.Do(ctx, func() error {
		var ferr error
		page, ferr = c.fetcher.Fetch(ctx, pageURL, formats)
		return ferr
	})
	if err != nil {
		log.Printf("[ERROR] fetch %s failed: %v", pageURL, err)
		return nil
	}
	return page
}

// isFDARecallLink keeps links under the FDA detail base that are not
// navigation anchors, archive indexes or generic info pages.
func (c *Collector) isFDARecallLink(link string) bool {
	if !strings.HasPrefix(link, c.sources.FDADetailBase) {
		return false
	}
	for _, marker := range c.sources.FDASkipMarkers {
		if strings.Contains(link, marker) {
			return false
		}
	}
	return true
}

// isUSDARecallLink keeps links carrying the recall-alert path segment.
func (c *Collector) isUSDARecallLink(link string) bool {
	return strings.Contains(link, c.sources.USDALinkMarker)
}
