// Package extractor turns raw recall announcements into normalized recall
// records: a source-specific model prompt pulls the structured fields out of
// the page text, rule-based date parsing reconciles the recall date, and the
// categorical fields are collapsed onto their known enums.
package extractor

import (
	"context"
	"log"
	"time"

	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
	"github.com/vualidon/FoodRecallReportAgent/pkg/llm"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/model.go -pkg mocks -skip-ensure -fmt goimports . Model

// Store reads raw records and persists normalized ones
type Store interface {
	Save(ctx context.Context, key string, v any) error
	Load(key string, out any) error
	Keys() ([]string, error)
}

// Model extracts structured recall fields from announcement text
type Model interface {
	ExtractRecall(ctx context.Context, source domain.Source, pageURL, content string) (*llm.Extraction, error)
}

// Extractor runs the extraction stage, one raw record in, one normalized
// recall out, stored under the same key.
type Extractor struct {
	raw       Store
	processed Store
	model     Model
	now       func() time.Time
}

// New creates an Extractor reading from the raw store and writing to the
// processed store.
func New(raw, processed Store, model Model) *Extractor {
	return &Extractor{raw: raw, processed: processed, model: model, now: time.Now}
}

// Extract processes the given raw-record keys, or every key in the raw store
// when none are given. A record that fails to load or extract is skipped with
// an error log; the stage continues with the rest.
func (e *Extractor) Extract(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		var err error
		if keys, err = e.raw.Keys(); err != nil {
			return nil, err
		}
	}
	log.Printf("[INFO] starting extraction of %d raw records", len(keys))

	var done []string
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return done, err
		}

		var raw domain.RawRecord
		if err := e.raw.Load(key, &raw); err != nil {
			log.Printf("[ERROR] failed to load raw record %s: %v", key, err)
			continue
		}

		rec, err := e.extractOne(ctx, key, raw)
		if err != nil {
			log.Printf("[ERROR] failed to extract %s: %v", key, err)
			continue
		}

		if err := e.processed.Save(ctx, key, rec); err != nil {
			log.Printf("[ERROR] failed to save recall %s: %v", key, err)
			continue
		}
		done = append(done, key)
	}

	log.Printf("[INFO] extraction complete, processed %d of %d records", len(done), len(keys))
	return done, nil
}

// extractOne runs the model over one raw record and normalizes the result
func (e *Extractor) extractOne(ctx context.Context, key string, raw domain.RawRecord) (*domain.Recall, error) {
	ex, err := e.model.ExtractRecall(ctx, raw.Source, raw.URL, raw.Content)
	if err != nil {
		return nil, err
	}

	rec := &domain.Recall{
		ID:                 key,
		Source:             raw.Source,
		URL:                raw.URL,
		Title:              ex.Title,
		ProductName:        ex.ProductName,
		BrandName:          ex.BrandName,
		RecallingFirm:      ex.RecallingFirm,
		RecallDate:         e.recallDate(raw, ex.RecallDate),
		Reason:             ex.Reason,
		HealthRisk:         domain.ParseHealthRisk(ex.HealthRisk),
		DistributionScope:  domain.ParseDistributionScope(ex.DistributionScope),
		DistributionStates: ex.DistributionStates,
		LotCodes:           ex.LotCodes,
		AnalyzedAt:         e.analyzedAt(ex.Timestamp),
	}
	return rec, nil
}

// recallDate reconciles the page-derived date with the model's. The rule
// match wins for sources with known page layouts; otherwise the model's date
// is kept when well-formed and replaced with the current date when not.
func (e *Extractor) recallDate(raw domain.RawRecord, modelDate string) string {
	if d := dateFromContent(raw.Source, raw.Content, e.now()); d != "" {
		return d
	}
	if validDate(modelDate) {
		return modelDate
	}
	return e.now().Format("2006-01-02")
}

// analyzedAt parses the model's processing timestamp, falling back to now
func (e *Extractor) analyzedAt(ts string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", ts); err == nil {
		return t
	}
	return e.now()
}
