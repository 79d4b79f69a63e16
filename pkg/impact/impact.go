// Package impact estimates the economic impact of normalized recalls: a
// category weight seeds the base score, a web search supplies market context,
// and the model produces the final category, score and reasoning. Scores are
// clamped to [0, 10] regardless of what the model returns.
package impact

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/vualidon/FoodRecallReportAgent/pkg/config"
	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
	"github.com/vualidon/FoodRecallReportAgent/pkg/llm"
	"github.com/vualidon/FoodRecallReportAgent/pkg/retry"
	"github.com/vualidon/FoodRecallReportAgent/pkg/search"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/searcher.go -pkg mocks -skip-ensure -fmt goimports . Searcher
//go:generate moq -out mocks/model.go -pkg mocks -skip-ensure -fmt goimports . Model

// sentinel market-context value for degraded search outcomes
const noContext = "No market context available."

// categoryWeight seeds the base impact score from the product name. Ordered,
// first substring match wins.
type categoryWeight struct {
	keyword string
	weight  float64
}

var categoryWeights = []categoryWeight{
	{"meat", 8.0},
	{"poultry", 7.5},
	{"seafood", 8.5},
	{"dairy", 7.0},
	{"produce", 6.5},
	{"baked goods", 5.0},
	{"snacks", 4.0},
	{"beverages", 6.0},
	{"prepared foods", 5.5},
	{"supplements", 4.5},
	{"infant formula", 9.5},
}

// defaultWeight applies when no category keyword matches
const defaultWeight = 5.0

// baseScore maps a product name onto its category weight
func baseScore(productName string) float64 {
	name := strings.ToLower(productName)
	for _, cw := range categoryWeights {
		if strings.Contains(name, cw.keyword) {
			return cw.weight
		}
	}
	return defaultWeight
}

// Store reads normalized recalls and persists enriched ones
type Store interface {
	Save(ctx context.Context, key string, v any) error
	Load(key string, out any) error
	Keys() ([]string, error)
}

// Searcher retrieves market context for a product
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// Model produces the economic-impact assessment
type Model interface {
	AnalyzeImpact(ctx context.Context, req llm.ImpactRequest) (*llm.ImpactAnalysis, error)
}

// Estimator runs the impact-analysis stage, one normalized recall in, one
// enriched recall out, stored under the same key.
type Estimator struct {
	processed Store
	analyzed  Store
	searcher  Searcher
	model     Model
	policy    *retry.Policy
}

// New creates an Estimator. Market-context searches retry under the
// fetch/search delay ceiling; a search that still fails degrades to a
// sentinel context rather than failing the recall.
func New(processed, analyzed Store, searcher Searcher, model Model, retryCfg config.RetryConfig, retryOpts ...retry.Option) *Estimator {
	return &Estimator{
		processed: processed,
		analyzed:  analyzed,
		searcher:  searcher,
		model:     model,
		policy:    retry.New(retryCfg.MaxAttempts, retryCfg.BaseDelay, retryCfg.SearchMaxDelay, retryOpts...),
	}
}

// Analyze processes the given recall keys, or every key in the processed
// store when none are given. A recall that fails to load or analyze is
// skipped with an error log; the stage continues with the rest.
func (e *Estimator) Analyze(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		var err error
		if keys, err = e.processed.Keys(); err != nil {
			return nil, err
		}
	}
	log.Printf("[INFO] starting impact analysis of %d recalls", len(keys))

	var done []string
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return done, err
		}

		var rec domain.Recall
		if err := e.processed.Load(key, &rec); err != nil {
			log.Printf("[ERROR] failed to load recall %s: %v", key, err)
			continue
		}

		enriched, err := e.analyzeOne(ctx, rec)
		if err != nil {
			log.Printf("[ERROR] failed to analyze %s: %v", key, err)
			continue
		}

		if err := e.analyzed.Save(ctx, key, enriched); err != nil {
			log.Printf("[ERROR] failed to save enriched recall %s: %v", key, err)
			continue
		}
		done = append(done, key)
	}

	log.Printf("[INFO] impact analysis complete, analyzed %d of %d recalls", len(done), len(keys))
	return done, nil
}

// analyzeOne scores a single recall and merges the model's assessment
func (e *Estimator) analyzeOne(ctx context.Context, rec domain.Recall) (*domain.EnrichedRecall, error) {
	base := baseScore(rec.ProductName)
	marketContext := e.marketContext(ctx, rec.ProductName, rec.BrandName)

	ia, err := e.model.AnalyzeImpact(ctx, llm.ImpactRequest{
		Title:              rec.Title,
		ProductName:        rec.ProductName,
		BrandName:          rec.BrandName,
		RecallingFirm:      rec.RecallingFirm,
		Reason:             rec.Reason,
		HealthRisk:         rec.HealthRisk,
		DistributionScope:  rec.DistributionScope,
		DistributionStates: rec.DistributionStates,
		BaseScore:          base,
		MarketContext:      marketContext,
	})
	if err != nil {
		return nil, err
	}

	return &domain.EnrichedRecall{
		Recall:         rec,
		EconomicImpact: domain.ParseEconomicImpact(ia.ImpactCategory),
		ImpactScore:    clampScore(ia.ImpactScore),
		ImpactAnalysis: domain.ImpactDetails{
			Reasoning:          ia.Reasoning,
			AffectedIndustry:   ia.AffectedIndustry,
			EstimatedCostRange: ia.EstimatedCostRange,
			MarketContext:      marketContext,
		},
	}, nil
}

// marketContext searches for the product's market and joins the hit contents.
// A failed or empty search degrades to the no-context sentinel so the
// analysis proceeds on the recall's own fields.
func (e *Estimator) marketContext(ctx context.Context, product, brand string) string {
	query := fmt.Sprintf("market size and trends for %s %s food industry", product, brand)

	var results []search.Result
	err := e.policy.Do(ctx, func() error {
		var serr error
		results, serr = e.searcher.Search(ctx, query)
		return serr
	})
	if err != nil {
		log.Printf("[WARN] market context search failed for %q: %v", product, err)
		return noContext
	}
	if len(results) == 0 {
		return noContext
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Content)
	}
	return strings.Join(parts, "\n")
}

// clampScore bounds the model's score to the valid [0, 10] range
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
