// Package pipeline sequences the four stages: collection, extraction, impact
// analysis and reporting. Stages run strictly in order, each consuming the
// keys the previous one produced; individual record failures are absorbed
// inside the stages, stage-level failures stop the run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
	"github.com/vualidon/FoodRecallReportAgent/pkg/store"
)

//go:generate moq -out mocks/collector.go -pkg mocks -skip-ensure -fmt goimports . Collector
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/estimator.go -pkg mocks -skip-ensure -fmt goimports . Estimator
//go:generate moq -out mocks/reporter.go -pkg mocks -skip-ensure -fmt goimports . Reporter

// Collector gathers raw recall announcements
type Collector interface {
	Collect(ctx context.Context) ([]string, error)
}

// Extractor normalizes raw records into recalls
type Extractor interface {
	Extract(ctx context.Context, keys []string) ([]string, error)
}

// Estimator enriches recalls with economic impact
type Estimator interface {
	Analyze(ctx context.Context, keys []string) ([]string, error)
}

// Reporter assembles the final report
type Reporter interface {
	Generate(ctx context.Context, days int) (*domain.Report, string, error)
}

// Pipeline drives the stages in order
type Pipeline struct {
	collector Collector
	extractor Extractor
	estimator Estimator
	reporter  Reporter
}

// New creates a Pipeline from the four stages
func New(c Collector, e Extractor, i Estimator, r Reporter) *Pipeline {
	return &Pipeline{collector: c, extractor: e, estimator: i, reporter: r}
}

// Run executes the full pipeline and returns the final report with its file
// path. Any stage failure stops the run.
func (p *Pipeline) Run(ctx context.Context, days int) (*domain.Report, string, error) {
	started := time.Now()
	log.Printf("[INFO] starting pipeline run, %d day reporting window", days)

	collected, err := p.collector.Collect(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("collection stage: %w", err)
	}
	log.Printf("[INFO] collection stage done, %d records", len(collected))

	// downstream stages consume only this run's records; an empty set stays
	// empty rather than falling back to the whole store
	var extracted []string
	if len(collected) > 0 {
		if extracted, err = p.extractor.Extract(ctx, collected); err != nil {
			return nil, "", fmt.Errorf("extraction stage: %w", err)
		}
	}
	log.Printf("[INFO] extraction stage done, %d recalls", len(extracted))

	var analyzed []string
	if len(extracted) > 0 {
		if analyzed, err = p.estimator.Analyze(ctx, extracted); err != nil {
			return nil, "", fmt.Errorf("impact stage: %w", err)
		}
	}
	log.Printf("[INFO] impact stage done, %d recalls", len(analyzed))

	rep, path, err := p.reporter.Generate(ctx, days)
	if err != nil {
		return nil, "", fmt.Errorf("report stage: %w", err)
	}

	log.Printf("[INFO] pipeline run complete in %s, report at %s", time.Since(started).Round(time.Millisecond), path)
	return rep, path, nil
}

// RunStep executes a single named stage. Inputs are record keys or file
// paths; paths are reduced to their key stems. Only the report step returns
// a report.
func (p *Pipeline) RunStep(ctx context.Context, step string, inputs []string, days int) (*domain.Report, string, error) {
	keys := make([]string, 0, len(inputs))
	for _, in := range inputs {
		keys = append(keys, store.KeyFromPath(in))
	}

	switch step {
	case "collect":
		_, err := p.collector.Collect(ctx)
		return nil, "", err
	case "extract":
		_, err := p.extractor.Extract(ctx, keys)
		return nil, "", err
	case "analyze":
		_, err := p.estimator.Analyze(ctx, keys)
		return nil, "", err
	case "report":
		return p.reporter.Generate(ctx, days)
	case "all":
		return p.Run(ctx, days)
	default:
		return nil, "", fmt.Errorf("unknown step %q", step)
	}
}
