// Package report assembles the final Markdown report: enriched recalls are
// filtered to a trailing window, ranked by impact score, and either rendered
// by the model or replaced with a short stub when the window is empty.
package report

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
	"github.com/vualidon/FoodRecallReportAgent/pkg/llm"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/model.go -pkg mocks -skip-ensure -fmt goimports . Model
//go:generate moq -out mocks/writer.go -pkg mocks -skip-ensure -fmt goimports . Writer

// Store reads enriched recalls
type Store interface {
	Load(key string, out any) error
	Keys() ([]string, error)
}

// Model renders the report body from the ranked recalls
type Model interface {
	GenerateReport(ctx context.Context, req llm.ReportRequest) (string, error)
}

// Writer persists the finished report file
type Writer interface {
	Write(ctx context.Context, name, body string) (string, error)
}

// Reporter runs the reporting stage over the analyzed store.
type Reporter struct {
	analyzed Store
	model    Model
	writer   Writer
	now      func() time.Time
}

// New creates a Reporter
func New(analyzed Store, model Model, writer Writer) *Reporter {
	return &Reporter{analyzed: analyzed, model: model, writer: writer, now: time.Now}
}

// Generate builds the report over the trailing window of the given length,
// writes it to the reports directory and returns it with the written path.
// An empty window produces a stub report without a model call.
func (r *Reporter) Generate(ctx context.Context, days int) (*domain.Report, string, error) {
	end := r.now()
	start := end.AddDate(0, 0, -days)
	log.Printf("[INFO] generating report for %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))

	recalls, err := r.windowRecalls(start, end)
	if err != nil {
		return nil, "", err
	}

	rep := &domain.Report{
		PeriodStart: start,
		PeriodEnd:   end,
		RecallCount: len(recalls),
		Recalls:     recalls,
	}

	name := fmt.Sprintf("food_recall_report_%s.md", start.Format("20060102"))
	if len(recalls) == 0 {
		log.Printf("[INFO] no recalls in the reporting window, writing stub report")
		rep.Markdown = fmt.Sprintf("# Food Recall Report: %s to %s\n\nNo food recalls were reported during this period.\n",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
		name = fmt.Sprintf("food_recall_report_%s_empty.md", start.Format("20060102"))
	} else {
		body, err := r.model.GenerateReport(ctx, llm.ReportRequest{
			StartDate:   start.Format("2006-01-02"),
			EndDate:     end.Format("2006-01-02"),
			RecallCount: len(recalls),
			Recalls:     recalls,
		})
		if err != nil {
			return nil, "", fmt.Errorf("render report: %w", err)
		}
		rep.Markdown = body
	}

	path, err := r.writer.Write(ctx, name, rep.Markdown)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[INFO] report with %d recalls written to %s", rep.RecallCount, path)
	return rep, path, nil
}

// windowRecalls loads every enriched recall, keeps the ones dated inside the
// window plus any without a parsable date, and ranks them by impact score
// descending. The sort is stable so equal scores keep their storage order.
func (r *Reporter) windowRecalls(start, end time.Time) ([]domain.EnrichedRecall, error) {
	keys, err := r.analyzed.Keys()
	if err != nil {
		return nil, err
	}

	var recalls []domain.EnrichedRecall
	for _, key := range keys {
		var rec domain.EnrichedRecall
		if err := r.analyzed.Load(key, &rec); err != nil {
			log.Printf("[ERROR] failed to load enriched recall %s: %v", key, err)
			continue
		}

		if ts, ok := rec.RecallTime(); ok {
			if ts.Before(start) || ts.After(end) {
				continue
			}
		}
		recalls = append(recalls, rec)
	}

	sort.SliceStable(recalls, func(i, j int) bool { return recalls[i].ImpactScore > recalls[j].ImpactScore })
	return recalls, nil
}
