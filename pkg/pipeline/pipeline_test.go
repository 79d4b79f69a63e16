package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
	"github.com/vualidon/FoodRecallReportAgent/pkg/pipeline"
	"github.com/vualidon/FoodRecallReportAgent/pkg/pipeline/mocks"
)

func stageMocks() (*mocks.CollectorMock, *mocks.ExtractorMock, *mocks.EstimatorMock, *mocks.ReporterMock) {
	collector := &mocks.CollectorMock{
		CollectFunc: func(context.Context) ([]string, error) { return []string{"k1", "k2"}, nil },
	}
	extractor := &mocks.ExtractorMock{
		ExtractFunc: func(_ context.Context, keys []string) ([]string, error) { return keys, nil },
	}
	estimator := &mocks.EstimatorMock{
		AnalyzeFunc: func(_ context.Context, keys []string) ([]string, error) { return keys, nil },
	}
	reporter := &mocks.ReporterMock{
		GenerateFunc: func(_ context.Context, days int) (*domain.Report, string, error) {
			return &domain.Report{RecallCount: 2, Markdown: "# Report"}, "/reports/r.md", nil
		},
	}
	return collector, extractor, estimator, reporter
}

func TestPipeline_Run(t *testing.T) {
	collector, extractor, estimator, reporter := stageMocks()
	p := pipeline.New(collector, extractor, estimator, reporter)

	rep, path, err := p.Run(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "/reports/r.md", path)
	assert.Equal(t, 2, rep.RecallCount)

	assert.Len(t, collector.CollectCalls(), 1)
	require.Len(t, extractor.ExtractCalls(), 1)
	assert.Equal(t, []string{"k1", "k2"}, extractor.ExtractCalls()[0].Keys, "extraction consumes the collected keys")
	require.Len(t, estimator.AnalyzeCalls(), 1)
	assert.Equal(t, []string{"k1", "k2"}, estimator.AnalyzeCalls()[0].Keys)
	require.Len(t, reporter.GenerateCalls(), 1)
	assert.Equal(t, 7, reporter.GenerateCalls()[0].Days)
}

func TestPipeline_Run_NothingCollected(t *testing.T) {
	collector, extractor, estimator, reporter := stageMocks()
	collector.CollectFunc = func(context.Context) ([]string, error) { return nil, nil }
	p := pipeline.New(collector, extractor, estimator, reporter)

	rep, _, err := p.Run(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, rep)

	assert.Empty(t, extractor.ExtractCalls(), "empty collection must not re-extract the stored backlog")
	assert.Empty(t, estimator.AnalyzeCalls())
	assert.Len(t, reporter.GenerateCalls(), 1, "report still runs and covers the window")
}

func TestPipeline_Run_NothingExtracted(t *testing.T) {
	collector, extractor, estimator, reporter := stageMocks()
	extractor.ExtractFunc = func(context.Context, []string) ([]string, error) { return nil, nil }
	p := pipeline.New(collector, extractor, estimator, reporter)

	_, _, err := p.Run(context.Background(), 7)
	require.NoError(t, err)

	assert.Len(t, extractor.ExtractCalls(), 1)
	assert.Empty(t, estimator.AnalyzeCalls(), "empty extraction must not re-analyze the stored backlog")
	assert.Len(t, reporter.GenerateCalls(), 1)
}

func TestPipeline_Run_StageFailureStops(t *testing.T) {
	collector, extractor, estimator, reporter := stageMocks()
	extractor.ExtractFunc = func(context.Context, []string) ([]string, error) {
		return nil, errors.New("model down")
	}
	p := pipeline.New(collector, extractor, estimator, reporter)

	_, _, err := p.Run(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction stage")
	assert.Empty(t, estimator.AnalyzeCalls(), "later stages do not run after a failure")
	assert.Empty(t, reporter.GenerateCalls())
}

func TestPipeline_RunStep(t *testing.T) {
	t.Run("extract converts paths to keys", func(t *testing.T) {
		collector, extractor, estimator, reporter := stageMocks()
		p := pipeline.New(collector, extractor, estimator, reporter)

		_, _, err := p.RunStep(context.Background(), "extract",
			[]string{"data/raw/fda_20250314_abc.json", "usda_20250314_def"}, 7)
		require.NoError(t, err)

		require.Len(t, extractor.ExtractCalls(), 1)
		assert.Equal(t, []string{"fda_20250314_abc", "usda_20250314_def"}, extractor.ExtractCalls()[0].Keys)
		assert.Empty(t, collector.CollectCalls())
	})

	t.Run("collect", func(t *testing.T) {
		collector, extractor, estimator, reporter := stageMocks()
		p := pipeline.New(collector, extractor, estimator, reporter)

		_, _, err := p.RunStep(context.Background(), "collect", nil, 7)
		require.NoError(t, err)
		assert.Len(t, collector.CollectCalls(), 1)
		assert.Empty(t, extractor.ExtractCalls())
	})

	t.Run("analyze", func(t *testing.T) {
		collector, extractor, estimator, reporter := stageMocks()
		p := pipeline.New(collector, extractor, estimator, reporter)

		_, _, err := p.RunStep(context.Background(), "analyze", []string{"k1"}, 7)
		require.NoError(t, err)
		require.Len(t, estimator.AnalyzeCalls(), 1)
		assert.Equal(t, []string{"k1"}, estimator.AnalyzeCalls()[0].Keys)
	})

	t.Run("report", func(t *testing.T) {
		collector, extractor, estimator, reporter := stageMocks()
		p := pipeline.New(collector, extractor, estimator, reporter)

		rep, path, err := p.RunStep(context.Background(), "report", nil, 14)
		require.NoError(t, err)
		assert.Equal(t, "/reports/r.md", path)
		assert.NotNil(t, rep)
		assert.Equal(t, 14, reporter.GenerateCalls()[0].Days)
	})

	t.Run("all runs the full pipeline", func(t *testing.T) {
		collector, extractor, estimator, reporter := stageMocks()
		p := pipeline.New(collector, extractor, estimator, reporter)

		rep, _, err := p.RunStep(context.Background(), "all", nil, 7)
		require.NoError(t, err)
		assert.NotNil(t, rep)
		assert.Len(t, collector.CollectCalls(), 1)
		assert.Len(t, extractor.ExtractCalls(), 1)
	})

	t.Run("unknown step rejected", func(t *testing.T) {
		collector, extractor, estimator, reporter := stageMocks()
		p := pipeline.New(collector, extractor, estimator, reporter)

		_, _, err := p.RunStep(context.Background(), "bogus", nil, 7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown step "bogus"`)
	})
}
