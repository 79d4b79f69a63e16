package impact

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vualidon/FoodRecallReportAgent/pkg/config"
	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
	"github.com/vualidon/FoodRecallReportAgent/pkg/impact/mocks"
	"github.com/vualidon/FoodRecallReportAgent/pkg/llm"
	"github.com/vualidon/FoodRecallReportAgent/pkg/retry"
	"github.com/vualidon/FoodRecallReportAgent/pkg/search"
)

func testRetry() config.RetryConfig {
	return config.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, SearchMaxDelay: time.Millisecond, LLMMaxDelay: time.Millisecond}
}

func noSleep() retry.Option {
	return retry.WithSleep(func(context.Context, time.Duration) error { return nil })
}

// processedStoreWith serves the given recalls by key
func processedStoreWith(recalls map[string]domain.Recall) *mocks.StoreMock {
	return &mocks.StoreMock{
		KeysFunc: func() ([]string, error) {
			var keys []string
			for k := range recalls {
				keys = append(keys, k)
			}
			return keys, nil
		},
		LoadFunc: func(key string, out any) error {
			rec, ok := recalls[key]
			if !ok {
				return errors.New("not found")
			}
			data, _ := json.Marshal(rec)
			return json.Unmarshal(data, out)
		},
	}
}

func TestBaseScore(t *testing.T) {
	tests := []struct {
		product string
		want    float64
	}{
		{"Ground Beef Meat Patties", 8.0},
		{"Frozen Seafood Medley", 8.5},
		{"Organic Dairy Creamer", 7.0},
		{"Premium Infant Formula", 9.5},
		{"Assorted Snacks Variety Box", 4.0},
		{"Cheese Snack", 5.0}, // singular does not match the snacks category
		{"Mystery Widget", 5.0},
		{"", 5.0},
	}
	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			assert.InDelta(t, tt.want, baseScore(tt.product), 0.001)
		})
	}
}

func TestClampScore(t *testing.T) {
	assert.InDelta(t, 0.0, clampScore(-3.0), 0.001)
	assert.InDelta(t, 10.0, clampScore(15.0), 0.001)
	assert.InDelta(t, 8.7, clampScore(8.7), 0.001)
}

func TestEstimator_Analyze(t *testing.T) {
	processed := processedStoreWith(map[string]domain.Recall{
		"k1": {
			ID:                 "k1",
			Source:             domain.SourceUSDA,
			ProductName:        "Ground Beef Meat",
			BrandName:          "Acme",
			HealthRisk:         domain.RiskHigh,
			DistributionScope:  domain.ScopeNational,
			DistributionStates: []string{"CA", "TX"},
		},
	})

	searcher := &mocks.SearcherMock{
		SearchFunc: func(_ context.Context, query string) ([]search.Result, error) {
			assert.Equal(t, "market size and trends for Ground Beef Meat Acme food industry", query)
			return []search.Result{
				{Title: "report", Content: "beef market worth $50B"},
				{Title: "trends", Content: "growing 3% annually"},
			}, nil
		},
	}

	model := &mocks.ModelMock{
		AnalyzeImpactFunc: func(_ context.Context, req llm.ImpactRequest) (*llm.ImpactAnalysis, error) {
			assert.InDelta(t, 8.0, req.BaseScore, 0.001, "meat category seeds the base score")
			assert.Equal(t, "beef market worth $50B\ngrowing 3% annually", req.MarketContext)
			return &llm.ImpactAnalysis{
				ImpactCategory:     "HIGH",
				ImpactScore:        8.7,
				Reasoning:          "wide distribution",
				AffectedIndustry:   "beef processing",
				EstimatedCostRange: "$1M-$10M",
			}, nil
		},
	}

	var saved domain.EnrichedRecall
	analyzed := &mocks.StoreMock{
		SaveFunc: func(_ context.Context, key string, v any) error {
			assert.Equal(t, "k1", key, "enriched record reuses the recall's key")
			saved = *(v.(*domain.EnrichedRecall))
			return nil
		},
	}

	e := New(processed, analyzed, searcher, model, testRetry(), noSleep())
	done, err := e.Analyze(context.Background(), []string{"k1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, done)

	assert.Equal(t, domain.ImpactHigh, saved.EconomicImpact, "category lowercased onto the enum")
	assert.InDelta(t, 8.7, saved.ImpactScore, 0.001)
	assert.Equal(t, "beef processing", saved.ImpactAnalysis.AffectedIndustry)
	assert.Equal(t, "beef market worth $50B\ngrowing 3% annually", saved.ImpactAnalysis.MarketContext)
	assert.Equal(t, "Ground Beef Meat", saved.ProductName, "recall fields carry through")
}

func TestEstimator_Analyze_ScoreClamped(t *testing.T) {
	processed := processedStoreWith(map[string]domain.Recall{
		"hi": {ID: "hi", ProductName: "Infant Formula"},
		"lo": {ID: "lo", ProductName: "Water"},
	})
	searcher := &mocks.SearcherMock{
		SearchFunc: func(context.Context, string) ([]search.Result, error) { return nil, nil },
	}
	model := &mocks.ModelMock{
		AnalyzeImpactFunc: func(_ context.Context, req llm.ImpactRequest) (*llm.ImpactAnalysis, error) {
			if req.ProductName == "Infant Formula" {
				assert.InDelta(t, 9.5, req.BaseScore, 0.001)
				return &llm.ImpactAnalysis{ImpactCategory: "high", ImpactScore: 15.0}, nil
			}
			return &llm.ImpactAnalysis{ImpactCategory: "low", ImpactScore: -3.0}, nil
		},
	}

	scores := map[string]float64{}
	analyzed := &mocks.StoreMock{
		SaveFunc: func(_ context.Context, key string, v any) error {
			scores[key] = v.(*domain.EnrichedRecall).ImpactScore
			return nil
		},
	}

	e := New(processed, analyzed, searcher, model, testRetry(), noSleep())
	done, err := e.Analyze(context.Background(), []string{"hi", "lo"})
	require.NoError(t, err)
	assert.Len(t, done, 2)
	assert.InDelta(t, 10.0, scores["hi"], 0.001)
	assert.InDelta(t, 0.0, scores["lo"], 0.001)
}

func TestEstimator_Analyze_SearchDegrades(t *testing.T) {
	processed := processedStoreWith(map[string]domain.Recall{
		"empty": {ID: "empty", ProductName: "Cookies"},
		"fail":  {ID: "fail", ProductName: "Crackers"},
	})
	searcher := &mocks.SearcherMock{
		SearchFunc: func(_ context.Context, query string) ([]search.Result, error) {
			if query == "market size and trends for Crackers  food industry" {
				return nil, errors.New("search down")
			}
			return []search.Result{}, nil
		},
	}

	contexts := map[string]string{}
	model := &mocks.ModelMock{
		AnalyzeImpactFunc: func(_ context.Context, req llm.ImpactRequest) (*llm.ImpactAnalysis, error) {
			contexts[req.ProductName] = req.MarketContext
			return &llm.ImpactAnalysis{ImpactCategory: "medium", ImpactScore: 5.0}, nil
		},
	}
	analyzed := &mocks.StoreMock{
		SaveFunc: func(context.Context, string, any) error { return nil },
	}

	e := New(processed, analyzed, searcher, model, testRetry(), noSleep())
	done, err := e.Analyze(context.Background(), []string{"empty", "fail"})
	require.NoError(t, err, "search failure degrades to the no-context sentinel, not a skipped recall")
	assert.Len(t, done, 2)
	assert.Equal(t, "No market context available.", contexts["Cookies"])
	assert.Equal(t, "No market context available.", contexts["Crackers"], "a dead search is treated the same as no data")
}

func TestEstimator_Analyze_SearchRateLimitRetried(t *testing.T) {
	processed := processedStoreWith(map[string]domain.Recall{
		"k1": {ID: "k1", ProductName: "Cheese Dairy Spread"},
	})

	calls := 0
	searcher := &mocks.SearcherMock{
		SearchFunc: func(context.Context, string) ([]search.Result, error) {
			calls++
			if calls == 1 {
				return nil, &retry.RateLimitError{RetryAfter: 3 * time.Second, Err: errors.New("429")}
			}
			return []search.Result{{Content: "dairy market context"}}, nil
		},
	}
	model := &mocks.ModelMock{
		AnalyzeImpactFunc: func(_ context.Context, req llm.ImpactRequest) (*llm.ImpactAnalysis, error) {
			assert.Equal(t, "dairy market context", req.MarketContext)
			return &llm.ImpactAnalysis{ImpactCategory: "medium", ImpactScore: 6.0}, nil
		},
	}
	analyzed := &mocks.StoreMock{
		SaveFunc: func(context.Context, string, any) error { return nil },
	}

	var waits []time.Duration
	e := New(processed, analyzed, searcher, model, testRetry(),
		retry.WithSleep(func(_ context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		}))

	done, err := e.Analyze(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, done, 1)
	assert.Equal(t, 2, calls)
	require.Len(t, waits, 1)
	assert.Equal(t, 3*time.Second, waits[0])
}

func TestEstimator_Analyze_ModelFailureSkipsRecall(t *testing.T) {
	processed := processedStoreWith(map[string]domain.Recall{
		"good": {ID: "good", ProductName: "Cookies"},
		"bad":  {ID: "bad", ProductName: "Crackers"},
	})
	searcher := &mocks.SearcherMock{
		SearchFunc: func(context.Context, string) ([]search.Result, error) { return nil, nil },
	}
	model := &mocks.ModelMock{
		AnalyzeImpactFunc: func(_ context.Context, req llm.ImpactRequest) (*llm.ImpactAnalysis, error) {
			if req.ProductName == "Crackers" {
				return nil, errors.New("model unavailable")
			}
			return &llm.ImpactAnalysis{ImpactCategory: "low", ImpactScore: 2.0}, nil
		},
	}
	analyzed := &mocks.StoreMock{
		SaveFunc: func(context.Context, string, any) error { return nil },
	}

	e := New(processed, analyzed, searcher, model, testRetry(), noSleep())
	done, err := e.Analyze(context.Background(), []string{"good", "bad"})
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, done)
	assert.Len(t, analyzed.SaveCalls(), 1)
}
