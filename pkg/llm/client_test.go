package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vualidon/FoodRecallReportAgent/pkg/config"
	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
	"github.com/vualidon/FoodRecallReportAgent/pkg/retry"
)

func testConfigs(endpoint string) (config.LLMConfig, config.RetryConfig) {
	llmCfg := config.LLMConfig{
		Endpoint:    endpoint + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.5,
		MaxTokens:   1024,
	}
	retryCfg := config.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, LLMMaxDelay: time.Millisecond, SearchMaxDelay: time.Millisecond}
	return llmCfg, retryCfg
}

func completionResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestClient_ExtractRecall(t *testing.T) {
	var gotSystem string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		gotSystem = req.Messages[0].Content
		assert.Contains(t, req.Messages[1].Content, "https://www.fda.gov/recall-1")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse(`{
			"title": "Acme Recalls Cookies",
			"product_name": "Chocolate Chip Cookies",
			"brand_name": "Acme",
			"recalling_firm": "Acme Foods Inc",
			"recall_date": "2025-03-14",
			"timestamp": "2025-03-14 00:00:00",
			"reason": "Undeclared peanuts",
			"health_risk": "high",
			"distribution_scope": "national",
			"distribution_states": ["CA", "NY"],
			"lot_codes": ["L123"]
		}`))
	}))
	defer server.Close()

	llmCfg, retryCfg := testConfigs(server.URL)
	client := New(llmCfg, retryCfg)

	ex, err := client.ExtractRecall(context.Background(), domain.SourceFDA, "https://www.fda.gov/recall-1", "# Recall\nFDA Publish Date: March 14, 2025")
	require.NoError(t, err)

	assert.Contains(t, gotSystem, "FDA-specific rules", "FDA source selects the FDA prompt variant")
	assert.Equal(t, "Chocolate Chip Cookies", ex.ProductName)
	assert.Equal(t, "2025-03-14", ex.RecallDate)
	assert.Equal(t, []string{"CA", "NY"}, ex.DistributionStates)
}

func TestClient_ExtractRecall_PromptSelection(t *testing.T) {
	var gotSystem atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotSystem.Store(req.Messages[0].Content)
		_ = json.NewEncoder(w).Encode(completionResponse(`{}`))
	}))
	defer server.Close()

	llmCfg, retryCfg := testConfigs(server.URL)
	client := New(llmCfg, retryCfg)
	ctx := context.Background()

	_, err := client.ExtractRecall(ctx, domain.SourceUSDA, "https://www.fsis.usda.gov/x", "text")
	require.NoError(t, err)
	assert.Contains(t, gotSystem.Load().(string), "USDA-specific rules")

	_, err = client.ExtractRecall(ctx, domain.Source("OTHER"), "https://example.com/x", "text")
	require.NoError(t, err)
	assert.NotContains(t, gotSystem.Load().(string), "specific rules")
}

func TestClient_ExtractRecall_WrappedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(completionResponse(
			"Here is the extracted information:\n\n{\"title\": \"Wrapped\", \"product_name\": \"Milk\"}\n\nLet me know if you need more."))
	}))
	defer server.Close()

	llmCfg, retryCfg := testConfigs(server.URL)
	client := New(llmCfg, retryCfg)

	ex, err := client.ExtractRecall(context.Background(), domain.SourceFDA, "https://example.com", "text")
	require.NoError(t, err)
	assert.Equal(t, "Wrapped", ex.Title)
	assert.Equal(t, "Milk", ex.ProductName)
}

func TestClient_AnalyzeImpact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		user := req.Messages[1].Content
		assert.Contains(t, user, "Base Score: 8.0")
		assert.Contains(t, user, "Distribution States: CA, TX")
		assert.Contains(t, user, "beef market context")

		_ = json.NewEncoder(w).Encode(completionResponse(`{
			"impactCategory": "high",
			"impactScore": 8.7,
			"reasoning": "wide distribution of a high-value product",
			"affectedIndustry": "beef processing",
			"estimatedCostRange": "$1M-$10M",
			"marketContext": "growing market"
		}`))
	}))
	defer server.Close()

	llmCfg, retryCfg := testConfigs(server.URL)
	client := New(llmCfg, retryCfg)

	ia, err := client.AnalyzeImpact(context.Background(), ImpactRequest{
		Title:              "Acme Recalls Ground Beef",
		ProductName:        "Ground Beef",
		HealthRisk:         domain.RiskHigh,
		DistributionScope:  domain.ScopeNational,
		DistributionStates: []string{"CA", "TX"},
		BaseScore:          8.0,
		MarketContext:      "beef market context",
	})
	require.NoError(t, err)
	assert.Equal(t, "high", ia.ImpactCategory)
	assert.InEpsilon(t, 8.7, ia.ImpactScore, 0.001)
	assert.Equal(t, "beef processing", ia.AffectedIndustry)
}

func TestClient_GenerateReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Nil(t, req.ResponseFormat, "report generation is free text, not json mode")
		assert.Contains(t, req.Messages[1].Content, "period 2025-03-07 to 2025-03-14")
		assert.Contains(t, req.Messages[1].Content, "Ground Beef")

		_ = json.NewEncoder(w).Encode(completionResponse("# Food Recall Report\n\nExecutive summary..."))
	}))
	defer server.Close()

	llmCfg, retryCfg := testConfigs(server.URL)
	client := New(llmCfg, retryCfg)

	body, err := client.GenerateReport(context.Background(), ReportRequest{
		StartDate:   "2025-03-07",
		EndDate:     "2025-03-14",
		RecallCount: 1,
		Recalls: []domain.EnrichedRecall{
			{Recall: domain.Recall{ID: "r1", ProductName: "Ground Beef"}, ImpactScore: 8.7},
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(body, "# Food Recall Report"))
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(completionResponse(`{"title": "eventually"}`))
	}))
	defer server.Close()

	llmCfg, retryCfg := testConfigs(server.URL)
	client := New(llmCfg, retryCfg, retry.WithSleep(func(context.Context, time.Duration) error { return nil }))

	ex, err := client.ExtractRecall(context.Background(), domain.SourceFDA, "https://example.com", "text")
	require.NoError(t, err)
	assert.Equal(t, "eventually", ex.Title)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_ExhaustedRetriesPropagate(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	llmCfg, retryCfg := testConfigs(server.URL)
	client := New(llmCfg, retryCfg, retry.WithSleep(func(context.Context, time.Duration) error { return nil }))

	_, err := client.ExtractRecall(context.Background(), domain.SourceFDA, "https://example.com", "text")
	require.Error(t, err, "model-call wrapper re-raises after exhausting retries")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
