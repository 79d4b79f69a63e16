// Package llm wraps the OpenAI-compatible completion API behind the three
// model tasks the pipeline needs: structured recall extraction, economic
// impact analysis and report generation. Every call runs under the shared
// retry policy with the model-call delay ceiling.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/vualidon/FoodRecallReportAgent/pkg/config"
	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
	"github.com/vualidon/FoodRecallReportAgent/pkg/retry"
)

// Extraction is the structured output schema shared by the general, FDA and
// USDA extraction prompts. Fields arrive as free text and are validated by
// the extractor, not here.
type Extraction struct {
	Title              string   `json:"title"`
	ProductName        string   `json:"product_name"`
	BrandName          string   `json:"brand_name"`
	RecallingFirm      string   `json:"recalling_firm"`
	RecallDate         string   `json:"recall_date"`
	Timestamp          string   `json:"timestamp"`
	Reason             string   `json:"reason"`
	HealthRisk         string   `json:"health_risk"`
	DistributionScope  string   `json:"distribution_scope"`
	DistributionStates []string `json:"distribution_states"`
	LotCodes           []string `json:"lot_codes"`
}

// ImpactAnalysis is the model's economic-impact assessment. ImpactScore is
// clamped by the estimator, not trusted as returned.
type ImpactAnalysis struct {
	ImpactCategory     string  `json:"impactCategory"`
	ImpactScore        float64 `json:"impactScore"`
	Reasoning          string  `json:"reasoning"`
	AffectedIndustry   string  `json:"affectedIndustry"`
	EstimatedCostRange string  `json:"estimatedCostRange"`
	MarketContext      string  `json:"marketContext"`
}

// ImpactRequest carries the structured input for impact analysis
type ImpactRequest struct {
	Title              string
	ProductName        string
	BrandName          string
	RecallingFirm      string
	Reason             string
	HealthRisk         domain.HealthRisk
	DistributionScope  domain.DistributionScope
	DistributionStates []string
	BaseScore          float64
	MarketContext      string
}

// ReportRequest carries the ranked recalls and period bounds for report
// generation
type ReportRequest struct {
	StartDate   string
	EndDate     string
	RecallCount int
	Recalls     []domain.EnrichedRecall
}

// Client calls the completion API
type Client struct {
	client *openai.Client
	cfg    config.LLMConfig
	policy *retry.Policy
}

// New creates an LLM client. Model calls retry on any failure up to the
// configured attempt cap with the (narrower) LLM delay ceiling; on
// exhaustion the last error propagates to the caller.
func New(cfg config.LLMConfig, retryCfg config.RetryConfig, retryOpts ...retry.Option) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	opts := append([]retry.Option{retry.WithRetryAny()}, retryOpts...)
	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		policy: retry.New(retryCfg.MaxAttempts, retryCfg.BaseDelay, retryCfg.LLMMaxDelay, opts...),
	}
}

// ExtractRecall runs the source-specific structured-extraction prompt over
// the raw announcement text.
func (c *Client) ExtractRecall(ctx context.Context, source domain.Source, pageURL, content string) (*Extraction, error) {
	var system string
	switch source {
	case domain.SourceFDA:
		system = fdaExtractionPrompt
	case domain.SourceUSDA:
		system = usdaExtractionPrompt
	default:
		system = generalExtractionPrompt
	}

	raw, err := c.completeJSON(ctx, system, fmt.Sprintf(extractionUserTemplate, pageURL, content))
	if err != nil {
		return nil, fmt.Errorf("extract recall from %s: %w", pageURL, err)
	}

	var ex Extraction
	if err := json.Unmarshal(raw, &ex); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	return &ex, nil
}

// AnalyzeImpact runs the impact-analysis prompt over a normalized recall
// plus its market context.
func (c *Client) AnalyzeImpact(ctx context.Context, req ImpactRequest) (*ImpactAnalysis, error) {
	user := fmt.Sprintf(impactUserTemplate,
		req.Title, req.ProductName, req.BrandName, req.RecallingFirm, req.Reason,
		req.HealthRisk, req.DistributionScope, strings.Join(req.DistributionStates, ", "),
		req.BaseScore, req.MarketContext)

	raw, err := c.completeJSON(ctx, impactAnalysisPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("analyze impact of %q: %w", req.ProductName, err)
	}

	var ia ImpactAnalysis
	if err := json.Unmarshal(raw, &ia); err != nil {
		return nil, fmt.Errorf("parse impact response: %w", err)
	}
	return &ia, nil
}

// GenerateReport runs the report-generation prompt and returns the model's
// Markdown body verbatim.
func (c *Client) GenerateReport(ctx context.Context, req ReportRequest) (string, error) {
	recallsJSON, err := json.MarshalIndent(req.Recalls, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal recalls for report: %w", err)
	}

	user := fmt.Sprintf(reportUserTemplate, req.StartDate, req.EndDate, req.RecallCount, string(recallsJSON))

	var body string
	err = c.policy.Do(ctx, func() error {
		var cerr error
		body, cerr = c.complete(ctx, reportPrompt, user, false)
		return cerr
	})
	if err != nil {
		return "", fmt.Errorf("generate report: %w", err)
	}
	return body, nil
}

// completeJSON requests a JSON-object completion and returns the raw JSON,
// falling back to scanning for the outermost object when the model wrapped
// it in prose.
func (c *Client) completeJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	var content string
	err := c.policy.Do(ctx, func() error {
		var cerr error
		content, cerr = c.complete(ctx, system, user, true)
		return cerr
	})
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") {
		return json.RawMessage(trimmed), nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no json object found in response")
	}
	return json.RawMessage(content[start : end+1]), nil
}

// complete performs a single chat completion attempt
func (c *Client) complete(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   c.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyErr(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyErr converts an API-level 429 into a RateLimitError so the policy
// can honor the service's wait hint.
func classifyErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		hint := retry.ParseRetryAfter(apiErr.Message)
		log.Printf("[WARN] llm rate limited, hint %s: %v", hint, err)
		return &retry.RateLimitError{RetryAfter: hint, Err: err}
	}
	return fmt.Errorf("llm request failed: %w", err)
}
