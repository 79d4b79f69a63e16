package domain

import (
	"strings"
	"time"
)

// Source identifies the government originator of a recall announcement.
type Source string

// known recall sources
const (
	SourceFDA  Source = "FDA"
	SourceUSDA Source = "USDA"
)

// HealthRisk is the categorical severity of a recall's consumer-safety impact.
type HealthRisk string

// health risk levels
const (
	RiskLow     HealthRisk = "low"
	RiskMedium  HealthRisk = "medium"
	RiskHigh    HealthRisk = "high"
	RiskUnknown HealthRisk = "unknown"
)

// ParseHealthRisk maps free-text model output to a HealthRisk, case-insensitive.
// Anything unrecognized collapses to RiskUnknown.
func ParseHealthRisk(s string) HealthRisk {
	switch HealthRisk(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// DistributionScope is the categorical geographic breadth of distribution.
type DistributionScope string

// distribution scopes
const (
	ScopeLocal         DistributionScope = "local"
	ScopeRegional      DistributionScope = "regional"
	ScopeNational      DistributionScope = "national"
	ScopeInternational DistributionScope = "international"
	ScopeUnknown       DistributionScope = "unknown"
)

// ParseDistributionScope maps free-text model output to a DistributionScope,
// case-insensitive. Anything unrecognized collapses to ScopeUnknown.
func ParseDistributionScope(s string) DistributionScope {
	switch DistributionScope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeLocal:
		return ScopeLocal
	case ScopeRegional:
		return ScopeRegional
	case ScopeNational:
		return ScopeNational
	case ScopeInternational:
		return ScopeInternational
	default:
		return ScopeUnknown
	}
}

// EconomicImpact is the categorical economic severity of a recall.
type EconomicImpact string

// economic impact categories
const (
	ImpactLow     EconomicImpact = "low"
	ImpactMedium  EconomicImpact = "medium"
	ImpactHigh    EconomicImpact = "high"
	ImpactUnknown EconomicImpact = "unknown"
)

// ParseEconomicImpact maps free-text model output to an EconomicImpact,
// case-insensitive. Anything unrecognized collapses to ImpactUnknown.
func ParseEconomicImpact(s string) EconomicImpact {
	switch EconomicImpact(strings.ToLower(strings.TrimSpace(s))) {
	case ImpactLow:
		return ImpactLow
	case ImpactMedium:
		return ImpactMedium
	case ImpactHigh:
		return ImpactHigh
	default:
		return ImpactUnknown
	}
}

// RawRecord is one recall announcement as collected, before any processing.
// Immutable once written; identified by its storage key.
type RawRecord struct {
	Source      Source    `json:"source"`
	URL         string    `json:"url"`
	Content     string    `json:"text_content"` // markdown rendering of the detail page
	CollectedAt time.Time `json:"collected_at"`
}

// Recall is the normalized recall record produced by the extractor from
// exactly one RawRecord. RecallDate is a YYYY-MM-DD string, empty when the
// announcement carried no parsable date.
type Recall struct {
	ID                 string            `json:"id"`
	Source             Source            `json:"source"`
	URL                string            `json:"url"`
	Title              string            `json:"title"`
	ProductName        string            `json:"product_name"`
	BrandName          string            `json:"brand_name,omitempty"`
	RecallingFirm      string            `json:"recalling_firm,omitempty"`
	RecallDate         string            `json:"recall_date,omitempty"`
	Reason             string            `json:"reason"`
	HealthRisk         HealthRisk        `json:"health_risk"`
	DistributionScope  DistributionScope `json:"distribution_scope"`
	DistributionStates []string          `json:"distribution_states"`
	LotCodes           []string          `json:"lot_codes"`
	AnalyzedAt         time.Time         `json:"analyzed_at"`
}

// RecallTime parses RecallDate, reporting false when the date is absent or
// does not parse.
func (r *Recall) RecallTime() (time.Time, bool) {
	if r.RecallDate == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse("2006-01-02", r.RecallDate)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ImpactDetails holds the free-text portions of an impact analysis.
type ImpactDetails struct {
	Reasoning          string `json:"reasoning"`
	AffectedIndustry   string `json:"affected_industry"`
	EstimatedCostRange string `json:"estimated_cost_range"`
	MarketContext      string `json:"market_context"`
}

// EnrichedRecall is a Recall plus the economic-impact estimate. Produced by
// the impact estimator from exactly one Recall, stored under the same key.
type EnrichedRecall struct {
	Recall
	EconomicImpact EconomicImpact `json:"economic_impact"`
	ImpactScore    float64        `json:"impact_score"`
	ImpactAnalysis ImpactDetails  `json:"impact_analysis"`
}

// Report is the assembled ranking over a trailing window. Derived on every
// run, written as a flat Markdown file and never persisted structurally.
type Report struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	RecallCount int
	Recalls     []EnrichedRecall // ordered by ImpactScore descending
	Markdown    string
}
