package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
)

func TestDateFromContent_FDA(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"month name", "Company Announcement\nFDA Publish Date: March 14, 2025\nProduct Type: Food", "2025-03-14"},
		{"numeric", "FDA Publish Date: 3/5/2025", "2025-03-05"},
		{"iso", "FDA Publish Date: 2025-03-14", "2025-03-14"},
		{"month name wins over numeric", "FDA Publish Date: December 2, 2024\nFDA Publish Date: 1/1/2025", "2024-12-02"},
		{"no date falls back to today", "no publish date on this page", "2025-06-01"},
		{"unknown month falls back", "FDA Publish Date: Smarch 5, 2025", "2025-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dateFromContent(domain.SourceFDA, tt.content, now))
		})
	}
}

func TestDateFromContent_USDA(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-02-25",
		dateFromContent(domain.SourceUSDA, "Recall Alert\nTue, 02/25/2025 - Current\nClass I", now))
	assert.Equal(t, "2025-06-01",
		dateFromContent(domain.SourceUSDA, "no banner here", now))
}

func TestDateFromContent_UnknownSourceDefersToModel(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, dateFromContent(domain.Source("OTHER"), "FDA Publish Date: March 14, 2025", now))
}

func TestValidDate(t *testing.T) {
	assert.True(t, validDate("2025-03-14"))
	assert.False(t, validDate(""))
	assert.False(t, validDate("03/14/2025"))
	assert.False(t, validDate("2025-13-40"))
	assert.True(t, validDate("2099-01-01"), "future dates pass, the check is format only")
}
