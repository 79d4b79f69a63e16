package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReports_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	r, err := NewReports(dir)
	require.NoError(t, err)

	path, err := r.Write(context.Background(), "food_recall_report_20250307.md", "# Report\n\nbody")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "food_recall_report_20250307.md"), path)

	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "# Report\n\nbody", string(data))
}
