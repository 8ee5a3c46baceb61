package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWrite(t *testing.T) {
	r := New("src/index.js", "dist/bundle.js")
	r.RawBytes = 2048
	r.ProcessedBytes = 1900
	r.StripComments = true
	r.SetTimings(150*time.Millisecond, 2*time.Millisecond)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, r.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, r.ID, got.ID)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "src/index.js", got.Entry)
	assert.Equal(t, 1900, got.ProcessedBytes)
	assert.Equal(t, "150ms", got.BundleTime)
	assert.True(t, got.StripComments)
}

func TestReportUniqueIDs(t *testing.T) {
	a := New("a.js", "a.out.js")
	b := New("a.js", "a.out.js")
	assert.NotEqual(t, a.ID, b.ID)
}
