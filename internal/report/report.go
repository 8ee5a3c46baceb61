// Package report emits a JSON record for each build so external tooling can
// track bundle growth and build latency across rebuilds.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Report describes one completed build.
type Report struct {
	ID             string    `json:"id"`
	Entry          string    `json:"entry"`
	Output         string    `json:"output"`
	RawBytes       int       `json:"raw_bytes"`
	ProcessedBytes int       `json:"processed_bytes"`
	SourceMaps     bool      `json:"source_maps"`
	StripComments  bool      `json:"strip_comments"`
	BundleTime     string    `json:"bundle_time"`
	ProcessTime    string    `json:"process_time"`
	CreatedAt      time.Time `json:"created_at"`
}

// New returns a report with a fresh build ID.
func New(entry, output string) *Report {
	return &Report{
		ID:        uuid.New().String(),
		Entry:     entry,
		Output:    output,
		CreatedAt: time.Now().UTC(),
	}
}

// SetTimings records stage durations in a stable string form.
func (r *Report) SetTimings(bundle, process time.Duration) {
	r.BundleTime = bundle.String()
	r.ProcessTime = process.String()
}

// Write marshals the report and writes it to path.
func (r *Report) Write(path string) error {
	data, err := sonic.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
