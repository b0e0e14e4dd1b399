package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"enclave/sim"
)

// RunRecordVersion is incremented when the format changes.
const RunRecordVersion = 1

// RunRecord captures the outcome of one complete run for the external
// dashboard: where the population started, where it ended, and the final
// grid state for rendering.
type RunRecord struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Steps      int  `json:"steps"`
	Converged  bool `json:"converged"`
	TotalMoves int  `json:"total_moves"`

	InitialSegregation float64 `json:"initial_segregation"`
	FinalSegregation   float64 `json:"final_segregation"`

	Income IncomeSummary `json:"income"`

	Final sim.Snapshot `json:"final"`
}

// SaveRunRecord writes a run record to dir as run_<steps>.json and returns
// the path where it was saved.
func SaveRunRecord(rec *RunRecord, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create run record dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("run_%d.json", rec.Steps))

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write run record: %w", err)
	}

	return path, nil
}

// LoadRunRecord reads a run record from disk.
func LoadRunRecord(path string) (*RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run record: %w", err)
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal run record: %w", err)
	}

	return &rec, nil
}
