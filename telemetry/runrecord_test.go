package telemetry

import (
	"reflect"
	"testing"

	"enclave/sim"
)

func TestRunRecordRoundTrip(t *testing.T) {
	rec := &RunRecord{
		Version:            RunRecordVersion,
		Seed:               42,
		Steps:              17,
		Converged:          true,
		TotalMoves:         123,
		InitialSegregation: 0.41,
		FinalSegregation:   0.78,
		Income:             IncomeSummary{Mean: 0.5, Std: 0.2, P10: 0.2, P50: 0.5, P90: 0.8},
		Final: sim.Snapshot{
			Step:      17,
			Width:     50,
			Height:    50,
			Seed:      42,
			Converged: true,
			Cells: []sim.CellView{
				{X: 3, Y: 4, AgentID: 0, Income: 0.5, Threshold: 0.3, HasMoved: true},
				{X: 9, Y: 1, AgentID: 1, Income: 0.7, Threshold: 0.9},
			},
		},
	}

	dir := t.TempDir()
	path, err := SaveRunRecord(rec, dir)
	if err != nil {
		t.Fatalf("SaveRunRecord failed: %v", err)
	}

	back, err := LoadRunRecord(path)
	if err != nil {
		t.Fatalf("LoadRunRecord failed: %v", err)
	}
	if !reflect.DeepEqual(rec, back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, rec)
	}
}

func TestLoadRunRecordMissing(t *testing.T) {
	if _, err := LoadRunRecord(t.TempDir() + "/run_0.json"); err == nil {
		t.Fatal("LoadRunRecord accepted a missing file")
	}
}
