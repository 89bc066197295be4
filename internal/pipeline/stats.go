// file: internal/pipeline/stats.go
// version: 1.0.0
// guid: 4b86bffd-7bed-4df2-b8b2-864d7de11f87

package pipeline

// RunStats tracks counters across a batch run
type RunStats struct {
	Total   int
	Current int
	Renamed int
	Planned int
	Skipped int
	Failed  int
}

// Processed is the number of files that finished without error
func (s RunStats) Processed() int {
	return s.Renamed + s.Planned + s.Skipped
}
