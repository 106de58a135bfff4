package domain

import "time"

// SummarySpec declares one summary table: which canonical source table it
// reads, the grouping dimensions, and the measures to compute.
type SummarySpec struct {
	Name    string
	Source  string // canonical table name in the data model
	GroupBy []string
	Aggs    []Aggregation
}

// SummaryArtifact records one written summary table for the run manifest.
type SummaryArtifact struct {
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	File      string    `json:"file"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// RunManifest indexes everything tm2kit produced for one model run.
type RunManifest struct {
	ID        string            `json:"id"`
	RunDir    string            `json:"run_dir"`
	Iteration int               `json:"iteration"`
	CreatedAt time.Time         `json:"created_at"`
	Summaries []SummaryArtifact `json:"summaries"`
}

// ArchiveManifest records one archived model run.
type ArchiveManifest struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	SourceDir string        `json:"source_dir"`
	Archive   string        `json:"archive"`
	Entries   []ArchiveItem `json:"entries"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
}

// ArchiveItem is one subdirectory bundled into the archive.
type ArchiveItem struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}
