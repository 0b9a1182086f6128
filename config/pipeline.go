package config

import "time"

// PipelineConfig holds the tuning knobs for schedule generation and
// content indexing. Values mirror what the product shipped with; they are
// read once at startup and treated as constants afterwards.
type PipelineConfig struct {
	LookbackDays int // telemetry window fed into the miner

	ChunkSize    int // max characters per embedded chunk
	ChunkOverlap int // characters shared between adjacent chunks
	BatchSize    int // items embedded per batch

	MaxWorkPatterns     int // top patterns handed to the LLM
	MaxArtifactPatterns int
	MaxProjects         int
	RetrievalLimit      int // chunks retrieved per draft task
	SummaryTopN         int // activity types / languages in the summaries

	MinEventGap      time.Duration // required space between events
	MaxEventDuration time.Duration
}

var Pipeline = PipelineConfig{
	LookbackDays: 30,

	ChunkSize:    1000,
	ChunkOverlap: 200,
	BatchSize:    100,

	MaxWorkPatterns:     10,
	MaxArtifactPatterns: 10,
	MaxProjects:         5,
	RetrievalLimit:      5,
	SummaryTopN:         5,

	MinEventGap:      15 * time.Minute,
	MaxEventDuration: 3 * time.Hour,
}
