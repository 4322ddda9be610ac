package domain

import "time"

// Signal is one row of precomputed stock analysis for a given
// aggregation window. Rows are written by the analysis pipeline;
// this service only reads them.
type Signal struct {
	ID          int64
	Symbol      string
	CreatedAt   time.Time
	Pattern     string
	PatternType string
	Sentiment   string
	TotalChange float64
	Strength    int
	WindowMins  int
	Close       float64
	Avg3DPerf   float64
}

// Stock is a listed ticker known to the analysis pipeline.
type Stock struct {
	ID       int64
	Symbol   string
	Name     string
	Exchange string
}
