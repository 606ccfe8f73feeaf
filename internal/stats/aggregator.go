package stats

import (
	"context"

	"streamhub/internal/store"
	"streamhub/internal/streams"
)

// Summary aggregates counts and rates over stored streams and health samples.
type Summary struct {
	TotalStreams       int                      `json:"total_streams"`
	ByStatus           map[streams.Status]int   `json:"by_status"`
	ByProtocol         map[streams.Protocol]int `json:"by_protocol"`
	AvgBitrateRunning  float64                  `json:"avg_bitrate_running_kbps"`
	TotalHealthSamples int                      `json:"total_health_samples"`
	TotalSegments      int                      `json:"total_segments"`
}

// Aggregator computes summaries. It never mutates anything.
type Aggregator struct {
	store *store.Store
}

// NewAggregator constructs an aggregator over the given store.
func NewAggregator(st *store.Store) *Aggregator {
	return &Aggregator{store: st}
}

// Compute builds a Summary. An empty store yields all-zero counts; the
// running average is reported as zero when no stream is running.
func (a *Aggregator) Compute(ctx context.Context) (Summary, error) {
	byStatus, err := a.store.StatusCounts(ctx)
	if err != nil {
		return Summary{}, err
	}
	byProtocol, err := a.store.ProtocolCounts(ctx)
	if err != nil {
		return Summary{}, err
	}
	avgRunning, err := a.store.AvgBitrate(ctx, streams.StatusRunning)
	if err != nil {
		return Summary{}, err
	}
	totalSamples, err := a.store.CountHealth(ctx, "")
	if err != nil {
		return Summary{}, err
	}
	totalSegments, err := a.store.CountSegments(ctx)
	if err != nil {
		return Summary{}, err
	}

	total := 0
	for _, count := range byStatus {
		total += count
	}

	return Summary{
		TotalStreams:       total,
		ByStatus:           byStatus,
		ByProtocol:         byProtocol,
		AvgBitrateRunning:  avgRunning,
		TotalHealthSamples: totalSamples,
		TotalSegments:      totalSegments,
	}, nil
}
