package main

import (
	"time"

	"streamhub/internal/streams"
)

// streamView is the JSON shape emitted for stream records.
type streamView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SourceURL   string `json:"source_url"`
	TargetURL   string `json:"target_url,omitempty"`
	Protocol    string `json:"protocol"`
	BitrateKbps int    `json:"bitrate_kbps"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	StartedAt   string `json:"started_at,omitempty"`
	StoppedAt   string `json:"stopped_at,omitempty"`
}

func newStreamView(stream *streams.Stream) streamView {
	view := streamView{
		ID:          stream.ID,
		Name:        stream.Name,
		SourceURL:   stream.SourceURL,
		TargetURL:   stream.TargetURL,
		Protocol:    string(stream.Protocol),
		BitrateKbps: stream.BitrateKbps,
		Status:      string(stream.Status),
		CreatedAt:   stream.CreatedAt.Format(time.RFC3339),
	}
	if stream.StartedAt != nil {
		view.StartedAt = stream.StartedAt.Format(time.RFC3339)
	}
	if stream.StoppedAt != nil {
		view.StoppedAt = stream.StoppedAt.Format(time.RFC3339)
	}
	return view
}

// sampleView is the JSON shape emitted for health samples.
type sampleView struct {
	ID            int64  `json:"id"`
	StreamID      string `json:"stream_id"`
	Verdict       string `json:"verdict"`
	BitrateKbps   int    `json:"bitrate_kbps"`
	DroppedFrames int    `json:"dropped_frames"`
	LatencyMS     int    `json:"latency_ms"`
	BufferMS      int    `json:"buffer_ms"`
	RecordedAt    string `json:"recorded_at"`
}

func newSampleView(sample *streams.Sample) sampleView {
	return sampleView{
		ID:            sample.ID,
		StreamID:      sample.StreamID,
		Verdict:       string(sample.Verdict),
		BitrateKbps:   sample.BitrateKbps,
		DroppedFrames: sample.DroppedFrames,
		LatencyMS:     sample.LatencyMS,
		BufferMS:      sample.BufferMS,
		RecordedAt:    sample.RecordedAt.Format(time.RFC3339),
	}
}

// segmentView is the JSON shape emitted for segment metadata.
type segmentView struct {
	ID           int64   `json:"id"`
	StreamID     string  `json:"stream_id"`
	Sequence     int64   `json:"sequence"`
	URI          string  `json:"uri"`
	DurationSecs float64 `json:"duration_secs"`
	CreatedAt    string  `json:"created_at"`
}

func newSegmentView(segment *streams.Segment) segmentView {
	return segmentView{
		ID:           segment.ID,
		StreamID:     segment.StreamID,
		Sequence:     segment.Sequence,
		URI:          segment.URI,
		DurationSecs: segment.DurationSecs,
		CreatedAt:    segment.CreatedAt.Format(time.RFC3339),
	}
}
