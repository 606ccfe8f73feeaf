package health

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"streamhub/internal/config"
	"streamhub/internal/lifecycle"
	"streamhub/internal/store"
	"streamhub/internal/streams"
)

// Per-sample verdict thresholds.
const (
	degradedDroppedFrames = 50
	criticalDroppedFrames = 200
	criticalLatencyMS     = 5000
)

// Measurement carries the caller-supplied values for one health check.
// BitrateKbps of 0 means "use the stream's nominal bitrate".
type Measurement struct {
	BitrateKbps   int
	DroppedFrames int
	LatencyMS     int
	BufferMS      int
}

func (m Measurement) validate() error {
	if m.BitrateKbps < 0 {
		return streams.Wrap(streams.ErrValidation, "record health", "bitrate_kbps must not be negative", nil)
	}
	if m.DroppedFrames < 0 {
		return streams.Wrap(streams.ErrValidation, "record health", "dropped_frames must not be negative", nil)
	}
	if m.LatencyMS < 0 {
		return streams.Wrap(streams.ErrValidation, "record health", "latency_ms must not be negative", nil)
	}
	if m.BufferMS < 0 {
		return streams.Wrap(streams.ErrValidation, "record health", "buffer_ms must not be negative", nil)
	}
	return nil
}

// Recorder appends health samples and applies the degradation policy. It holds
// only the lifecycle controller's narrow degrade capability, not the
// controller itself.
type Recorder struct {
	store   *store.Store
	degrade lifecycle.Degrade
	policy  config.Health
	logger  *slog.Logger
}

// NewRecorder constructs a recorder. A nil logger disables logging.
func NewRecorder(st *store.Store, degrade lifecycle.Degrade, policy config.Health, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Recorder{store: st, degrade: degrade, policy: policy, logger: logger}
}

// Record appends a sample for a running stream, then re-evaluates the rolling
// verdict over the trailing window. The recorded sample is returned even when
// the degraded verdict transitions the stream to error.
func (r *Recorder) Record(ctx context.Context, streamID string, m Measurement) (*streams.Sample, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	stream, err := r.store.GetStream(ctx, streamID)
	if err != nil {
		return nil, err
	}
	if stream.Status != streams.StatusRunning {
		return nil, streams.Wrap(streams.ErrInvalidState, "record health",
			fmt.Sprintf("stream %s is %s, health can only be recorded while running", streamID, stream.Status), nil)
	}

	bitrate := m.BitrateKbps
	if bitrate == 0 {
		bitrate = stream.BitrateKbps
	}

	sample := &streams.Sample{
		StreamID:      stream.ID,
		Verdict:       sampleVerdict(m.DroppedFrames, m.LatencyMS),
		BitrateKbps:   bitrate,
		DroppedFrames: m.DroppedFrames,
		LatencyMS:     m.LatencyMS,
		BufferMS:      m.BufferMS,
		RecordedAt:    time.Now().UTC(),
	}
	if _, err := r.store.AppendHealth(ctx, sample); err != nil {
		return nil, err
	}
	r.logger.Debug("health sample recorded",
		"stream_id", stream.ID,
		"verdict", string(sample.Verdict),
		"bitrate_kbps", sample.BitrateKbps,
		"dropped_frames", sample.DroppedFrames,
		"latency_ms", sample.LatencyMS,
	)

	reason, degraded, err := r.evaluateWindow(ctx, stream)
	if err != nil {
		return nil, err
	}
	if degraded {
		if err := r.degrade(ctx, stream.ID, reason); err != nil {
			return nil, err
		}
	}
	return sample, nil
}

// sampleVerdict classifies one measurement on its own.
func sampleVerdict(droppedFrames, latencyMS int) streams.Verdict {
	switch {
	case droppedFrames > criticalDroppedFrames || latencyMS > criticalLatencyMS:
		return streams.VerdictCritical
	case droppedFrames > degradedDroppedFrames:
		return streams.VerdictDegraded
	default:
		return streams.VerdictHealthy
	}
}

// evaluateWindow applies the threshold rules over the trailing window. The
// result is deterministic given the window contents and the stream's nominal
// bitrate.
func (r *Recorder) evaluateWindow(ctx context.Context, stream *streams.Stream) (string, bool, error) {
	window, err := r.store.ListHealth(ctx, stream.ID, r.policy.WindowSize)
	if err != nil {
		return "", false, err
	}
	if len(window) < r.policy.WindowSize {
		return "", false, nil
	}

	var droppedSum, latencySum, bitrateSum int
	for _, sample := range window {
		droppedSum += sample.DroppedFrames
		latencySum += sample.LatencyMS
		bitrateSum += sample.BitrateKbps
	}
	n := float64(len(window))
	avgDropped := float64(droppedSum) / n
	avgLatency := float64(latencySum) / n
	avgBitrate := float64(bitrateSum) / n
	bitrateFloor := r.policy.MinBitrateRatio * float64(stream.BitrateKbps)

	switch {
	case avgDropped > float64(r.policy.MaxDroppedFrames):
		return fmt.Sprintf("average dropped frames %.1f above threshold %d", avgDropped, r.policy.MaxDroppedFrames), true, nil
	case avgLatency > float64(r.policy.MaxLatencyMS):
		return fmt.Sprintf("average latency %.0fms above ceiling %dms", avgLatency, r.policy.MaxLatencyMS), true, nil
	case avgBitrate < bitrateFloor:
		return fmt.Sprintf("average bitrate %.0fkbps below floor %.0fkbps", avgBitrate, bitrateFloor), true, nil
	default:
		return "", false, nil
	}
}
