package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"streamhub/internal/streams"
)

// AppendHealth inserts an immutable health sample and returns it with its
// assigned id. Precondition checks (stream exists and is running) belong to
// the health recorder, not the store.
func (s *Store) AppendHealth(ctx context.Context, sample *streams.Sample) (*streams.Sample, error) {
	if sample == nil {
		return nil, fmt.Errorf("sample is nil")
	}
	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = time.Now().UTC()
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO health_samples (
            stream_id, verdict, bitrate_kbps, dropped_frames, latency_ms, buffer_ms, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sample.StreamID,
		string(sample.Verdict),
		sample.BitrateKbps,
		sample.DroppedFrames,
		sample.LatencyMS,
		sample.BufferMS,
		sample.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert health sample: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	sample.ID = id
	return sample, nil
}

// ListHealth returns samples for a stream ordered oldest first, newest last.
// A limit of 0 or less returns all samples; otherwise the trailing limit
// samples are returned.
func (s *Store) ListHealth(ctx context.Context, streamID string, limit int) ([]*streams.Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM health_samples WHERE stream_id = ? ORDER BY id`
	args := []any{streamID}
	if limit > 0 {
		// Trailing window: take the newest rows, then restore ascending order.
		query = `SELECT ` + sampleColumns + ` FROM (
            SELECT ` + sampleColumns + ` FROM health_samples WHERE stream_id = ? ORDER BY id DESC LIMIT ?
        ) ORDER BY id`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list health samples: %w", err)
	}
	defer rows.Close()

	var samples []*streams.Sample
	for rows.Next() {
		sample, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

// CountHealth returns the total number of stored health samples, across all
// streams when streamID is empty.
func (s *Store) CountHealth(ctx context.Context, streamID string) (int, error) {
	var (
		count int
		err   error
	)
	if streamID == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM health_samples`).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM health_samples WHERE stream_id = ?`, streamID).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count health samples: %w", err)
	}
	return count, nil
}

const sampleColumns = "id, stream_id, verdict, bitrate_kbps, dropped_frames, latency_ms, buffer_ms, recorded_at"

func scanSample(scanner interface{ Scan(dest ...any) error }) (*streams.Sample, error) {
	var (
		id          int64
		streamID    string
		verdict     string
		bitrate     int
		dropped     int
		latency     int
		buffer      int
		recordedRaw sql.NullString
	)

	if err := scanner.Scan(&id, &streamID, &verdict, &bitrate, &dropped, &latency, &buffer, &recordedRaw); err != nil {
		return nil, err
	}

	sample := &streams.Sample{
		ID:            id,
		StreamID:      streamID,
		Verdict:       streams.Verdict(verdict),
		BitrateKbps:   bitrate,
		DroppedFrames: dropped,
		LatencyMS:     latency,
		BufferMS:      buffer,
	}
	if recorded, err := parseTimeString(recordedRaw.String); err == nil {
		sample.RecordedAt = recorded
	}
	return sample, nil
}
