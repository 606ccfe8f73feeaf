package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"streamhub/internal/streams"
)

// AppendSegment records metadata for a segment produced by an external
// segmenter. The stream must exist; segment bytes are never touched.
func (s *Store) AppendSegment(ctx context.Context, segment *streams.Segment) (*streams.Segment, error) {
	if segment == nil {
		return nil, fmt.Errorf("segment is nil")
	}
	if strings.TrimSpace(segment.URI) == "" {
		return nil, streams.Wrap(streams.ErrValidation, "append segment", "uri must not be empty", nil)
	}
	if segment.Sequence < 0 {
		return nil, streams.Wrap(streams.ErrValidation, "append segment",
			fmt.Sprintf("sequence must not be negative, got %d", segment.Sequence), nil)
	}
	if _, err := s.GetStream(ctx, segment.StreamID); err != nil {
		return nil, err
	}
	if segment.CreatedAt.IsZero() {
		segment.CreatedAt = time.Now().UTC()
	}
	if segment.DurationSecs <= 0 {
		segment.DurationSecs = 6.0
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO segments (stream_id, sequence, uri, duration_secs, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		segment.StreamID,
		segment.Sequence,
		segment.URI,
		segment.DurationSecs,
		segment.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert segment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	segment.ID = id
	return segment, nil
}

// ListSegments returns segment metadata for a stream ordered by sequence.
func (s *Store) ListSegments(ctx context.Context, streamID string) ([]*streams.Segment, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, stream_id, sequence, uri, duration_secs, created_at
         FROM segments WHERE stream_id = ? ORDER BY sequence, id`,
		streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	defer rows.Close()

	var segments []*streams.Segment
	for rows.Next() {
		var (
			segment    streams.Segment
			createdRaw sql.NullString
		)
		if err := rows.Scan(&segment.ID, &segment.StreamID, &segment.Sequence, &segment.URI, &segment.DurationSecs, &createdRaw); err != nil {
			return nil, err
		}
		if created, err := parseTimeString(createdRaw.String); err == nil {
			segment.CreatedAt = created
		}
		segments = append(segments, &segment)
	}
	return segments, rows.Err()
}

// CountSegments returns the total number of stored segments.
func (s *Store) CountSegments(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM segments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count segments: %w", err)
	}
	return count, nil
}
