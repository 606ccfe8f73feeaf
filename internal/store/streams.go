package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"streamhub/internal/streams"
)

// CreateParams carries the caller-supplied fields for a new stream.
type CreateParams struct {
	Name        string
	SourceURL   string
	TargetURL   string
	Protocol    string
	BitrateKbps int
}

func (p CreateParams) validate() (streams.Protocol, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", streams.Wrap(streams.ErrValidation, "create stream", "name must not be empty", nil)
	}
	if strings.TrimSpace(p.SourceURL) == "" {
		return "", streams.Wrap(streams.ErrValidation, "create stream", "source_url must not be empty", nil)
	}
	protocol, ok := streams.ParseProtocol(p.Protocol)
	if !ok {
		return "", streams.Wrap(streams.ErrValidation, "create stream",
			fmt.Sprintf("unrecognized protocol %q", p.Protocol), nil)
	}
	if p.BitrateKbps <= 0 {
		return "", streams.Wrap(streams.ErrValidation, "create stream",
			fmt.Sprintf("bitrate_kbps must be positive, got %d", p.BitrateKbps), nil)
	}
	return protocol, nil
}

// CreateStream validates params, assigns an id, and inserts a new stream in
// the CREATED state.
func (s *Store) CreateStream(ctx context.Context, params CreateParams) (*streams.Stream, error) {
	protocol, err := params.validate()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stream := &streams.Stream{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(params.Name),
		SourceURL:   strings.TrimSpace(params.SourceURL),
		TargetURL:   strings.TrimSpace(params.TargetURL),
		Protocol:    protocol,
		BitrateKbps: params.BitrateKbps,
		Status:      streams.StatusCreated,
		CreatedAt:   now,
	}

	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO streams (
            id, name, source_url, target_url, protocol, bitrate_kbps,
            status, created_at, started_at, stopped_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stream.ID,
		stream.Name,
		stream.SourceURL,
		stream.TargetURL,
		string(stream.Protocol),
		stream.BitrateKbps,
		string(stream.Status),
		now.Format(time.RFC3339Nano),
		nil,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("insert stream: %w", err)
	}
	return stream, nil
}

// GetStream fetches a stream by identifier.
func (s *Store) GetStream(ctx context.Context, id string) (*streams.Stream, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+streamColumns+` FROM streams WHERE id = ?`, id)
	stream, err := scanStream(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, streams.Wrap(streams.ErrNotFound, "get stream", fmt.Sprintf("stream %s not found", id), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get stream: %w", err)
	}
	return stream, nil
}

// UpdateStream persists a full-record replace of an existing stream. The
// single UPDATE statement is the serialization point for concurrent mutations
// on one record.
func (s *Store) UpdateStream(ctx context.Context, stream *streams.Stream) error {
	if stream == nil {
		return errors.New("stream is nil")
	}
	res, err := s.execWithRetry(
		ctx,
		`UPDATE streams
         SET name = ?, source_url = ?, target_url = ?, protocol = ?,
             bitrate_kbps = ?, status = ?, started_at = ?, stopped_at = ?
         WHERE id = ?`,
		stream.Name,
		stream.SourceURL,
		stream.TargetURL,
		string(stream.Protocol),
		stream.BitrateKbps,
		string(stream.Status),
		nullableTime(stream.StartedAt),
		nullableTime(stream.StoppedAt),
		stream.ID,
	)
	if err != nil {
		return fmt.Errorf("update stream: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return streams.Wrap(streams.ErrNotFound, "update stream", fmt.Sprintf("stream %s not found", stream.ID), nil)
	}
	return nil
}

// ListStreams returns streams filtered by status set (or all streams when no
// status is provided), ordered by creation time.
func (s *Store) ListStreams(ctx context.Context, statuses ...streams.Status) ([]*streams.Stream, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + streamColumns + ` FROM streams`
	orderClause := ` ORDER BY created_at, id`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = string(status)
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}
	defer rows.Close()

	var result []*streams.Stream
	for rows.Next() {
		stream, err := scanStream(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, stream)
	}
	return result, rows.Err()
}

// StatusCounts returns a count of streams grouped by status.
func (s *Store) StatusCounts(ctx context.Context) (map[streams.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM streams GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[streams.Status]int)
	for rows.Next() {
		var status streams.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// ProtocolCounts returns a count of streams grouped by protocol.
func (s *Store) ProtocolCounts(ctx context.Context) (map[streams.Protocol]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT protocol, COUNT(1) FROM streams GROUP BY protocol`)
	if err != nil {
		return nil, fmt.Errorf("protocol counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[streams.Protocol]int)
	for rows.Next() {
		var protocol streams.Protocol
		var count int
		if err := rows.Scan(&protocol, &count); err != nil {
			return nil, err
		}
		counts[protocol] = count
	}
	return counts, rows.Err()
}

// AvgBitrate returns the average nominal bitrate of streams in the given
// status, or 0 when none match.
func (s *Store) AvgBitrate(ctx context.Context, status streams.Status) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT AVG(bitrate_kbps) FROM streams WHERE status = ?`,
		string(status),
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average bitrate: %w", err)
	}
	return avg.Float64, nil
}

const streamColumns = "id, name, source_url, target_url, protocol, bitrate_kbps, status, created_at, started_at, stopped_at"

func scanStream(scanner interface{ Scan(dest ...any) error }) (*streams.Stream, error) {
	var (
		id          string
		name        string
		sourceURL   string
		targetURL   string
		protocolStr string
		bitrate     int
		statusStr   string
		createdRaw  sql.NullString
		startedRaw  sql.NullString
		stoppedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&name,
		&sourceURL,
		&targetURL,
		&protocolStr,
		&bitrate,
		&statusStr,
		&createdRaw,
		&startedRaw,
		&stoppedRaw,
	); err != nil {
		return nil, err
	}

	stream := &streams.Stream{
		ID:          id,
		Name:        name,
		SourceURL:   sourceURL,
		TargetURL:   targetURL,
		Protocol:    streams.Protocol(protocolStr),
		BitrateKbps: bitrate,
		Status:      streams.Status(statusStr),
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		stream.CreatedAt = created
	}
	if startedRaw.Valid {
		if started, err := parseTimeString(startedRaw.String); err == nil {
			stream.StartedAt = &started
		}
	}
	if stoppedRaw.Valid {
		if stopped, err := parseTimeString(stoppedRaw.String); err == nil {
			stream.StoppedAt = &stopped
		}
	}
	return stream, nil
}
