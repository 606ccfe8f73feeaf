package lifecycle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"streamhub/internal/store"
	"streamhub/internal/streams"
)

// Controller drives stream lifecycle transitions through the store.
type Controller struct {
	store  *store.Store
	logger *slog.Logger
}

// NewController constructs a controller. A nil logger disables logging.
func NewController(st *store.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{store: st, logger: logger}
}

// Create validates and persists a new stream in the created state.
func (c *Controller) Create(ctx context.Context, params store.CreateParams) (*streams.Stream, error) {
	stream, err := c.store.CreateStream(ctx, params)
	if err != nil {
		return nil, err
	}
	c.logger.Info("stream created",
		"stream_id", stream.ID,
		"name", stream.Name,
		"protocol", string(stream.Protocol),
		"bitrate_kbps", stream.BitrateKbps,
	)
	return stream, nil
}

// Start transitions a stream to running. Starting an already running stream
// is a no-op returning the current record. Restarting a stopped stream sets a
// fresh started_at and clears stopped_at. Starting from error is rejected;
// the stream must be stopped first.
func (c *Controller) Start(ctx context.Context, id string) (*streams.Stream, error) {
	stream, err := c.store.GetStream(ctx, id)
	if err != nil {
		return nil, err
	}

	switch stream.Status {
	case streams.StatusRunning:
		return stream, nil
	case streams.StatusCreated, streams.StatusStopped:
	case streams.StatusError:
		return nil, streams.Wrap(streams.ErrInvalidTransition, "start stream",
			fmt.Sprintf("stream %s is in error state, stop it before restarting", id), nil)
	default:
		return nil, streams.Wrap(streams.ErrInvalidTransition, "start stream",
			fmt.Sprintf("cannot start stream %s from status %s", id, stream.Status), nil)
	}

	now := time.Now().UTC()
	stream.Status = streams.StatusRunning
	stream.StartedAt = &now
	stream.StoppedAt = nil
	if err := c.store.UpdateStream(ctx, stream); err != nil {
		return nil, err
	}
	c.logger.Info("stream started", "stream_id", stream.ID, "name", stream.Name)
	return stream, nil
}

// Stop transitions a running or errored stream to stopped. Stopping an
// already stopped stream is a no-op returning the current record. A stream
// that was never started cannot be stopped.
func (c *Controller) Stop(ctx context.Context, id string) (*streams.Stream, error) {
	stream, err := c.store.GetStream(ctx, id)
	if err != nil {
		return nil, err
	}

	switch stream.Status {
	case streams.StatusStopped:
		return stream, nil
	case streams.StatusRunning, streams.StatusError:
	case streams.StatusCreated:
		return nil, streams.Wrap(streams.ErrInvalidTransition, "stop stream",
			fmt.Sprintf("stream %s was never started", id), nil)
	default:
		return nil, streams.Wrap(streams.ErrInvalidTransition, "stop stream",
			fmt.Sprintf("cannot stop stream %s from status %s", id, stream.Status), nil)
	}

	now := time.Now().UTC()
	stream.Status = streams.StatusStopped
	stream.StoppedAt = &now
	if err := c.store.UpdateStream(ctx, stream); err != nil {
		return nil, err
	}
	c.logger.Info("stream stopped", "stream_id", stream.ID, "name", stream.Name)
	return stream, nil
}

// Degrade is the narrow capability handed to the health recorder: it moves a
// running stream to error without touching started_at or stopped_at.
type Degrade func(ctx context.Context, id, reason string) error

// Degrader returns the internal degradation transition.
func (c *Controller) Degrader() Degrade {
	return c.markError
}

func (c *Controller) markError(ctx context.Context, id, reason string) error {
	stream, err := c.store.GetStream(ctx, id)
	if err != nil {
		return err
	}
	if stream.Status != streams.StatusRunning {
		return streams.Wrap(streams.ErrInvalidTransition, "degrade stream",
			fmt.Sprintf("cannot degrade stream %s from status %s", id, stream.Status), nil)
	}

	stream.Status = streams.StatusError
	if err := c.store.UpdateStream(ctx, stream); err != nil {
		return err
	}
	c.logger.Warn("stream degraded to error", "stream_id", stream.ID, "reason", reason)
	return nil
}
