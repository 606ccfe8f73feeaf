package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamhub/internal/config"
	"streamhub/internal/health"
	"streamhub/internal/store"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var (
		bitrate       int
		droppedFrames int
		latencyMS     int
		bufferMS      int
	)

	cmd := &cobra.Command{
		Use:   "health <stream-id>",
		Short: "Record a health check for a running stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecorder(func(_ *config.Config, _ *store.Store, recorder *health.Recorder) error {
				sample, err := recorder.Record(cmd.Context(), args[0], health.Measurement{
					BitrateKbps:   bitrate,
					DroppedFrames: droppedFrames,
					LatencyMS:     latencyMS,
					BufferMS:      bufferMS,
				})
				if err != nil {
					return err
				}
				return writeJSON(cmd, newSampleView(sample))
			})
		},
	}

	cmd.Flags().IntVar(&bitrate, "bitrate", 0, "Measured bitrate in kbps (0 uses the stream's nominal bitrate)")
	cmd.Flags().IntVar(&droppedFrames, "dropped-frames", 0, "Frames dropped since the last check")
	cmd.Flags().IntVar(&latencyMS, "latency-ms", 0, "Measured latency in milliseconds")
	cmd.Flags().IntVar(&bufferMS, "buffer-ms", 0, "Buffer depth in milliseconds")

	return cmd
}

func newHealthHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "health-history <stream-id>",
		Short: "Show recorded health checks for a stream, newest last",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				// Surface not-found before listing an empty history.
				if _, err := st.GetStream(cmd.Context(), args[0]); err != nil {
					return err
				}
				samples, err := st.ListHealth(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}
				if len(samples) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No health samples")
					return nil
				}
				views := make([]sampleView, 0, len(samples))
				for _, sample := range samples {
					views = append(views, newSampleView(sample))
				}
				return writeJSON(cmd, views)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of trailing samples to show (0 for all)")

	return cmd
}
