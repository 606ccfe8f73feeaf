package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamhub/internal/config"
	"streamhub/internal/store"
	"streamhub/internal/streams"
)

func newSegmentCommand(ctx *commandContext) *cobra.Command {
	segmentCmd := &cobra.Command{
		Use:   "segment",
		Short: "Record and inspect segment metadata",
	}

	segmentCmd.AddCommand(newSegmentAddCommand(ctx))
	segmentCmd.AddCommand(newSegmentListCommand(ctx))

	return segmentCmd
}

func newSegmentAddCommand(ctx *commandContext) *cobra.Command {
	var (
		sequence     int64
		uri          string
		durationSecs float64
	)

	cmd := &cobra.Command{
		Use:   "add <stream-id>",
		Short: "Register a segment produced by an external segmenter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				segment, err := st.AppendSegment(cmd.Context(), &streams.Segment{
					StreamID:     args[0],
					Sequence:     sequence,
					URI:          uri,
					DurationSecs: durationSecs,
				})
				if err != nil {
					return err
				}
				return writeJSON(cmd, newSegmentView(segment))
			})
		},
	}

	cmd.Flags().Int64Var(&sequence, "sequence", 0, "Segment sequence number")
	cmd.Flags().StringVar(&uri, "uri", "", "Segment URI")
	cmd.Flags().Float64Var(&durationSecs, "duration", 6.0, "Segment duration in seconds")
	_ = cmd.MarkFlagRequired("uri")

	return cmd
}

func newSegmentListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <stream-id>",
		Short: "List registered segments for a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				if _, err := st.GetStream(cmd.Context(), args[0]); err != nil {
					return err
				}
				segments, err := st.ListSegments(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(segments) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No segments")
					return nil
				}
				views := make([]segmentView, 0, len(segments))
				for _, segment := range segments {
					views = append(views, newSegmentView(segment))
				}
				return writeJSON(cmd, views)
			})
		},
	}
}
