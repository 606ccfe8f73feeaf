package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamhub/internal/config"
	"streamhub/internal/playlist"
	"streamhub/internal/store"
	"streamhub/internal/streams"
)

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "playlist",
		Short: "Generate an M3U8 master playlist of running streams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				running, err := st.ListStreams(cmd.Context(), streams.StatusRunning)
				if err != nil {
					return err
				}
				generator := playlist.NewGenerator(cfg.Playlist.Version)
				fmt.Fprint(cmd.OutOrStdout(), generator.Master(running))
				return nil
			})
		},
	}
}

func newHLSConfigCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hls-config <stream-id>",
		Short: "Emit the HLS rendition ladder for a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				stream, err := st.GetStream(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, playlist.VariantLadder(stream))
			})
		},
	}
}
