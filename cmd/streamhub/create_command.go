package main

import (
	"github.com/spf13/cobra"

	"streamhub/internal/config"
	"streamhub/internal/lifecycle"
	"streamhub/internal/store"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var (
		name     string
		source   string
		target   string
		protocol string
		bitrate  int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withController(func(_ *config.Config, _ *store.Store, controller *lifecycle.Controller) error {
				stream, err := controller.Create(cmd.Context(), store.CreateParams{
					Name:        name,
					SourceURL:   source,
					TargetURL:   target,
					Protocol:    protocol,
					BitrateKbps: bitrate,
				})
				if err != nil {
					return err
				}
				return writeJSON(cmd, newStreamView(stream))
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Human-readable stream label")
	cmd.Flags().StringVar(&source, "source", "", "Ingest endpoint URL")
	cmd.Flags().StringVar(&target, "target", "", "Egress endpoint URL (optional)")
	cmd.Flags().StringVar(&protocol, "protocol", "hls", "Stream protocol: hls, rtmp, dash, or srt")
	cmd.Flags().IntVar(&bitrate, "bitrate", 2000, "Nominal encoding bitrate in kbps")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}
