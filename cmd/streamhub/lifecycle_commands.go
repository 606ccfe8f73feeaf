package main

import (
	"github.com/spf13/cobra"

	"streamhub/internal/config"
	"streamhub/internal/lifecycle"
	"streamhub/internal/store"
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start <stream-id>",
		Short: "Start a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withController(func(_ *config.Config, _ *store.Store, controller *lifecycle.Controller) error {
				stream, err := controller.Start(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, newStreamView(stream))
			})
		},
	}
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <stream-id>",
		Short: "Stop a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withController(func(_ *config.Config, _ *store.Store, controller *lifecycle.Controller) error {
				stream, err := controller.Stop(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, newStreamView(stream))
			})
		},
	}
}
