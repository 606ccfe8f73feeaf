package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamhub/internal/config"
	"streamhub/internal/store"
	"streamhub/internal/streams"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		statusFilter string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List streams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				var filter []streams.Status
				if statusFilter != "" {
					status, ok := streams.ParseStatus(statusFilter)
					if !ok {
						return streams.Wrap(streams.ErrValidation, "list streams",
							fmt.Sprintf("unknown status %q", statusFilter), nil)
					}
					filter = append(filter, status)
				}

				list, err := st.ListStreams(cmd.Context(), filter...)
				if err != nil {
					return err
				}

				if asJSON {
					views := make([]streamView, 0, len(list))
					for _, stream := range list {
						views = append(views, newStreamView(stream))
					}
					return writeJSON(cmd, views)
				}

				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No streams")
					return nil
				}
				rows := make([][]string, 0, len(list))
				for _, stream := range list {
					rows = append(rows, []string{
						stream.ID,
						stream.Name,
						string(stream.Protocol),
						fmt.Sprintf("%d", stream.BitrateKbps),
						string(stream.Status),
					})
				}
				table := renderTable(
					[]string{"ID", "Name", "Protocol", "Bitrate (kbps)", "Status"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status: created, running, stopped, or error")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")

	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <stream-id>",
		Short: "Show one stream record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				stream, err := st.GetStream(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, newStreamView(stream))
			})
		},
	}
}
