package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"streamhub/internal/config"
	"streamhub/internal/stats"
	"streamhub/internal/store"
	"streamhub/internal/streams"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show summary counts over streams and health samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				summary, err := stats.NewAggregator(st).Compute(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, summary)
				}

				printer := message.NewPrinter(language.English)
				rows := [][]string{
					{"Total streams", printer.Sprintf("%d", summary.TotalStreams)},
				}
				for _, status := range streams.AllStatuses() {
					if count, ok := summary.ByStatus[status]; ok {
						rows = append(rows, []string{"Status " + string(status), printer.Sprintf("%d", count)})
					}
				}
				for _, protocol := range streams.AllProtocols() {
					if count, ok := summary.ByProtocol[protocol]; ok {
						rows = append(rows, []string{"Protocol " + string(protocol), printer.Sprintf("%d", count)})
					}
				}
				rows = append(rows,
					[]string{"Avg bitrate (running)", printer.Sprintf("%.0f kbps", summary.AvgBitrateRunning)},
					[]string{"Health samples", printer.Sprintf("%d", summary.TotalHealthSamples)},
					[]string{"Segments", printer.Sprintf("%d", summary.TotalSegments)},
				)

				table := renderTable(
					[]string{"Metric", "Value"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")

	return cmd
}
