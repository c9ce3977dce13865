package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-leaknet/pkg/export"
	"github.com/dd0wney/cluso-leaknet/pkg/gexf"
	"github.com/dd0wney/cluso-leaknet/pkg/logging"
	"github.com/dd0wney/cluso-leaknet/pkg/visualization"
)

func newLayoutCmd(a *app) *cobra.Command {
	var layoutFile, attributesFile string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Summarize a laid-out officer graph by modularity class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layout, err := gexf.ReadLayoutFile(layoutFile)
			if err != nil {
				return err
			}
			attrs, err := export.ReadOfficerAttributes(attributesFile)
			if err != nil {
				return err
			}

			report := visualization.Summarize(layout, attrs)
			a.logger.Info("layout summarized",
				logging.Path(layoutFile),
				logging.Int("nodes", report.Nodes),
				logging.Int("matched", report.Matched),
				logging.Int("classes", len(report.Classes)),
			)
			if report.Matched < report.Nodes {
				a.logger.Warn("layout nodes without attributes", logging.Count(report.Nodes-report.Matched))
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderLayout(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&layoutFile, "layout", "", "GEXF file written by the layout tool")
	cmd.Flags().StringVar(&attributesFile, "attributes", "", "officers_attributes table (.csv or .csv.sz)")
	cmd.MarkFlagRequired("layout")
	cmd.MarkFlagRequired("attributes")
	return cmd
}
