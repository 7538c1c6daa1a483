package main

import (
	"github.com/spf13/cobra"

	"github.com/martinb35/Bugger/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive bug dashboard",
		Long: `Opens a terminal dashboard that runs the analysis pipeline and shows
the rendered report. Press r to refresh, q to quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := buildEngine()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), eng)
		},
	}
}
