package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/martinb35/Bugger/internal/azdo"
	"github.com/martinb35/Bugger/internal/common"
	"github.com/martinb35/Bugger/internal/config"
	"github.com/martinb35/Bugger/internal/engine"
	"github.com/martinb35/Bugger/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch, classify, and print the bug report",
		Long: `Runs the full pipeline once: queries Azure DevOps for your active
bugs, separates questionable from actionable ones, groups the actionable
bugs by issue type, and prints the report.`,
		RunE: runReport,
	}

	cmd.Flags().String("format", "markdown", "Output format (markdown, json)")
	cmd.Flags().Bool("render", false, "Render markdown for the terminal")

	_ = viper.BindPFlag("report.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("report.render", cmd.Flags().Lookup("render"))

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	r, err := eng.Run(cmd.Context())
	if err != nil {
		return common.NewUserError("failed to generate bug report", err)
	}

	switch viper.GetString("report.format") {
	case "json":
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	case "markdown":
		md := report.RenderMarkdown(r)
		if viper.GetBool("report.render") {
			rendered, err := glamour.Render(md, "auto")
			if err != nil {
				return fmt.Errorf("failed to render markdown: %w", err)
			}
			fmt.Fprint(os.Stdout, rendered)
			return nil
		}
		fmt.Fprint(os.Stdout, md)
		return nil
	default:
		return fmt.Errorf("invalid report format: %s", viper.GetString("report.format"))
	}
}

// buildEngine wires the pipeline from validated configuration.
func buildEngine() (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return engine.New(azdo.NewClient(cfg), report.NewAssembler(cfg)), nil
}
