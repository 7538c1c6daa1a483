package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/martinb35/Bugger/internal/classify"
	"github.com/martinb35/Bugger/internal/cli"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the categorization rule set",
		Long: `Prints the ordered keyword rules used to group actionable bugs.
Rules are checked in order and the first match wins.`,
		Run: func(_ *cobra.Command, _ []string) {
			var b strings.Builder

			b.WriteString(cli.FormatTitle("Categorization rules (first match wins)"))
			b.WriteString("\n\n")
			for i, rule := range classify.CategoryRules() {
				b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf("%d. %s", i+1, rule.Category)))
				b.WriteString("\n")
				b.WriteString(cli.TableCellStyle.Render("keywords: " + strings.Join(rule.Keywords, ", ")))
				b.WriteString("\n")
				b.WriteString(cli.SubtleStyle.Render(classify.InfoFor(rule.Category).Explanation))
				b.WriteString("\n\n")
			}
			b.WriteString(cli.SubtleStyle.Render("Anything unmatched lands in: Other"))
			b.WriteString("\n")

			fmt.Fprint(os.Stdout, b.String())
		},
	}
}
