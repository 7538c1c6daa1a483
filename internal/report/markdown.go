package report

import (
	"fmt"
	"strings"
)

const (
	questionableExamples = 2
	sampleBugs           = 3
	previewLength        = 80
)

// RenderMarkdown renders the dashboard markdown for a report. This is a pure
// formatting step over the already-classified payload.
func RenderMarkdown(r *Report) string {
	var b strings.Builder

	b.WriteString("# 🐞 My Active Bugs Dashboard\n\n")

	if r.Total == 0 {
		b.WriteString("No active bugs assigned to you.\n")
		return b.String()
	}

	writeQuestionableSection(&b, r)
	writeStatsSection(&b, r)
	writeCategorySection(&b, r)

	return b.String()
}

func writeQuestionableSection(b *strings.Builder, r *Report) {
	if r.Questionable == 0 {
		return
	}

	b.WriteString("## ❓ Questionable Non-Actionable Bugs\n")
	fmt.Fprintf(b, "**Total Count:** %d bugs with insufficient or problematic descriptions\n", r.Questionable)
	b.WriteString("**⚠️ Recommendation:** Review these first to clean up your backlog before focusing on actionable bugs.\n\n")

	for _, group := range r.ReasonGroups {
		fmt.Fprintf(b, "### 🔸 %s (%d bugs)\n", group.Reason, len(group.Items))
		fmt.Fprintf(b, "**Issue:** %s\n", group.Explanation)
		fmt.Fprintf(b, "**[→ Review all %s bugs](%s)**\n\n", group.Reason, group.QueryURL)

		b.WriteString("**Examples:**\n")
		for i, item := range group.Items {
			if i >= questionableExamples {
				break
			}
			fmt.Fprintf(b, "- Bug %d: *%q*\n", item.ID, descriptionPreview(item.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
}

func writeStatsSection(b *strings.Builder, r *Report) {
	b.WriteString("## 🐞 Bug Stats\n")
	fmt.Fprintf(b, "- **Total active bugs:** %d\n", r.Total)
	fmt.Fprintf(b, "- **Actionable:** %d\n", r.Actionable)
	fmt.Fprintf(b, "- **Questionable:** %d\n", r.Questionable)
	fmt.Fprintf(b, "- **Average bug age:** %.1f days\n", r.AvgAgeDays)
	fmt.Fprintf(b, "- **Average length of being active:** %.1f days\n\n", r.AvgActiveDays)
}

func writeCategorySection(b *strings.Builder, r *Report) {
	if len(r.Groups) == 0 {
		b.WriteString("## 📊 No clear patterns found in actionable bugs\n")
		b.WriteString("Your actionable bugs don't fit common categories. Consider manual review or different grouping criteria.\n")
		return
	}

	b.WriteString("## 📊 Actionable Bug Analysis by Issue Type\n\n")
	for _, group := range r.Groups {
		fmt.Fprintf(b, "### %d bugs likely related to: %s\n", len(group.Items), group.Category)
		fmt.Fprintf(b, "**What these bugs are about:** %s\n", group.Explanation)
		fmt.Fprintf(b, "**Recommended next steps:** %s\n", group.Action)
		fmt.Fprintf(b, "**[→ View all %s bugs in Azure DevOps](%s)**\n\n", group.Category, group.QueryURL)

		b.WriteString("**Sample bugs:**\n")
		for i, item := range group.Items {
			if i >= sampleBugs {
				break
			}
			fmt.Fprintf(b, "- [%s](%s)\n", item.Title, item.URL)
		}
		if len(group.Items) > sampleBugs {
			fmt.Fprintf(b, "...and %d more\n", len(group.Items)-sampleBugs)
		}
		b.WriteString("\n")
	}

	writeRecommendations(b, r)
}

func writeRecommendations(b *strings.Builder, r *Report) {
	b.WriteString("## 💡 Priority Recommendations for Actionable Bugs\n")

	top := r.Groups[0]
	fmt.Fprintf(b, "1. **Focus on %s** - This is your largest actionable category with %d bugs\n",
		top.Category, len(top.Items))
	fmt.Fprintf(b, "2. **%s**\n", top.Action)

	if r.AvgAgeDays > 60 {
		b.WriteString("3. **Triage old bugs** - Some actionable bugs are quite old and may need to be closed or deprioritized\n")
	}

	if len(r.Groups) > 3 {
		b.WriteString("4. **Consider batch processing** - You have multiple actionable issue types that could benefit from focused sprints\n")
	}
}

func descriptionPreview(description string) string {
	if description == "" {
		return "No description"
	}
	runes := []rune(description)
	if len(runes) > previewLength {
		return string(runes[:previewLength]) + "..."
	}
	return description
}
