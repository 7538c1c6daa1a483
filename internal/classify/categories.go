package classify

import "github.com/martinb35/Bugger/internal/model"

// CategoryRule associates a category with the keywords that select it.
// Rules are evaluated in order; the first match wins.
type CategoryRule struct {
	Category model.Category
	Keywords []string
}

// CategoryRules returns the ordered categorization rule set. Matching is
// case-insensitive over title and description.
func CategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			Category: model.CategoryCrash,
			Keywords: []string{"crash", "bsod", "exception", "fault", "bugcheck"},
		},
		{
			Category: model.CategoryPerformance,
			Keywords: []string{"slow", "hang", "freeze", "performance", "timeout", "unresponsive"},
		},
		{
			Category: model.CategorySecurity,
			Keywords: []string{"security", "permission", "access", "privilege", "auth", "token"},
		},
		{
			Category: model.CategoryFileSystem,
			Keywords: []string{"file", "disk", "storage", "ntfs", "fat32", "corruption"},
		},
		{
			Category: model.CategoryMemory,
			Keywords: []string{"memory", "leak", "heap", "allocation", "out of memory", "oom"},
		},
		{
			Category: model.CategoryDriver,
			Keywords: []string{"driver", "device", "hardware", "pnp", "plug and play"},
		},
		{
			Category: model.CategoryBoot,
			Keywords: []string{"boot", "startup", "start", "initialization", "init", "loading"},
		},
		{
			Category: model.CategoryUI,
			Keywords: []string{"ui", "button", "window", "dialog", "menu", "screen"},
		},
		{
			Category: model.CategoryNetwork,
			Keywords: []string{"network", "connect", "disconnect", "timeout", "tcp", "udp"},
		},
	}
}

// CategoryInfo carries the report text attached to each category.
type CategoryInfo struct {
	Explanation string
	Action      string
}

// categoryInfo maps each category to its explanation and recommended action.
var categoryInfo = map[model.Category]CategoryInfo{
	model.CategoryCrash: {
		Explanation: "System crashes and blue screen errors that require immediate investigation",
		Action:      "Analyze crash dumps, check driver compatibility, and review recent system changes",
	},
	model.CategoryPerformance: {
		Explanation: "Performance degradation and system responsiveness issues",
		Action:      "Profile performance bottlenecks, check resource usage, and optimize critical paths",
	},
	model.CategorySecurity: {
		Explanation: "Security vulnerabilities and access control issues",
		Action:      "Review security policies, check permissions, and audit access controls",
	},
	model.CategoryFileSystem: {
		Explanation: "File system corruption and storage-related problems",
		Action:      "Run disk checks, verify file system integrity, and check storage health",
	},
	model.CategoryMemory: {
		Explanation: "Memory management problems including leaks and allocation failures",
		Action:      "Run memory analysis tools, check for leaks, and optimize memory usage",
	},
	model.CategoryDriver: {
		Explanation: "Hardware driver compatibility and device management problems",
		Action:      "Update drivers, check hardware compatibility, and review device manager errors",
	},
	model.CategoryBoot: {
		Explanation: "Issues preventing system or application startup",
		Action:      "Check boot configuration, startup dependencies, and initialization sequences",
	},
	model.CategoryUI: {
		Explanation: "User interface rendering and interaction problems",
		Action:      "Reproduce in the affected UI surface and review recent display changes",
	},
	model.CategoryNetwork: {
		Explanation: "Connectivity failures and network protocol issues",
		Action:      "Capture traces, check connectivity paths, and review protocol-level errors",
	},
	model.CategoryOther: {
		Explanation: "Bugs that do not match any known issue pattern",
		Action:      "Review manually and consider adding a new categorization rule",
	},
}

// InfoFor returns the explanation and recommended action for a category.
func InfoFor(category model.Category) CategoryInfo {
	return categoryInfo[category]
}

// reasonExplanations maps each questionable reason to its report text.
var reasonExplanations = map[model.Reason]string{
	model.ReasonEmptyMinimalDescription:   "Bugs with no description at all - impossible to understand the issue",
	model.ReasonSingleWordDescription:     "Bugs with only a word or two of description that provide no context",
	model.ReasonSpecialCharactersSoup:     "Bugs with descriptions full of special characters and no meaningful text",
	model.ReasonDuplicateTitleDescription: "Bugs where the description just repeats the title without adding details",
	model.ReasonDeadLinks:                 "Bugs whose links appear broken and lead to non-actionable content",
}

// ExplainReason returns the report text for a questionable reason.
func ExplainReason(reason model.Reason) string {
	return reasonExplanations[reason]
}
