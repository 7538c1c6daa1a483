package model

// Reason explains why a work item was flagged as questionable.
type Reason string

// Questionable reasons, in the order the checks run.
const (
	ReasonEmptyMinimalDescription   Reason = "Empty/Minimal Description"
	ReasonSingleWordDescription     Reason = "Single Word Description"
	ReasonSpecialCharactersSoup     Reason = "Special Characters Soup"
	ReasonDuplicateTitleDescription Reason = "Duplicate Title/Description"
	ReasonDeadLinks                 Reason = "Dead Links"
)

// Category is a topical bucket for actionable work items.
type Category string

// Categories, in rule-match order. Other is the fallback when no keyword
// matches.
const (
	CategoryCrash       Category = "BSoD/Crashes"
	CategoryPerformance Category = "Performance/Hangs"
	CategorySecurity    Category = "Security/Access"
	CategoryFileSystem  Category = "File System"
	CategoryMemory      Category = "Memory Issues"
	CategoryDriver      Category = "Driver Issues"
	CategoryBoot        Category = "Boot/Startup"
	CategoryUI          Category = "UI/Interaction"
	CategoryNetwork     Category = "Network"
	CategoryOther       Category = "Other"
)

// Flagged pairs a questionable work item with the reason it was flagged.
// The reason is derived metadata; the item itself is never mutated.
type Flagged struct {
	Item   WorkItem
	Reason Reason
}
