// Package classify partitions work items by description quality and groups
// actionable ones into topical categories. All functions are pure; no
// network or I/O, and work items are never mutated.
package classify

import (
	"strings"
	"unicode"

	"github.com/martinb35/Bugger/internal/model"
)

// minDescriptionLength is the shortest trimmed description considered more
// than a single word.
const minDescriptionLength = 8

// IsQuestionable reports whether an item's description is too sparse or
// low-quality to act on. Checks run in a fixed order; the first match wins.
func IsQuestionable(item model.WorkItem) (model.Reason, bool) {
	desc := strings.TrimSpace(item.Description)

	if desc == "" {
		return model.ReasonEmptyMinimalDescription, true
	}
	if len(desc) < minDescriptionLength {
		return model.ReasonSingleWordDescription, true
	}
	if !containsAlphanumeric(desc) {
		return model.ReasonSpecialCharactersSoup, true
	}
	if desc == item.Title {
		return model.ReasonDuplicateTitleDescription, true
	}
	if strings.Contains(desc, "http") && strings.Contains(desc, "404") {
		return model.ReasonDeadLinks, true
	}

	return "", false
}

// Categorize assigns an actionable item to its topical category by matching
// the ordered rule set against title and description, case-insensitively.
func Categorize(item model.WorkItem) model.Category {
	text := strings.ToLower(item.Title + " " + item.Description)

	for _, rule := range CategoryRules() {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Category
			}
		}
	}

	return model.CategoryOther
}

// Classify partitions items into actionable and questionable sets. Every
// input item lands in exactly one of the two, preserving input order.
func Classify(items []model.WorkItem) (actionable []model.WorkItem, questionable []model.Flagged) {
	for _, item := range items {
		if reason, ok := IsQuestionable(item); ok {
			questionable = append(questionable, model.Flagged{Item: item, Reason: reason})
		} else {
			actionable = append(actionable, item)
		}
	}
	return actionable, questionable
}

// Group buckets actionable items by category, preserving each group's
// relative order of arrival.
func Group(actionable []model.WorkItem) map[model.Category][]model.WorkItem {
	groups := make(map[model.Category][]model.WorkItem)
	for _, item := range actionable {
		category := Categorize(item)
		groups[category] = append(groups[category], item)
	}
	return groups
}

func containsAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
