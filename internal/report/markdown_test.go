package report

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinb35/Bugger/internal/model"
)

func TestRenderMarkdownEmptyState(t *testing.T) {
	r := testAssembler().Assemble(nil, nil)

	md := RenderMarkdown(r)

	assert.Contains(t, md, "No active bugs assigned")
	assert.NotContains(t, md, "Bug Stats")
}

func TestRenderMarkdownSections(t *testing.T) {
	actionable := []model.WorkItem{
		{ID: 1, Title: "App crashes", Description: "System crashes on boot with bugcheck 0x1E"},
		{ID: 2, Title: "Crash B", Description: "Unhandled exception in the settings dialog handler"},
		{ID: 3, Title: "Crash C", Description: "Explorer crashes while dragging a folder"},
		{ID: 4, Title: "Crash D", Description: "Fatal exception during theme switching"},
	}
	questionable := []model.Flagged{
		{Item: model.WorkItem{ID: 5, Title: "x", Description: ""}, Reason: model.ReasonEmptyMinimalDescription},
	}

	r := testAssembler().Assemble(actionable, questionable)
	md := RenderMarkdown(r)

	// Questionable section comes before the stats section.
	qIdx := strings.Index(md, "Questionable Non-Actionable Bugs")
	sIdx := strings.Index(md, "Bug Stats")
	require.GreaterOrEqual(t, qIdx, 0)
	require.GreaterOrEqual(t, sIdx, 0)
	assert.Less(t, qIdx, sIdx)

	assert.Contains(t, md, "**Total active bugs:** 5")
	assert.Contains(t, md, "4 bugs likely related to: BSoD/Crashes")
	assert.Contains(t, md, "...and 1 more")
	assert.Contains(t, md, "Focus on BSoD/Crashes")
	assert.Contains(t, md, "Bug 5: *\"No description\"*")
	assert.NotContains(t, md, "Consider batch processing")
}

func TestRenderMarkdownBatchProcessingHint(t *testing.T) {
	actionable := []model.WorkItem{
		{ID: 1, Title: "App crashes", Description: "System crashes on boot with bugcheck 0x1E"},
		{ID: 2, Title: "Sluggish search", Description: "Search hangs for several seconds on large folders"},
		{ID: 3, Title: "Permission denied", Description: "Opening the shared mailbox fails with permission denied"},
		{ID: 4, Title: "Handle growth", Description: "The process leaks handles over a long session"},
	}

	r := testAssembler().Assemble(actionable, nil)
	md := RenderMarkdown(r)

	// More than three categories adds the batch-processing recommendation.
	require.Greater(t, len(r.Groups), 3)
	assert.Contains(t, md, "4. **Consider batch processing** - You have multiple actionable issue types that could benefit from focused sprints")
}

func TestRenderMarkdownNoPatterns(t *testing.T) {
	actionable := []model.WorkItem{
		{ID: 1, Title: "Typo in label", Description: "The word 'recieve' is misspelled in the banner"},
	}

	r := testAssembler().Assemble(actionable, nil)
	md := RenderMarkdown(r)

	// Other-only reports still get a category section for the fallback group.
	assert.Contains(t, md, "1 bugs likely related to: Other")
}

func TestDescriptionPreviewTruncation(t *testing.T) {
	long := strings.Repeat("a", 100)
	preview := descriptionPreview(long)
	assert.Len(t, preview, 83)
	assert.True(t, strings.HasSuffix(preview, "..."))
}

func TestDescriptionPreviewTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 100)
	preview := descriptionPreview(long)

	assert.True(t, utf8.ValidString(preview))
	assert.Equal(t, previewLength+3, utf8.RuneCountInString(preview))
	assert.True(t, strings.HasSuffix(preview, "..."))
}
