// Package engine orchestrates the fetch-classify-assemble pipeline.
package engine

import (
	"context"

	"github.com/martinb35/Bugger/internal/classify"
	"github.com/martinb35/Bugger/internal/common"
	"github.com/martinb35/Bugger/internal/model"
	"github.com/martinb35/Bugger/internal/report"
)

// ItemFetcher defines the contract for retrieving work items from the
// remote tracker.
type ItemFetcher interface {
	FetchActiveBugIDs(ctx context.Context) ([]int, error)
	FetchBugDetails(ctx context.Context, ids []int) ([]model.WorkItem, error)
}

// Assembler defines the contract for producing the report payload.
type Assembler interface {
	Assemble(actionable []model.WorkItem, questionable []model.Flagged) *report.Report
}

// Engine runs the analysis pipeline. Each run performs two sequential
// network calls followed by pure in-memory computation; fatal errors abort
// the run and bubble up unmodified.
type Engine struct {
	fetcher   ItemFetcher
	assembler Assembler
}

// New creates an engine from its collaborators.
func New(fetcher ItemFetcher, assembler Assembler) *Engine {
	return &Engine{fetcher: fetcher, assembler: assembler}
}

// Run executes one full pipeline pass and returns the complete report, or
// an error. There is no partial-success report.
func (e *Engine) Run(ctx context.Context) (*report.Report, error) {
	ids, err := e.fetcher.FetchActiveBugIDs(ctx)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		common.LogInfo("No active bugs assigned", nil)
		return e.assembler.Assemble(nil, nil), nil
	}

	items, err := e.fetcher.FetchBugDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	actionable, questionable := classify.Classify(items)
	common.LogInfo("Classified work items", common.Fields{
		"total":        len(items),
		"actionable":   len(actionable),
		"questionable": len(questionable),
	})

	return e.assembler.Assemble(actionable, questionable), nil
}
