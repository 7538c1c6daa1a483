// Package report assembles classified work items into the report payload
// consumed by the renderers.
package report

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/martinb35/Bugger/internal/classify"
	"github.com/martinb35/Bugger/internal/config"
	"github.com/martinb35/Bugger/internal/model"
)

// Item is a work item decorated with its tracker edit URL.
type Item struct {
	model.WorkItem
	URL string
}

// ReasonGroup collects questionable items sharing one reason.
type ReasonGroup struct {
	Reason      model.Reason
	Explanation string
	QueryURL    string
	Items       []Item
}

// CategoryGroup collects actionable items in one topical category.
type CategoryGroup struct {
	Category    model.Category
	Explanation string
	Action      string
	QueryURL    string
	Items       []Item
}

// Report is the complete payload for one pipeline run. Nothing downstream
// needs to re-derive counts or membership.
type Report struct {
	GeneratedAt   time.Time
	ReasonGroups  []ReasonGroup
	Groups        []CategoryGroup
	Total         int
	Actionable    int
	Questionable  int
	AvgAgeDays    float64
	AvgActiveDays float64
}

// Assembler builds report payloads. The configuration is only used to
// construct tracker links.
type Assembler struct {
	cfg *config.Config
	now func() time.Time
}

// NewAssembler creates an assembler using the wall clock.
func NewAssembler(cfg *config.Config) *Assembler {
	return &Assembler{cfg: cfg, now: time.Now}
}

// reasonOrder mirrors the order the questionable checks run in.
var reasonOrder = []model.Reason{
	model.ReasonEmptyMinimalDescription,
	model.ReasonSingleWordDescription,
	model.ReasonSpecialCharactersSoup,
	model.ReasonDuplicateTitleDescription,
	model.ReasonDeadLinks,
}

// Assemble produces the report payload for one classified set of items.
func (a *Assembler) Assemble(actionable []model.WorkItem, questionable []model.Flagged) *Report {
	r := &Report{
		GeneratedAt:  a.now(),
		Total:        len(actionable) + len(questionable),
		Actionable:   len(actionable),
		Questionable: len(questionable),
	}

	r.AvgAgeDays, r.AvgActiveDays = a.ageStats(actionable)
	r.ReasonGroups = a.reasonGroups(questionable)
	r.Groups = a.categoryGroups(actionable)

	return r
}

// ageStats computes the average age and average active duration, in days,
// over the items that carry the respective dates.
func (a *Assembler) ageStats(items []model.WorkItem) (avgAge, avgActive float64) {
	now := a.now()
	var ageSum, activeSum float64
	var ageN, activeN int

	for _, item := range items {
		if t, ok := parseDate(item.CreatedDate); ok {
			ageSum += now.Sub(t).Hours() / 24
			ageN++
		}
		if t, ok := parseDate(item.ActivatedDate); ok {
			activeSum += now.Sub(t).Hours() / 24
			activeN++
		}
	}

	if ageN > 0 {
		avgAge = ageSum / float64(ageN)
	}
	if activeN > 0 {
		avgActive = activeSum / float64(activeN)
	}
	return avgAge, avgActive
}

func (a *Assembler) reasonGroups(questionable []model.Flagged) []ReasonGroup {
	byReason := make(map[model.Reason][]Item)
	for _, f := range questionable {
		byReason[f.Reason] = append(byReason[f.Reason], a.item(f.Item))
	}

	groups := make([]ReasonGroup, 0, len(byReason))
	for _, reason := range reasonOrder {
		items := byReason[reason]
		if len(items) == 0 {
			continue
		}
		groups = append(groups, ReasonGroup{
			Reason:      reason,
			Explanation: classify.ExplainReason(reason),
			QueryURL:    a.queryURL(items),
			Items:       items,
		})
	}
	return groups
}

func (a *Assembler) categoryGroups(actionable []model.WorkItem) []CategoryGroup {
	byCategory := classify.Group(actionable)

	order := make([]model.Category, 0, len(byCategory))
	for _, rule := range classify.CategoryRules() {
		order = append(order, rule.Category)
	}
	order = append(order, model.CategoryOther)

	groups := make([]CategoryGroup, 0, len(byCategory))
	for _, category := range order {
		members := byCategory[category]
		if len(members) == 0 {
			continue
		}
		items := make([]Item, 0, len(members))
		for _, m := range members {
			items = append(items, a.item(m))
		}
		info := classify.InfoFor(category)
		groups = append(groups, CategoryGroup{
			Category:    category,
			Explanation: info.Explanation,
			Action:      info.Action,
			QueryURL:    a.queryURL(items),
			Items:       items,
		})
	}

	// Largest group first; rule order breaks ties.
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Items) > len(groups[j].Items)
	})

	return groups
}

func (a *Assembler) item(w model.WorkItem) Item {
	return Item{
		WorkItem: w,
		URL:      fmt.Sprintf("%s/_workitems/edit/%d", a.cfg.BaseURL(), w.ID),
	}
}

// queryURL builds a tracker query link selecting exactly the group's items.
func (a *Assembler) queryURL(items []Item) string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, strconv.Itoa(item.ID))
	}

	wiql := fmt.Sprintf(
		"SELECT [System.Id], [System.Title], [System.State] FROM WorkItems"+
			" WHERE [System.WorkItemType] = 'Bug'"+
			" AND [System.AssignedTo] = '%s'"+
			" AND [System.Id] IN (%s)",
		a.cfg.UserEmail, strings.Join(ids, ","),
	)

	return fmt.Sprintf("%s/_workitems?_a=query&wiql=%s", a.cfg.BaseURL(), url.QueryEscape(wiql))
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
