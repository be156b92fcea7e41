// Package resolver determines the effective per-month configuration of
// buckets, budget groups and sub-categories.
//
// Configuration for a month can come from several places. The resolution
// order is an explicit list of steps tried first-match-wins:
//
//  1. explicit per-month override in the MonthConfig
//  2. the active template for the month (MonthConfig's template, else the
//     default template)
//  3. the entity's own direct data for the month
//  4. bounded backward inheritance search through prior months
//  5. no data
//
// A month recorded as explicitly deleted is a hard wall for the backward
// search: the search terminates with "no data" instead of skipping past it.
// GOAL buckets bypass templates entirely (steps 3-5 only) because goals are
// timeline-bound rather than recurring. Buckets linked to a goal never
// inherit at all: they represent one-time payout events.
package resolver

import (
	"fjacquet/payday-budget/internal/models"
)

// Source labels where an effective configuration came from.
type Source string

const (
	SourceOverride  Source = "override"
	SourceTemplate  Source = "template"
	SourceDirect    Source = "direct"
	SourceInherited Source = "inherited"
	SourceNone      Source = "none"
)

// Lookback bounds for the backward inheritance search.
const (
	bucketLookbackMonths = 36
	legacyLookbackMonths = 12
)

// Resolution is the outcome of resolving one entity for one month.
// Data is nil when no configuration applies. IsInherited is true for
// template data (a batch-applied default) and for data inherited from a
// prior month; explicit overrides and direct month data are not inherited.
type Resolution[T any] struct {
	Data        *T
	IsInherited bool
	Source      Source
}

func none[T any]() Resolution[T] {
	return Resolution[T]{Source: SourceNone}
}

// Env carries the month configs and templates consulted during resolution.
type Env struct {
	Templates []models.BudgetTemplate
	Configs   map[models.MonthKey]models.MonthConfig
}

// ActiveTemplate returns the template governing the given month: the month
// config's template when set, otherwise the default template.
func (e Env) ActiveTemplate(month models.MonthKey) (models.BudgetTemplate, bool) {
	if cfg, ok := e.Configs[month]; ok && cfg.TemplateID != "" {
		if t, ok := models.TemplateByID(e.Templates, cfg.TemplateID); ok {
			return t, true
		}
	}
	return models.DefaultTemplate(e.Templates)
}

// step is one entry in the ordered resolution chain.
type step[T any] struct {
	source    Source
	inherited bool
	run       func() (T, bool)
}

func runSteps[T any](steps []step[T]) Resolution[T] {
	for _, s := range steps {
		if data, ok := s.run(); ok {
			d := data
			return Resolution[T]{Data: &d, IsInherited: s.inherited, Source: s.source}
		}
	}
	return none[T]()
}

// searchBackward walks from the month before start down to the lookback
// bound, returning the nearest prior month's data. The first explicitly
// deleted month it encounters terminates the search without data.
func searchBackward[T any](
	start models.MonthKey,
	bound int,
	lookup func(models.MonthKey) (T, bool),
	isDeleted func(T) bool,
) (T, bool) {
	var zero T
	cursor := start.Prev()
	for i := 0; i < bound && cursor != ""; i++ {
		if data, ok := lookup(cursor); ok {
			if isDeleted(data) {
				return zero, false
			}
			return data, true
		}
		cursor = cursor.Prev()
	}
	return zero, false
}

// ResolveBucket returns the effective month data for a bucket.
func ResolveBucket(b models.Bucket, month models.MonthKey, env Env) Resolution[models.BucketMonthData] {
	if !month.IsValid() {
		return none[models.BucketMonthData]()
	}

	// Archive wall: months strictly after the archive date have no data
	// regardless of any other source.
	if b.IsArchivedFor(month) {
		return none[models.BucketMonthData]()
	}

	// Payout/spending companions of a goal are one-time events. Only an
	// exact, live month entry counts.
	if b.LinkedGoalID != "" {
		if data, ok := b.MonthData(month); ok && !data.IsExplicitlyDeleted {
			d := data
			return Resolution[models.BucketMonthData]{Data: &d, Source: SourceDirect}
		}
		return none[models.BucketMonthData]()
	}

	steps := []step[models.BucketMonthData]{}

	if b.Type != models.BucketGoal {
		steps = append(steps,
			step[models.BucketMonthData]{source: SourceOverride, run: func() (models.BucketMonthData, bool) {
				cfg, ok := env.Configs[month]
				if !ok {
					return models.BucketMonthData{}, false
				}
				d, ok := cfg.BucketOverrides[b.ID]
				return d, ok
			}},
			step[models.BucketMonthData]{source: SourceTemplate, inherited: true, run: func() (models.BucketMonthData, bool) {
				tpl, ok := env.ActiveTemplate(month)
				if !ok {
					return models.BucketMonthData{}, false
				}
				d, ok := tpl.BucketData[b.ID]
				return d, ok
			}},
		)
	}

	steps = append(steps,
		step[models.BucketMonthData]{source: SourceDirect, run: func() (models.BucketMonthData, bool) {
			return b.MonthData(month)
		}},
		step[models.BucketMonthData]{source: SourceInherited, inherited: true, run: func() (models.BucketMonthData, bool) {
			return searchBackward(month, bucketLookbackMonths, b.MonthData,
				func(d models.BucketMonthData) bool { return d.IsExplicitlyDeleted })
		}},
	)

	return runSteps(steps)
}

// ResolveGroup returns the effective month data for a budget group.
func ResolveGroup(g models.BudgetGroup, month models.MonthKey, env Env) Resolution[models.GroupMonthData] {
	if !month.IsValid() {
		return none[models.GroupMonthData]()
	}

	steps := []step[models.GroupMonthData]{
		{source: SourceOverride, run: func() (models.GroupMonthData, bool) {
			cfg, ok := env.Configs[month]
			if !ok {
				return models.GroupMonthData{}, false
			}
			d, ok := cfg.GroupOverrides[g.ID]
			return d, ok
		}},
		{source: SourceTemplate, inherited: true, run: func() (models.GroupMonthData, bool) {
			tpl, ok := env.ActiveTemplate(month)
			if !ok {
				return models.GroupMonthData{}, false
			}
			limit, ok := tpl.GroupLimits[g.ID]
			if !ok {
				return models.GroupMonthData{}, false
			}
			return models.GroupMonthData{Limit: limit}, true
		}},
		{source: SourceDirect, run: func() (models.GroupMonthData, bool) {
			return g.MonthData(month)
		}},
		{source: SourceInherited, inherited: true, run: func() (models.GroupMonthData, bool) {
			return searchBackward(month, legacyLookbackMonths, g.MonthData,
				func(d models.GroupMonthData) bool { return d.IsExplicitlyDeleted })
		}},
	}

	return runSteps(steps)
}

// ResolveSubCategory returns the effective month budget for a sub-category.
func ResolveSubCategory(s models.SubCategory, month models.MonthKey, env Env) Resolution[models.SubCategoryMonthData] {
	if !month.IsValid() {
		return none[models.SubCategoryMonthData]()
	}

	steps := []step[models.SubCategoryMonthData]{
		{source: SourceOverride, run: func() (models.SubCategoryMonthData, bool) {
			cfg, ok := env.Configs[month]
			if !ok {
				return models.SubCategoryMonthData{}, false
			}
			d, ok := cfg.SubCategoryOverrides[s.ID]
			return d, ok
		}},
		{source: SourceTemplate, inherited: true, run: func() (models.SubCategoryMonthData, bool) {
			tpl, ok := env.ActiveTemplate(month)
			if !ok {
				return models.SubCategoryMonthData{}, false
			}
			budget, ok := tpl.SubCategoryBudgets[s.ID]
			if !ok {
				return models.SubCategoryMonthData{}, false
			}
			return models.SubCategoryMonthData{Budget: budget}, true
		}},
		{source: SourceDirect, run: func() (models.SubCategoryMonthData, bool) {
			return s.MonthData(month)
		}},
		{source: SourceInherited, inherited: true, run: func() (models.SubCategoryMonthData, bool) {
			return searchBackward(month, legacyLookbackMonths, s.MonthData,
				func(d models.SubCategoryMonthData) bool { return d.IsExplicitlyDeleted })
		}},
	}

	return runSteps(steps)
}
