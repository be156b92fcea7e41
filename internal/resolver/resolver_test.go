package resolver

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/payday-budget/internal/models"
)

func amt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func bucketWith(months map[models.MonthKey]models.BucketMonthData) models.Bucket {
	return models.Bucket{ID: "b1", Name: "Groceries", Type: models.BucketFixed, Months: months}
}

func TestResolveBucketPrecedence(t *testing.T) {
	b := bucketWith(map[models.MonthKey]models.BucketMonthData{
		"2025-04": {Amount: amt(300)},
	})
	env := Env{
		Templates: []models.BudgetTemplate{
			{ID: "tpl", IsDefault: true, BucketData: map[string]models.BucketMonthData{
				"b1": {Amount: amt(200)},
			}},
		},
		Configs: map[models.MonthKey]models.MonthConfig{
			"2025-04": {Month: "2025-04", BucketOverrides: map[string]models.BucketMonthData{
				"b1": {Amount: amt(100)},
			}},
		},
	}

	// Override beats template beats direct data.
	res := ResolveBucket(b, "2025-04", env)
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceOverride, res.Source)
	assert.False(t, res.IsInherited)
	assert.True(t, amt(100).Equal(res.Data.Amount))

	// Without the override the template wins.
	delete(env.Configs, "2025-04")
	res = ResolveBucket(b, "2025-04", env)
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceTemplate, res.Source)
	assert.True(t, res.IsInherited)
	assert.True(t, amt(200).Equal(res.Data.Amount))

	// Without the template the direct month data wins.
	env.Templates = nil
	res = ResolveBucket(b, "2025-04", env)
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceDirect, res.Source)
	assert.False(t, res.IsInherited)
	assert.True(t, amt(300).Equal(res.Data.Amount))
}

func TestResolveBucketBackwardInheritance(t *testing.T) {
	b := bucketWith(map[models.MonthKey]models.BucketMonthData{
		"2025-01": {Amount: amt(250)},
	})

	res := ResolveBucket(b, "2025-06", Env{})
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceInherited, res.Source)
	assert.True(t, res.IsInherited)
	assert.True(t, amt(250).Equal(res.Data.Amount))
}

func TestResolveBucketDeletionWall(t *testing.T) {
	b := bucketWith(map[models.MonthKey]models.BucketMonthData{
		"2025-01": {Amount: amt(250)},
		"2025-03": {IsExplicitlyDeleted: true},
	})

	// The deleted month blocks the search from reaching January.
	res := ResolveBucket(b, "2025-06", Env{})
	assert.Nil(t, res.Data)
	assert.Equal(t, SourceNone, res.Source)

	// Months before the wall still resolve.
	res = ResolveBucket(b, "2025-02", Env{})
	require.NotNil(t, res.Data)
	assert.True(t, amt(250).Equal(res.Data.Amount))
}

func TestResolveBucketLookbackBound(t *testing.T) {
	b := bucketWith(map[models.MonthKey]models.BucketMonthData{
		"2020-01": {Amount: amt(99)},
	})

	// 2023-01 is exactly 36 months after 2020-01, the last month still found.
	res := ResolveBucket(b, "2023-01", Env{})
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceInherited, res.Source)

	res = ResolveBucket(b, "2023-02", Env{})
	assert.Nil(t, res.Data)
}

func TestResolveBucketArchiveWall(t *testing.T) {
	b := bucketWith(map[models.MonthKey]models.BucketMonthData{
		"2025-01": {Amount: amt(250)},
	})
	b.ArchivedDate = "2025-03"

	res := ResolveBucket(b, "2025-03", Env{})
	require.NotNil(t, res.Data)

	res = ResolveBucket(b, "2025-04", Env{})
	assert.Nil(t, res.Data)
	assert.Equal(t, SourceNone, res.Source)
}

func TestResolveGoalBucketSkipsTemplates(t *testing.T) {
	b := models.Bucket{
		ID:   "g1",
		Type: models.BucketGoal,
		Months: map[models.MonthKey]models.BucketMonthData{
			"2025-02": {Amount: amt(500)},
		},
	}
	env := Env{
		Templates: []models.BudgetTemplate{
			{ID: "tpl", IsDefault: true, BucketData: map[string]models.BucketMonthData{
				"g1": {Amount: amt(999)},
			}},
		},
		Configs: map[models.MonthKey]models.MonthConfig{
			"2025-03": {Month: "2025-03", BucketOverrides: map[string]models.BucketMonthData{
				"g1": {Amount: amt(888)},
			}},
		},
	}

	// Neither the override nor the template applies to a goal; the direct
	// data inherits forward instead.
	res := ResolveBucket(b, "2025-03", env)
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceInherited, res.Source)
	assert.True(t, amt(500).Equal(res.Data.Amount))
}

func TestResolveLinkedGoalBucketNeverInherits(t *testing.T) {
	b := models.Bucket{
		ID:           "payout",
		Type:         models.BucketFixed,
		LinkedGoalID: "g1",
		Months: map[models.MonthKey]models.BucketMonthData{
			"2025-02": {Amount: amt(5000)},
		},
	}

	res := ResolveBucket(b, "2025-02", Env{})
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceDirect, res.Source)

	// The month after the payout has no data, not inherited data.
	res = ResolveBucket(b, "2025-03", Env{})
	assert.Nil(t, res.Data)
}

func TestResolveBucketDeterministic(t *testing.T) {
	b := bucketWith(map[models.MonthKey]models.BucketMonthData{
		"2024-08": {Amount: amt(120)},
		"2024-11": {Amount: amt(140)},
	})

	first := ResolveBucket(b, "2025-03", Env{})
	for i := 0; i < 10; i++ {
		again := ResolveBucket(b, "2025-03", Env{})
		require.NotNil(t, again.Data)
		assert.True(t, first.Data.Amount.Equal(again.Data.Amount))
		assert.Equal(t, first.Source, again.Source)
	}
	// Nearest prior month wins.
	assert.True(t, amt(140).Equal(first.Data.Amount))
}

func TestResolveGroup(t *testing.T) {
	g := models.BudgetGroup{
		ID: "gr1",
		Months: map[models.MonthKey]models.GroupMonthData{
			"2025-01": {Limit: amt(400)},
		},
	}
	env := Env{
		Templates: []models.BudgetTemplate{
			{ID: "tpl", IsDefault: true, GroupLimits: map[string]decimal.Decimal{
				"gr1": amt(350),
			}},
		},
	}

	res := ResolveGroup(g, "2025-02", env)
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceTemplate, res.Source)
	assert.True(t, amt(350).Equal(res.Data.Limit))

	// Groups use the shorter lookback bound.
	far := models.BudgetGroup{
		ID: "gr2",
		Months: map[models.MonthKey]models.GroupMonthData{
			"2024-01": {Limit: amt(100)},
		},
	}
	res = ResolveGroup(far, "2025-01", Env{})
	require.NotNil(t, res.Data)
	res = ResolveGroup(far, "2025-02", Env{})
	assert.Nil(t, res.Data)
}

func TestResolveSubCategory(t *testing.T) {
	sc := models.SubCategory{
		ID: "sc1",
		Months: map[models.MonthKey]models.SubCategoryMonthData{
			"2025-03": {Budget: amt(90)},
		},
	}

	res := ResolveSubCategory(sc, "2025-05", Env{})
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceInherited, res.Source)
	assert.True(t, amt(90).Equal(res.Data.Budget))

	env := Env{
		Configs: map[models.MonthKey]models.MonthConfig{
			"2025-05": {Month: "2025-05", SubCategoryOverrides: map[string]models.SubCategoryMonthData{
				"sc1": {Budget: amt(45)},
			}},
		},
	}
	res = ResolveSubCategory(sc, "2025-05", env)
	require.NotNil(t, res.Data)
	assert.Equal(t, SourceOverride, res.Source)
	assert.True(t, amt(45).Equal(res.Data.Budget))
}
