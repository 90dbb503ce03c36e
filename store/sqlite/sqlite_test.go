package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StephenDWright/TeacherApps1/scale"
	"github.com/StephenDWright/TeacherApps1/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func fixture(base string) scale.Table {
	b := decimal.RequireFromString(base)
	return scale.NewTable(map[scale.Grade]map[scale.Step]decimal.Decimal{
		scale.Grade2: {
			scale.StepMinimum: b,
			scale.StepA:       b.Add(decimal.NewFromInt(120)),
		},
		scale.Grade5: {
			scale.StepMinimum:    b.Add(decimal.NewFromInt(2000)),
			scale.StepLongevity3: decimal.RequireFromString("7123.45"),
		},
	})
}

// =============================================================================
// TESTS
// =============================================================================

func TestStore_SaveAndLoadTables(t *testing.T) {
	// GIVEN: both editions imported
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTable(ctx, scale.EditionCurrent, scale.EditionInfo{Name: "current salary scale"}, fixture("3150")))
	require.NoError(t, store.SaveTable(ctx, scale.EditionPrevious, scale.EditionInfo{Name: "previous salary scale"}, fixture("2895")))

	// WHEN: loading through the scale.Source contract
	tables, err := scale.LoadTables(ctx, store)
	require.NoError(t, err)

	// THEN: amounts survive the round trip exactly
	got, ok := tables.Current.Amount(scale.Grade5, scale.StepLongevity3)
	require.True(t, ok)
	assert.Equal(t, "7123.45", got.String())

	got, ok = tables.Previous.Amount(scale.Grade2, scale.StepA)
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(3015)))

	max, ok := tables.Current.MaxStep(scale.Grade5)
	require.True(t, ok)
	assert.Equal(t, scale.StepLongevity3, max)
}

func TestStore_SaveReplacesEdition(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTable(ctx, scale.EditionCurrent, scale.EditionInfo{}, fixture("3150")))
	replacement := scale.NewTable(map[scale.Grade]map[scale.Step]decimal.Decimal{
		scale.Grade3: {scale.StepMinimum: decimal.NewFromInt(4000)},
	})
	require.NoError(t, store.SaveTable(ctx, scale.EditionCurrent, scale.EditionInfo{Name: "2026 scale"}, replacement))

	table, err := store.Load(ctx, scale.EditionCurrent)
	require.NoError(t, err)
	assert.False(t, table.HasGrade(scale.Grade2), "old rows must be gone")
	assert.True(t, table.HasGrade(scale.Grade3))

	editions, err := store.Editions(ctx)
	require.NoError(t, err)
	require.Len(t, editions, 1)
	assert.Equal(t, "2026 scale", editions[0].Name)
	assert.Equal(t, 1, editions[0].Amounts)
	assert.False(t, editions[0].ImportedAt.IsZero())
}

func TestStore_MissingEditionIsConfigurationError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveTable(ctx, scale.EditionCurrent, scale.EditionInfo{}, fixture("3150")))

	_, err := scale.LoadTables(ctx, store)

	require.Error(t, err)
	assert.True(t, scale.IsConfigurationError(err))
	var cfgErr *scale.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, scale.EditionPrevious, cfgErr.Edition)
}

func TestStore_Info(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	info := scale.EditionInfo{Name: "current salary scale", Note: "Oct 2023 - Sep 2026"}
	require.NoError(t, store.SaveTable(ctx, scale.EditionCurrent, info, fixture("3150")))

	got, err := store.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, info, got[scale.EditionCurrent])
}

func TestStore_RejectsUnknownEdition(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveTable(context.Background(), scale.Edition("draft"), scale.EditionInfo{}, fixture("1"))
	assert.Error(t, err)
}
