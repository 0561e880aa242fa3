package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/mintabi/internal/db"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	plan := testutil.KyotoPlan()
	plan.ID = ""
	require.NoError(t, repo.Create(ctx, plan))
	require.NotEmpty(t, plan.ID, "create allocates an id")
	assert.False(t, plan.CreatedAt.IsZero())
	assert.Equal(t, plan.CreatedAt, plan.UpdatedAt)

	fetched, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", fetched.Title)
	assert.Equal(t, plan.Cards, fetched.Cards)
	assert.Equal(t, plan.Days, fetched.Days)
	assert.True(t, plan.CreatedAt.Equal(fetched.CreatedAt))
}

func TestPlanRepo_CreateKeepsGivenID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Osaka", testutil.WithPlanID("osaka"))
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.Get(ctx, "osaka")
	require.NoError(t, err)
	assert.Empty(t, fetched.Cards)
	assert.NotNil(t, fetched.Cards, "empty arrays survive a round trip")
	assert.NotNil(t, fetched.Days)

	assert.Error(t, repo.Create(ctx, testutil.NewTestPlan("dup", testutil.WithPlanID("osaka"))))
}

func TestPlanRepo_GetNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)

	_, err := repo.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanRepo_UpdateOnlyTouchesPatchedFields(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	plan := testutil.KyotoPlan()
	require.NoError(t, repo.Create(ctx, plan))

	later := plan.CreatedAt.Add(time.Minute)
	restore := nowUTC
	nowUTC = func() time.Time { return later }
	t.Cleanup(func() { nowUTC = restore })

	require.NoError(t, repo.Update(ctx, plan.ID, domain.TitlePatch("京都旅行")))

	fetched, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "京都旅行", fetched.Title)
	assert.Equal(t, plan.Cards, fetched.Cards)
	assert.Equal(t, plan.Days, fetched.Days)
	assert.True(t, later.Equal(fetched.UpdatedAt))
	assert.True(t, plan.CreatedAt.Equal(fetched.CreatedAt))
}

func TestPlanRepo_UpdateReplacesArraysWhole(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	plan := testutil.KyotoPlan()
	require.NoError(t, repo.Create(ctx, plan))

	moved := testutil.NewTestCard("清水寺", testutil.WithCardID("c1"), testutil.WithColumn("day-0"))
	require.NoError(t, repo.Update(ctx, plan.ID, domain.BoardPatch([]domain.Card{moved}, plan.Days)))

	fetched, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Cards, 1)
	assert.Equal(t, "day-0", fetched.Cards[0].ColumnID)

	require.NoError(t, repo.Update(ctx, plan.ID, domain.BoardPatch(nil, plan.Days)))
	fetched, err = repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Cards)
	assert.Equal(t, "Kyoto", fetched.Title)
}

func TestPlanRepo_IdenticalPersistIsIdempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	plan := testutil.KyotoPlan()
	require.NoError(t, repo.Create(ctx, plan))
	patch := domain.BoardPatch(plan.Cards, plan.Days)

	require.NoError(t, repo.Update(ctx, plan.ID, patch))
	first, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, plan.ID, patch))
	second, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Cards, second.Cards)
	assert.Equal(t, first.Days, second.Days)
}

func TestPlanRepo_UpdateNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)

	err := repo.Update(context.Background(), "ghost", domain.TitlePatch("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	plan := testutil.KyotoPlan()
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.Delete(ctx, plan.ID))

	_, err := repo.Get(ctx, plan.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, plan.ID), domain.ErrNotFound)
}

func TestPlanRepo_ListMostRecentFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	base := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)
	restore := nowUTC
	t.Cleanup(func() { nowUTC = restore })

	for i, id := range []string{"a", "b", "c"} {
		stamp := base.Add(time.Duration(i) * time.Minute)
		nowUTC = func() time.Time { return stamp }
		require.NoError(t, repo.Create(ctx, testutil.NewTestPlan(id, testutil.WithPlanID(id))))
	}
	stamp := base.Add(time.Hour)
	nowUTC = func() time.Time { return stamp }
	require.NoError(t, repo.Update(ctx, "a", domain.TitlePatch("a2")))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	var ids []string
	for _, p := range plans {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "c", "b"}, ids)
}

func TestPlanRepo_WithinTxRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := NewSQLitePlanRepo(tx)
		if err := txRepo.Create(ctx, testutil.NewTestPlan("one", testutil.WithPlanID("one"))); err != nil {
			return err
		}
		return txRepo.Create(ctx, testutil.NewTestPlan("again", testutil.WithPlanID("one")))
	})
	require.Error(t, err)

	_, err = NewSQLitePlanRepo(database).Get(ctx, "one")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
