package bookrepo_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"libraryservice/model"
	bookrepo "libraryservice/repository/book"
	"libraryservice/util/database"
	"libraryservice/util/testdb"
)

func newBook(title string, inventory int64) *model.Book {
	return &model.Book{
		Title:     title,
		Author:    "Ursula K. Le Guin",
		Cover:     model.CoverSoft,
		Inventory: inventory,
		DailyFee:  decimal.RequireFromString("1.25"),
	}
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	r := bookrepo.New(testdb.New(t))

	b := newBook("The Dispossessed", 3)
	require.NoError(t, r.Create(ctx, b))
	require.NotZero(t, b.ID)
	require.NoError(t, r.Create(ctx, newBook("The Lathe of Heaven", 1)))

	got, err := r.Detail(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "The Dispossessed", got.Title)
	require.Equal(t, model.CoverSoft, got.Cover)
	require.True(t, got.DailyFee.Equal(decimal.RequireFromString("1.25")), got.DailyFee.String())

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, b.ID, list[0].ID)

	got.Inventory = 7
	got.Cover = model.CoverHard
	require.NoError(t, r.Update(ctx, got))
	got, err = r.Detail(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, int64(7), got.Inventory)
	require.Equal(t, model.CoverHard, got.Cover)

	require.NoError(t, r.Delete(ctx, b.ID))
	_, err = r.Detail(ctx, b.ID)
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestListEmptyIsNotNil(t *testing.T) {
	list, err := bookrepo.New(testdb.New(t)).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestUpdateDeleteUnknown(t *testing.T) {
	ctx := context.Background()
	r := bookrepo.New(testdb.New(t))

	b := newBook("Ghost", 1)
	b.ID = 404
	require.ErrorIs(t, r.Update(ctx, b), database.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, 404), database.ErrNotFound)
}

func TestNegativeInventoryRejectedByStore(t *testing.T) {
	r := bookrepo.New(testdb.New(t))
	err := r.Create(context.Background(), newBook("Broken", -1))
	require.ErrorIs(t, err, database.ErrCheckViolation)
}

func TestDecrementInventory(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	r := bookrepo.New(db)

	b := newBook("Earthsea", 1)
	require.NoError(t, r.Create(ctx, b))

	ok, err := r.DecrementInventory(ctx, db, b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// Empty shelf: the guard refuses and the row is unchanged.
	ok, err = r.DecrementInventory(ctx, db, b.ID)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := r.Detail(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.Inventory)

	ok, err = r.DecrementInventory(ctx, db, 999)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	r := bookrepo.New(db)

	b := newBook("Tehanu", 0)
	require.NoError(t, r.Create(ctx, b))

	ok, err := r.Exists(ctx, db, b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Exists(ctx, db, b.ID+1)
	require.NoError(t, err)
	require.False(t, ok)
}
