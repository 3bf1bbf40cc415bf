package borrowingrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"libraryservice/model"
	borrowingrepo "libraryservice/repository/borrowing"
	"libraryservice/util/database"
	"libraryservice/util/testdb"
)

type fixture struct {
	db         *database.DB
	r          borrowingrepo.Repo
	alice, bob int64
	book       int64
	now        time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	f := &fixture{db: db, r: borrowingrepo.New(db), now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	f.alice = testdb.MustExec(t, db, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, "alice@library.io", "x")
	f.bob = testdb.MustExec(t, db, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, "bob@library.io", "x")
	f.book = testdb.MustExec(t, db, `INSERT INTO books (title, author, cover, inventory, daily_fee) VALUES (?, ?, ?, ?, ?)`,
		"Kindred", "Octavia E. Butler", "HARD", 5, "0.50")
	return f
}

func (f *fixture) insert(t *testing.T, user int64, returned bool) *model.Borrowing {
	t.Helper()
	b := &model.Borrowing{
		BookID:             f.book,
		UserID:             user,
		BorrowDate:         f.now,
		ExpectedReturnDate: f.now.Add(72 * time.Hour),
	}
	if returned {
		at := f.now.Add(24 * time.Hour)
		b.ActualReturnDate = &at
	}
	require.NoError(t, f.r.Insert(context.Background(), f.db, b))
	return b
}

func ptr[T any](v T) *T { return &v }

func TestInsertAndGet(t *testing.T) {
	f := setup(t)
	b := f.insert(t, f.alice, false)
	require.NotZero(t, b.ID)

	got, err := f.r.Get(context.Background(), b.ID, nil)
	require.NoError(t, err)
	require.Equal(t, f.book, got.BookID)
	require.Equal(t, f.alice, got.UserID)
	require.True(t, got.BorrowDate.Equal(f.now))
	require.True(t, got.ExpectedReturnDate.Equal(f.now.Add(72*time.Hour)))
	require.Nil(t, got.ActualReturnDate)
	require.True(t, got.IsActive())
}

func TestInsertRunsModelValidation(t *testing.T) {
	f := setup(t)
	b := &model.Borrowing{
		BookID:             f.book,
		UserID:             f.alice,
		BorrowDate:         f.now,
		ExpectedReturnDate: f.now.Add(-time.Hour),
	}
	err := f.r.Insert(context.Background(), f.db, b)

	var fe model.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe, "expected_return_date")
	require.Zero(t, b.ID)

	var n int
	require.NoError(t, f.db.Get(&n, `SELECT COUNT(*) FROM borrowings`))
	require.Zero(t, n)
}

func TestInsertUnknownBook(t *testing.T) {
	f := setup(t)
	err := f.r.Insert(context.Background(), f.db, &model.Borrowing{
		BookID:             f.book + 100,
		UserID:             f.alice,
		BorrowDate:         f.now,
		ExpectedReturnDate: f.now,
	})
	require.ErrorIs(t, err, database.ErrForeignKey)
}

func TestGetScopedToOwner(t *testing.T) {
	f := setup(t)
	b := f.insert(t, f.alice, false)

	_, err := f.r.Get(context.Background(), b.ID, ptr(f.bob))
	require.ErrorIs(t, err, database.ErrNotFound)

	got, err := f.r.Get(context.Background(), b.ID, ptr(f.alice))
	require.NoError(t, err)
	require.Equal(t, b.ID, got.ID)
}

func TestListFilters(t *testing.T) {
	f := setup(t)
	a1 := f.insert(t, f.alice, false)
	a2 := f.insert(t, f.alice, true)
	b1 := f.insert(t, f.bob, false)
	ctx := context.Background()

	ids := func(rows []model.BorrowingListItem) []int64 {
		out := []int64{}
		for _, r := range rows {
			out = append(out, r.ID)
		}
		return out
	}

	cases := []struct {
		name string
		f    model.BorrowingFilter
		want []int64
	}{
		{"all", model.BorrowingFilter{}, []int64{a1.ID, a2.ID, b1.ID}},
		{"owner", model.BorrowingFilter{OwnerID: ptr(f.alice)}, []int64{a1.ID, a2.ID}},
		{"user filter", model.BorrowingFilter{UserID: ptr(f.bob)}, []int64{b1.ID}},
		{"active", model.BorrowingFilter{IsActive: ptr(true)}, []int64{a1.ID, b1.ID}},
		{"returned", model.BorrowingFilter{IsActive: ptr(false)}, []int64{a2.ID}},
		{"owner and active", model.BorrowingFilter{OwnerID: ptr(f.alice), IsActive: ptr(true)}, []int64{a1.ID}},
		{"owner wins over user filter", model.BorrowingFilter{OwnerID: ptr(f.alice), UserID: ptr(f.bob)}, []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := f.r.List(ctx, tc.f)
			require.NoError(t, err)
			require.Equal(t, tc.want, ids(rows))
		})
	}

	rows, err := f.r.List(ctx, model.BorrowingFilter{UserID: ptr(f.bob)})
	require.NoError(t, err)
	require.Equal(t, "Kindred", rows[0].BookTitle)
	require.Equal(t, f.bob, rows[0].UserID)
}
