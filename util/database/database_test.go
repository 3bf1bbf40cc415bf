package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"libraryservice/util/database"
	"libraryservice/util/testdb"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := database.New(context.Background(), database.Config{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, db.Ping(context.Background()))

	var n int
	require.NoError(t, db.GetContext(context.Background(), &n, `SELECT COUNT(*) FROM books`))
	require.Zero(t, n)
}

func TestMapError_Constraints(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	testdb.MustExec(t, db, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, "a@test.com", "x")

	_, err := db.ExecContext(ctx, db.Rebind(`INSERT INTO users (email, password_hash) VALUES (?, ?)`), "A@test.com", "x")
	require.ErrorIs(t, database.MapError(err), database.ErrDuplicateKey)

	_, err = db.ExecContext(ctx, db.Rebind(`INSERT INTO books (title, author, cover, inventory, daily_fee) VALUES (?, ?, ?, ?, ?)`), "T", "A", "HARD", -1, "1.00")
	require.ErrorIs(t, database.MapError(err), database.ErrCheckViolation)

	_, err = db.ExecContext(ctx, db.Rebind(`INSERT INTO borrowings (book_id, user_id, borrow_date, expected_return_date) VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`), 999, 999)
	require.ErrorIs(t, database.MapError(err), database.ErrForeignKey)

	var id int64
	err = db.GetContext(ctx, &id, `SELECT id FROM books WHERE id = 1`)
	require.True(t, database.IsNotFound(database.MapError(err)))

	plain := errors.New("boom")
	require.Same(t, plain, database.MapError(plain))
	require.NoError(t, database.MapError(nil))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := database.WithTx(ctx, db.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO books (title, author, cover, inventory, daily_fee) VALUES (?, ?, ?, ?, ?)`), "T", "A", "SOFT", 1, "2.05"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.GetContext(ctx, &n, `SELECT COUNT(*) FROM books`))
	require.Zero(t, n)
}

func TestWithTx_Commits(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	err := database.WithTx(ctx, db.DB, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO books (title, author, cover, inventory, daily_fee) VALUES (?, ?, ?, ?, ?)`), "T", "A", "SOFT", 1, "2.05")
		return err
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, db.GetContext(ctx, &n, `SELECT COUNT(*) FROM books`))
	require.Equal(t, 1, n)
}

func TestDialect(t *testing.T) {
	sqlStr, _, err := database.Dialect(database.DriverSQLite).From("books").Where(goqu.C("id").Eq(1)).Prepared(true).ToSQL()
	require.NoError(t, err)
	require.Contains(t, sqlStr, "?")

	sqlStr, _, err = database.Dialect(database.DriverPgx).From("books").Where(goqu.C("id").Eq(1)).Prepared(true).ToSQL()
	require.NoError(t, err)
	require.Contains(t, sqlStr, "$1")
}
