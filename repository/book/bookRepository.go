package bookrepo

import (
	"context"

	"libraryservice/model"
	"libraryservice/util/database"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error

	// Used inside the borrowing transaction.
	Exists(ctx context.Context, q database.Queryer, id int64) (bool, error)
	DecrementInventory(ctx context.Context, q database.Queryer, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

const bookColumns = `id, title, author, cover, inventory, daily_fee`

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO books (title, author, cover, inventory, daily_fee)
VALUES (?, ?, ?, ?, ?)
RETURNING id`
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(q), b.Title, b.Author, b.Cover, b.Inventory, b.DailyFee).Scan(&b.ID)
	return database.MapError(err)
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	out := []model.Book{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, database.MapError(err)
	}
	return out, nil
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	if err := r.db.GetContext(ctx, &b, r.db.Rebind(`SELECT `+bookColumns+` FROM books WHERE id = ?`), id); err != nil {
		return nil, database.MapError(err)
	}
	return &b, nil
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
UPDATE books
SET title = ?, author = ?, cover = ?, inventory = ?, daily_fee = ?
WHERE id = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), b.Title, b.Author, b.Cover, b.Inventory, b.DailyFee, b.ID)
	if err != nil {
		return database.MapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM books WHERE id = ?`), id)
	if err != nil {
		return database.MapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *repo) Exists(ctx context.Context, q database.Queryer, id int64) (bool, error) {
	var n int
	if err := q.QueryRowxContext(ctx, q.Rebind(`SELECT COUNT(*) FROM books WHERE id = ?`), id).Scan(&n); err != nil {
		return false, database.MapError(err)
	}
	return n > 0, nil
}

// DecrementInventory takes one copy off the shelf. The guard in the WHERE
// clause makes it a compare-and-swap: false means no copy was left.
func (r *repo) DecrementInventory(ctx context.Context, q database.Queryer, id int64) (bool, error) {
	const stmt = `
UPDATE books
SET inventory = inventory - 1
WHERE id = ?
  AND inventory > 0`
	res, err := q.ExecContext(ctx, q.Rebind(stmt), id)
	if err != nil {
		return false, database.MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
