package borrowingrepo

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"libraryservice/model"
	"libraryservice/util/database"
)

type Repo interface {
	// Insert validates b and stores it inside the caller's transaction.
	Insert(ctx context.Context, q database.Queryer, b *model.Borrowing) error
	List(ctx context.Context, f model.BorrowingFilter) ([]model.BorrowingListItem, error)
	// Get returns database.ErrNotFound when the row does not exist or is not
	// owned by ownerID.
	Get(ctx context.Context, id int64, ownerID *int64) (*model.Borrowing, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, q database.Queryer, b *model.Borrowing) error {
	if err := b.Validate(); err != nil {
		return err
	}
	const stmt = `
INSERT INTO borrowings (book_id, user_id, borrow_date, expected_return_date, actual_return_date)
VALUES (?, ?, ?, ?, ?)
RETURNING id`
	err := q.QueryRowxContext(ctx, q.Rebind(stmt),
		b.BookID, b.UserID, b.BorrowDate, b.ExpectedReturnDate, b.ActualReturnDate,
	).Scan(&b.ID)
	return database.MapError(err)
}

var borrowingColumns = []any{
	goqu.I("br.id").As("id"),
	goqu.I("br.book_id").As("book_id"),
	goqu.I("br.user_id").As("user_id"),
	goqu.I("br.borrow_date").As("borrow_date"),
	goqu.I("br.expected_return_date").As("expected_return_date"),
	goqu.I("br.actual_return_date").As("actual_return_date"),
}

func (r *repo) List(ctx context.Context, f model.BorrowingFilter) ([]model.BorrowingListItem, error) {
	cols := append(append([]any{}, borrowingColumns...), goqu.I("b.title").As("book_title"))
	query, args, err := r.dialect().
		From(goqu.T("borrowings").As("br")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("br.book_id")))).
		Select(cols...).
		Where(predicates(f)...).
		Order(goqu.I("br.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	out := []model.BorrowingListItem{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, database.MapError(err)
	}
	return out, nil
}

func (r *repo) Get(ctx context.Context, id int64, ownerID *int64) (*model.Borrowing, error) {
	where := append(predicates(model.BorrowingFilter{OwnerID: ownerID}), goqu.I("br.id").Eq(id))
	query, args, err := r.dialect().
		From(goqu.T("borrowings").As("br")).
		Select(borrowingColumns...).
		Where(where...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var b model.Borrowing
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		return nil, database.MapError(err)
	}
	return &b, nil
}

func (r *repo) dialect() goqu.DialectWrapper { return database.Dialect(r.db.DriverName()) }

// predicates turns a filter into WHERE terms on the "br" alias.
func predicates(f model.BorrowingFilter) []exp.Expression {
	var ex []exp.Expression
	if f.OwnerID != nil {
		ex = append(ex, goqu.I("br.user_id").Eq(*f.OwnerID))
	}
	if f.UserID != nil {
		ex = append(ex, goqu.I("br.user_id").Eq(*f.UserID))
	}
	if f.IsActive != nil {
		if *f.IsActive {
			ex = append(ex, goqu.I("br.actual_return_date").IsNull())
		} else {
			ex = append(ex, goqu.I("br.actual_return_date").IsNotNull())
		}
	}
	return ex
}
