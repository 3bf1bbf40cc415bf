package borrowingsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"libraryservice/model"
	"libraryservice/util/database"
)

// errors used by controllers

type ErrCode string

const (
	ErrInvalid      ErrCode = "INVALID"
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrNoStock      ErrCode = "NO_STOCK"
	ErrNotFound     ErrCode = "NOT_FOUND"
)

type codedError struct {
	code   ErrCode
	fields model.FieldErrors
}

func (e codedError) Error() string {
	if e.fields != nil {
		return string(e.code) + ": " + e.fields.Error()
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func fieldErr(c ErrCode, field, msg string) error {
	return codedError{code: c, fields: model.FieldErrors{field: {msg}}}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Fields returns the field messages attached to a coded error, if any.
func Fields(err error) model.FieldErrors {
	var ce codedError
	if errors.As(err, &ce) {
		return ce.fields
	}
	return nil
}

// Actor is the authenticated caller.
type Actor struct {
	UserID  int64
	IsStaff bool
}

type CreateReq struct {
	BookID             int64
	ExpectedReturnDate time.Time
}

// Detail is a borrowing with its book expanded.
type Detail struct {
	model.Borrowing
	Book model.Book
}

type Repo interface {
	Insert(ctx context.Context, q database.Queryer, b *model.Borrowing) error
	List(ctx context.Context, f model.BorrowingFilter) ([]model.BorrowingListItem, error)
	Get(ctx context.Context, id int64, ownerID *int64) (*model.Borrowing, error)
}

type Books interface {
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Exists(ctx context.Context, q database.Queryer, id int64) (bool, error)
	DecrementInventory(ctx context.Context, q database.Queryer, id int64) (bool, error)
}

type Service interface {
	// Create takes one copy of the book and records the borrowing for who.
	Create(ctx context.Context, who Actor, req CreateReq) (*model.Borrowing, error)
	// List returns the borrowings visible to who. For non-staff callers
	// f.UserID is ignored and rows are limited to their own.
	List(ctx context.Context, who Actor, f model.BorrowingFilter) ([]model.BorrowingListItem, error)
	Detail(ctx context.Context, who Actor, id int64) (*Detail, error)
}

// TxRunner runs fn in one transaction. database.WithTx in production.
type TxRunner func(ctx context.Context, fn func(tx *sqlx.Tx) error) error

type service struct {
	tx    TxRunner
	r     Repo
	books Books
	now   func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *service) { s.now = now } }

// WithTxRunner replaces the transaction boundary.
func WithTxRunner(tx TxRunner) Option { return func(s *service) { s.tx = tx } }

func New(db *sqlx.DB, r Repo, books Books, opts ...Option) Service {
	s := &service{
		tx: func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			return database.WithTx(ctx, db, fn)
		},
		r:     r,
		books: books,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, who Actor, req CreateReq) (*model.Borrowing, error) {
	now := s.now().UTC().Truncate(time.Microsecond)
	expected := req.ExpectedReturnDate.UTC()
	if expected.Before(now) {
		return nil, fieldErr(ErrInvalid, "expected_return_date", "The expected return date cannot be in the past.")
	}
	if req.BookID <= 0 {
		return nil, fieldErr(ErrBookNotFound, "book", "This field is required.")
	}

	b := &model.Borrowing{
		BookID:             req.BookID,
		UserID:             who.UserID,
		BorrowDate:         now,
		ExpectedReturnDate: expected,
	}

	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		ok, err := s.books.DecrementInventory(ctx, tx, req.BookID)
		if err != nil {
			return err
		}
		if !ok {
			exists, err := s.books.Exists(ctx, tx, req.BookID)
			if err != nil {
				return err
			}
			if !exists {
				return fieldErr(ErrBookNotFound, "book", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", req.BookID))
			}
			return fieldErr(ErrNoStock, "book", "This book is not available for borrowing.")
		}
		return s.r.Insert(ctx, tx, b)
	})
	if err != nil {
		var fe model.FieldErrors
		if errors.As(err, &fe) {
			return nil, codedError{code: ErrInvalid, fields: fe}
		}
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, who Actor, f model.BorrowingFilter) ([]model.BorrowingListItem, error) {
	return s.r.List(ctx, visible(who, f))
}

func (s *service) Detail(ctx context.Context, who Actor, id int64) (*Detail, error) {
	b, err := s.r.Get(ctx, id, visible(who, model.BorrowingFilter{}).OwnerID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, codedError{code: ErrNotFound}
		}
		return nil, err
	}
	book, err := s.books.Detail(ctx, b.BookID)
	if err != nil {
		return nil, err
	}
	return &Detail{Borrowing: *b, Book: *book}, nil
}

// visible scopes f to what who may see.
func visible(who Actor, f model.BorrowingFilter) model.BorrowingFilter {
	f.OwnerID = nil
	if !who.IsStaff {
		id := who.UserID
		f.OwnerID = &id
		f.UserID = nil
	}
	return f
}
