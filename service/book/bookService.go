package booksvc

import (
	"context"
	"errors"

	"libraryservice/model"
	"libraryservice/util/database"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrInvalid  ErrCode = "INVALID"
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

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Fields returns the per-field messages carried by an ErrInvalid error.
func Fields(err error) model.FieldErrors {
	var ce codedError
	if errors.As(err, &ce) {
		return ce.fields
	}
	return nil
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	// Update loads the book, lets apply change it and saves the result.
	// PUT and PATCH differ only in what apply overwrites.
	Update(ctx context.Context, id int64, apply func(*model.Book)) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, b *model.Book) error {
	if err := validate(b); err != nil {
		return err
	}
	return mapErr(s.r.Create(ctx, b))
}

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id int64, apply func(*model.Book)) (*model.Book, error) {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	apply(b)
	b.ID = id
	if err := validate(b); err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, b); err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error { return mapErr(s.r.Delete(ctx, id)) }

func validate(b *model.Book) error {
	if err := b.Validate(); err != nil {
		var fe model.FieldErrors
		errors.As(err, &fe)
		return codedError{code: ErrInvalid, fields: fe}
	}
	return nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return codedError{code: ErrNotFound}
	case errors.Is(err, database.ErrCheckViolation):
		return codedError{code: ErrInvalid, fields: model.FieldErrors{
			"non_field_errors": {"Book violates a catalog constraint."},
		}}
	}
	return err
}
