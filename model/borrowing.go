// model/borrowing.go
package model

import "time"

type Borrowing struct {
	ID                 int64      `json:"id" db:"id"`
	BookID             int64      `json:"book" db:"book_id"`
	UserID             int64      `json:"user_id" db:"user_id"`
	BorrowDate         time.Time  `json:"borrow_date" db:"borrow_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date" db:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date" db:"actual_return_date"`
}

// IsActive reports whether the book has not been returned yet.
func (b Borrowing) IsActive() bool { return b.ActualReturnDate == nil }

// Validate enforces the date ordering invariants. It runs before every insert.
func (b Borrowing) Validate() error {
	errs := FieldErrors{}
	if b.BookID <= 0 {
		errs.Add("book", "This field is required.")
	}
	if b.UserID <= 0 {
		errs.Add("user", "This field is required.")
	}
	if b.ExpectedReturnDate.Before(b.BorrowDate) {
		errs.Add("expected_return_date", "The expected return date cannot be before the borrow date.")
	}
	if b.ActualReturnDate != nil && b.ActualReturnDate.Before(b.BorrowDate) {
		errs.Add("actual_return_date", "The actual return date cannot be before the borrow date.")
	}
	return errs.OrNil()
}

// BorrowingFilter narrows a borrowing listing. A nil field means no constraint.
type BorrowingFilter struct {
	// OwnerID restricts rows to one owner; it is how non-staff visibility is enforced.
	OwnerID  *int64
	UserID   *int64
	IsActive *bool
}

// BorrowingListItem is a borrowing joined with its book title.
type BorrowingListItem struct {
	Borrowing
	BookTitle string `json:"book_title" db:"book_title"`
}
