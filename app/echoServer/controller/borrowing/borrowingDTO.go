package borrowing

import (
	"errors"
	"strings"
	"time"

	"libraryservice/model"
	borrowingsvc "libraryservice/service/borrowing"
)

type CreateBorrowingReq struct {
	Book               int64  `json:"book" validate:"required,gt=0"`
	ExpectedReturnDate string `json:"expected_return_date" validate:"required"`
}

// Naive timestamps are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

const badTimestamp = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New(badTimestamp)
}

type BorrowingResp struct {
	ID                 int64      `json:"id"`
	Book               int64      `json:"book"`
	BorrowDate         time.Time  `json:"borrow_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`
}

func toResp(b *model.Borrowing) BorrowingResp {
	return BorrowingResp{
		ID:                 b.ID,
		Book:               b.BookID,
		BorrowDate:         b.BorrowDate,
		ExpectedReturnDate: b.ExpectedReturnDate,
		ActualReturnDate:   b.ActualReturnDate,
	}
}

// BorrowingListItemResp shows the book by title. UserID is only set for staff.
type BorrowingListItemResp struct {
	ID                 int64      `json:"id"`
	Book               string     `json:"book"`
	BorrowDate         time.Time  `json:"borrow_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`
	UserID             *int64     `json:"user_id,omitempty"`
}

func toListResp(rows []model.BorrowingListItem, staff bool) []BorrowingListItemResp {
	out := make([]BorrowingListItemResp, 0, len(rows))
	for _, r := range rows {
		item := BorrowingListItemResp{
			ID:                 r.ID,
			Book:               r.BookTitle,
			BorrowDate:         r.BorrowDate,
			ExpectedReturnDate: r.ExpectedReturnDate,
			ActualReturnDate:   r.ActualReturnDate,
		}
		if staff {
			uid := r.UserID
			item.UserID = &uid
		}
		out = append(out, item)
	}
	return out
}

type BorrowingDetailResp struct {
	ID                 int64      `json:"id"`
	Book               model.Book `json:"book"`
	BorrowDate         time.Time  `json:"borrow_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`
	UserID             *int64     `json:"user_id,omitempty"`
}

func toDetailResp(d *borrowingsvc.Detail, staff bool) BorrowingDetailResp {
	out := BorrowingDetailResp{
		ID:                 d.ID,
		Book:               d.Book,
		BorrowDate:         d.BorrowDate,
		ExpectedReturnDate: d.ExpectedReturnDate,
		ActualReturnDate:   d.ActualReturnDate,
	}
	if staff {
		uid := d.UserID
		out.UserID = &uid
	}
	return out
}
