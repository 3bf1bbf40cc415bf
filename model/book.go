// model/book.go
package model

import "github.com/shopspring/decimal"

type Cover string

const (
	CoverHard Cover = "HARD"
	CoverSoft Cover = "SOFT"
)

func (c Cover) Valid() bool { return c == CoverHard || c == CoverSoft }

var maxDailyFee = decimal.RequireFromString("9999.99")

type Book struct {
	ID        int64           `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	Author    string          `json:"author" db:"author"`
	Cover     Cover           `json:"cover" db:"cover"`
	Inventory int64           `json:"inventory" db:"inventory"`
	DailyFee  decimal.Decimal `json:"daily_fee" db:"daily_fee"`
}

// Validate checks the column constraints of the books table.
func (b Book) Validate() error {
	errs := FieldErrors{}
	if b.Title == "" {
		errs.Add("title", "This field may not be blank.")
	} else if len(b.Title) > 255 {
		errs.Add("title", "Ensure this field has no more than 255 characters.")
	}
	if b.Author == "" {
		errs.Add("author", "This field may not be blank.")
	} else if len(b.Author) > 255 {
		errs.Add("author", "Ensure this field has no more than 255 characters.")
	}
	if !b.Cover.Valid() {
		errs.Add("cover", `"`+string(b.Cover)+`" is not a valid choice.`)
	}
	if b.Inventory < 0 {
		errs.Add("inventory", "Ensure this value is greater than or equal to 0.")
	}
	switch {
	case b.DailyFee.IsNegative():
		errs.Add("daily_fee", "Ensure this value is greater than or equal to 0.")
	case !b.DailyFee.Equal(b.DailyFee.Truncate(2)):
		errs.Add("daily_fee", "Ensure that there are no more than 2 decimal places.")
	case b.DailyFee.GreaterThan(maxDailyFee):
		errs.Add("daily_fee", "Ensure that there are no more than 6 digits in total.")
	}
	return errs.OrNil()
}
