package book

import (
	"github.com/shopspring/decimal"

	"libraryservice/model"
)

// BookReq is the body of POST and PUT.
type BookReq struct {
	Title     string           `json:"title" validate:"required,max=255"`
	Author    string           `json:"author" validate:"required,max=255"`
	Cover     model.Cover      `json:"cover" validate:"required,oneof=HARD SOFT"`
	Inventory *int64           `json:"inventory" validate:"required,gte=0"`
	DailyFee  *decimal.Decimal `json:"daily_fee" validate:"required"`
}

func (r BookReq) apply(b *model.Book) {
	b.Title = r.Title
	b.Author = r.Author
	b.Cover = r.Cover
	b.Inventory = *r.Inventory
	b.DailyFee = *r.DailyFee
}

// PatchBookReq is the body of PATCH; absent fields are left alone.
type PatchBookReq struct {
	Title     *string          `json:"title" validate:"omitempty,max=255"`
	Author    *string          `json:"author" validate:"omitempty,max=255"`
	Cover     *model.Cover     `json:"cover" validate:"omitempty,oneof=HARD SOFT"`
	Inventory *int64           `json:"inventory" validate:"omitempty,gte=0"`
	DailyFee  *decimal.Decimal `json:"daily_fee"`
}

func (r PatchBookReq) apply(b *model.Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.Cover != nil {
		b.Cover = *r.Cover
	}
	if r.Inventory != nil {
		b.Inventory = *r.Inventory
	}
	if r.DailyFee != nil {
		b.DailyFee = *r.DailyFee
	}
}
