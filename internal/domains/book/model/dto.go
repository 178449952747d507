package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"librarian-backend/internal/shared/patch"
	"librarian-backend/internal/shared/utils"
)

const (
	maxTitleLength  = 255
	maxAuthorLength = 255
	DefaultQuantity = 1
)

// CreateBookRequest is the body of POST /books. Quantity defaults to 1 when
// omitted.
type CreateBookRequest struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Quantity *int   `json:"quantity"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = utils.NormalizeText(r.Title)
	r.Author = utils.NormalizeText(r.Author)
	if r.Quantity == nil {
		q := DefaultQuantity
		r.Quantity = &q
	}
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, maxTitleLength),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, maxAuthorLength),
		),
		validation.Field(&r.Quantity,
			validation.Min(0).Error("quantity must be zero or greater"),
		),
	)
}

// BookPatch is the body of PUT /books/:id.
type BookPatch struct {
	Title     patch.Field[string] `json:"title"`
	Author    patch.Field[string] `json:"author"`
	Quantity  patch.Field[int]    `json:"quantity"`
	Available patch.Field[bool]   `json:"available"`
}

func (p BookPatch) IsEmpty() bool {
	return !p.Title.IsSet() && !p.Author.IsSet() && !p.Quantity.IsSet() && !p.Available.IsSet()
}

func (p *BookPatch) Normalize() {
	if v, ok := p.Title.Get(); ok {
		p.Title = patch.Set(utils.NormalizeText(v))
	}
	if v, ok := p.Author.Get(); ok {
		p.Author = patch.Set(utils.NormalizeText(v))
	}
}

func (p BookPatch) Validate() error {
	errs := validation.Errors{}
	if v, ok := p.Title.Get(); ok {
		errs["title"] = validation.Validate(v,
			validation.Required.Error("cannot be blank"),
			validation.Length(1, maxTitleLength),
		)
	}
	if v, ok := p.Author.Get(); ok {
		errs["author"] = validation.Validate(v,
			validation.Required.Error("cannot be blank"),
			validation.Length(1, maxAuthorLength),
		)
	}
	if v, ok := p.Quantity.Get(); ok {
		errs["quantity"] = validation.Validate(v, validation.Min(0).Error("must be zero or greater"))
	}
	return errs.Filter()
}

// Apply merges the set fields into b.
func (p BookPatch) Apply(b *Book) {
	if v, ok := p.Title.Get(); ok {
		b.Title = v
	}
	if v, ok := p.Author.Get(); ok {
		b.Author = v
	}
	if v, ok := p.Quantity.Get(); ok {
		b.Quantity = v
	}
	if v, ok := p.Available.Get(); ok {
		b.Available = v
	}
}

type DeleteResponse struct {
	Message string `json:"message"`
}
