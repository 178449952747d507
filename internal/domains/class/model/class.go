package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"librarian-backend/internal/shared/apperror"
	"librarian-backend/internal/shared/utils"
)

// Class is a registration marker. Membership lives on Student.ClassName, so
// Students is always empty.
type Class struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Students  []string  `json:"students" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewClass(name string, now time.Time) *Class {
	return &Class{
		ID:        uuid.New(),
		Name:      name,
		Students:  []string{},
		CreatedAt: now.UTC(),
	}
}

// CreateClassRequest is the body of POST /classes.
type CreateClassRequest struct {
	Name string `json:"name"`
}

func (r *CreateClassRequest) Normalize() {
	r.Name = utils.NormalizeText(r.Name)
}

func (r CreateClassRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
	)
}

type CreateClassResponse struct {
	Message   string `json:"message"`
	ClassName string `json:"class_name"`
}

var ErrInvalidClass = apperror.New(apperror.InvalidArgument, "INVALID_CLASS", "Invalid class data")
