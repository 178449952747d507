package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"librarian-backend/internal/shared/patch"
	"librarian-backend/internal/shared/utils"
)

const maxNameLength = 100

// CreateStudentRequest is the body of POST /students.
type CreateStudentRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ClassName string `json:"class_name"`
}

// Normalize trims every field.
func (r *CreateStudentRequest) Normalize() {
	r.FirstName = utils.NormalizeText(r.FirstName)
	r.LastName = utils.NormalizeText(r.LastName)
	r.ClassName = utils.NormalizeText(r.ClassName)
}

func (r CreateStudentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first_name is required"),
			validation.Length(1, maxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last_name is required"),
			validation.Length(1, maxNameLength),
		),
		validation.Field(&r.ClassName,
			validation.Required.Error("class_name is required"),
			validation.Length(1, maxNameLength),
		),
	)
}

// StudentPatch is the body of PUT /students/:id. Only set fields change.
type StudentPatch struct {
	FirstName patch.Field[string] `json:"first_name"`
	LastName  patch.Field[string] `json:"last_name"`
	ClassName patch.Field[string] `json:"class_name"`
}

// IsEmpty reports whether no field carries a value. Explicit nulls count as
// absent.
func (p StudentPatch) IsEmpty() bool {
	return !p.FirstName.IsSet() && !p.LastName.IsSet() && !p.ClassName.IsSet()
}

// Normalize trims every set field.
func (p *StudentPatch) Normalize() {
	p.FirstName = normalizeField(p.FirstName)
	p.LastName = normalizeField(p.LastName)
	p.ClassName = normalizeField(p.ClassName)
}

func (p StudentPatch) Validate() error {
	return validation.Errors{
		"first_name": validateTextField(p.FirstName),
		"last_name":  validateTextField(p.LastName),
		"class_name": validateTextField(p.ClassName),
	}.Filter()
}

// Apply merges the set fields into s.
func (p StudentPatch) Apply(s *Student) {
	if v, ok := p.FirstName.Get(); ok {
		s.FirstName = v
	}
	if v, ok := p.LastName.Get(); ok {
		s.LastName = v
	}
	if v, ok := p.ClassName.Get(); ok {
		s.ClassName = v
	}
}

func normalizeField(f patch.Field[string]) patch.Field[string] {
	if v, ok := f.Get(); ok {
		return patch.Set(utils.NormalizeText(v))
	}
	return f
}

func validateTextField(f patch.Field[string]) error {
	v, ok := f.Get()
	if !ok {
		return nil
	}
	return validation.Validate(v,
		validation.Required.Error("cannot be blank"),
		validation.Length(1, maxNameLength),
	)
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message string `json:"message"`
}

// ClassesResponse is the body of GET /classes.
type ClassesResponse struct {
	Classes []string `json:"classes"`
}
