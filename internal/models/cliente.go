package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UltimaCompra holds a customer's most recent purchase. Produto and Valor
// are pointers so required means present, not non-zero: an empty product
// name and a zero-value purchase are both legal.
type UltimaCompra struct {
	Produto *string  `json:"produto" bson:"produto" validate:"required"`
	Valor   *float64 `json:"valor" bson:"valor" validate:"required"`
	Data    string   `json:"data" bson:"data" validate:"required,datetime=2006-01-02"`
}

// Cliente represents a customer document stored in the clientes collection.
// The Mongo-assigned _id is deliberately absent: it never leaves the
// repository layer, and the external id below is the only identifier
// exposed to callers.
type Cliente struct {
	ID           string        `json:"id" bson:"id" validate:"required,min=1"`
	Nome         string        `json:"nome" bson:"nome" validate:"required,min=2"`
	Idade        int           `json:"idade" bson:"idade" validate:"required,gt=0"`
	UltimaCompra *UltimaCompra `json:"ultima_compra" bson:"ultima_compra,omitempty" validate:"omitempty"`
}

// ClienteUpdate is a partial patch: nil fields are left untouched,
// present fields must still satisfy the same constraints as on create.
type ClienteUpdate struct {
	Nome         *string       `json:"nome,omitempty" validate:"omitempty,min=2"`
	Idade        *int          `json:"idade,omitempty" validate:"omitempty,gt=0"`
	UltimaCompra *UltimaCompra `json:"ultima_compra,omitempty" validate:"omitempty"`
}

// ClienteFilter holds filtering options for listing clientes
type ClienteFilter struct {
	Nome     string
	IdadeMin int
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints on a cliente
func (c *Cliente) Validate() error {
	if err := validate.Struct(c); err != nil {
		return ErrInvalidInput(validationMessage(err))
	}
	return nil
}

// Validate checks structural constraints on the fields present in a patch
func (u *ClienteUpdate) Validate() error {
	if err := validate.Struct(u); err != nil {
		return ErrInvalidInput(validationMessage(err))
	}
	return nil
}

// IsEmpty reports whether the patch carries no fields at all
func (u *ClienteUpdate) IsEmpty() bool {
	return u.Nome == nil && u.Idade == nil && u.UltimaCompra == nil
}

// validationMessage flattens validator errors into a single client-facing message
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request payload"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}
