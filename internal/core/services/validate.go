package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput turns struct tag violations into a ValidationError carrying
// one message per field.
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return domain.NewValidation("invalid input", fields...)
}

// fieldPath drops the struct name from the namespace: "CreateOrderInput.items[0].quantity" -> "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "uuid":
		return "must be a valid id"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// parseID is used for ids that arrive outside a validated struct (path params).
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidation("invalid "+field, domain.FieldError{Field: field, Message: "must be a valid id"})
	}
	return id, nil
}

// optionalID parses an already validated, possibly empty id.
func optionalID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	return uuid.MustParse(raw)
}
