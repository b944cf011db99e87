// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/MKhiriev/book-collections/models"
)

const (
	FieldTitle       = "Title"
	FieldDescription = "Description"
	FieldIdentity    = "Identity"
	FieldSecret      = "Secret"
)

// ruleNotBlank rejects strings made only of whitespace.
const ruleNotBlank = "notblank"

// defaultFields is the checking order per payload type.
var defaultFields = map[reflect.Type][]string{
	reflect.TypeFor[models.BookPayload](): {FieldTitle, FieldDescription},
	reflect.TypeFor[models.Credentials](): {FieldIdentity, FieldSecret},
}

// PayloadValidator validates book and credential payloads.
type PayloadValidator struct {
	validate *validator.Validate
}

// NewPayloadValidator returns a Validator that reports fields by their JSON
// names.
func NewPayloadValidator() Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	if err := validate.RegisterValidation(ruleNotBlank, nonstandard.NotBlank); err != nil {
		panic(err)
	}

	return &PayloadValidator{validate: validate}
}

func (v *PayloadValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ErrUnsupportedType
		}
		value = value.Elem()
	}

	order, ok := defaultFields[value.Type()]
	if !ok {
		return ErrUnsupportedType
	}
	if len(fields) == 0 {
		fields = order
	}

	target := value.Interface()
	for _, field := range fields {
		if _, found := value.Type().FieldByName(field); !found {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}

		err := v.validate.StructPartialCtx(ctx, target, field)
		if err == nil {
			continue
		}

		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return &ValidationError{Field: fieldErrors[0].Field(), Rule: fieldErrors[0].Tag()}
		}
		return err
	}

	return nil
}
