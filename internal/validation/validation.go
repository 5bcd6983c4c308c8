// Package validation holds the single validator instance shared by the
// repositories. Struct-tag constraints live on the models; this package
// registers the custom objectid rule and converts validator failures into
// the apperr.ValidationError the handlers know how to surface.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"contentapi/internal/apperr"
	"contentapi/internal/objectid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report violations under the json field name, e.g. "userId"
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return objectid.IsValid(fl.Field().String())
	})

	return v
}

// Struct validates s against its tags and returns *apperr.ValidationError
// listing every violated field, or nil.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}

	return &apperr.ValidationError{Fields: fields}
}
