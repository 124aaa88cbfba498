package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks the validate tags on a request struct and reports every
// failing field in one ValidationError.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid request", nil)
	}

	messages := make([]string, 0, len(fieldErrs))
	fields := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.ActualTag() {
		case "required":
			messages = append(messages, fmt.Sprintf("field %s is required", fe.Field()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("field %s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("field %s is invalid", fe.Field()))
		}
		fields[fe.Field()] = fe.ActualTag()
	}
	return apperrors.NewValidationError(strings.Join(messages, ", "), map[string]any{"fields": fields})
}
