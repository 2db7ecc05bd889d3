package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"provafoco/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance. Field names in errors follow the json tags.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates a request DTO and returns domain.ValidationErrors, or nil.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewInvalidInputError(err.Error())
	}
	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "min", "max", "gte", "lte":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()),
			Value:   fe.Value(),
		}
	case "oneof", "url", "startswith":
		return domain.NewInvalidFormatError(field, fe.Value())
	default:
		return domain.NewValidationError(field, fmt.Sprintf("%s failed on %s", field, fe.Tag()))
	}
}

// fieldPath drops the top-level struct name: "SubmitAnswerRequest.questionId" -> "questionId".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// ValidateID checks a path identifier.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errs = append(errs, domain.NewMissingFieldError(field))
	} else if len(id) > 64 {
		errs = append(errs, domain.NewInvalidFormatError(field, id))
	}
	return errs
}

// ValidatePlacement parses an ad placement tag.
func (v *Validator) ValidatePlacement(raw string) (domain.Placement, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return "", domain.ValidationErrors{domain.NewMissingFieldError("placement")}
	}
	p, ok := domain.ParsePlacement(raw)
	if !ok {
		return "", domain.ValidationErrors{domain.NewInvalidFormatError("placement", raw)}
	}
	return p, nil
}
