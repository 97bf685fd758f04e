package collect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcollect/internal/apperrors"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal is a struct, so the built-in numeric tags do not apply.
	if err := v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && value.IsPositive()
	}); err != nil {
		panic(fmt.Sprintf("failed to register positive_decimal: %v", err))
	}
	return v
}

// validationError turns the first validator failure into an *apperrors.ValidationError.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	fe := errs[0]
	return apperrors.Invalid(fieldName(fe.Namespace()), reason(fe))
}

// fieldName drops the root struct name: "DraftSplit.Participants[0].Name" -> "participants[0].name".
func fieldName(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}
	return strings.ToLower(namespace)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "positive_decimal":
		return "must be greater than zero"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
