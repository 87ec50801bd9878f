package domain

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	yyyymmPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// Validator returns the shared validator with the custom rules
// registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("yyyymm", validateYYYYMM)
		_ = validate.RegisterValidation("role", validateRole)
	})
	return validate
}

// validateYYYYMM checks month window strings like 2024-03
func validateYYYYMM(fl validator.FieldLevel) bool {
	return yyyymmPattern.MatchString(fl.Field().String())
}

// validateRole checks the value is one of the known user roles
func validateRole(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}

// Validate runs struct validation and converts failures into a
// ValidationError keyed by json field name.
func Validate(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Bu alan zorunludur"
	case "gt", "gte", "min":
		return "Değer en az " + fe.Param() + " olmalıdır"
	case "lt", "lte", "max":
		return "Değer en fazla " + fe.Param() + " olmalıdır"
	case "email":
		return "Geçerli bir e-posta adresi girin"
	case "oneof":
		return "Geçersiz değer, izin verilenler: " + fe.Param()
	case "yyyymm":
		return "Ay YYYY-AA biçiminde olmalıdır"
	case "role":
		return "Geçersiz kullanıcı rolü"
	default:
		return "Geçersiz değer"
	}
}
