// Package validation valida los DTOs de entrada con go-playground/validator antes de tocar
// el hash de contraseñas o la base de datos.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/user-admin-api/internal/domain"
	"github.com/jhoicas/user-admin-api/internal/domain/entity"
)

// PasswordMinLength longitud mínima de contraseñas nuevas.
const PasswordMinLength = 8

// passwordMaxBytes límite de bcrypt; por encima GenerateFromPassword falla.
const passwordMaxBytes = 72

// Validator envuelve *validator.Validate con las reglas propias (password, role).
// Es seguro para uso concurrente.
type Validator struct {
	v *validator.Validate
}

// New construye el validador y registra las reglas propias.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Usar el nombre JSON del campo en los detalles de error.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", validatePassword)
	_ = v.RegisterValidation("role", validateRole)
	return &Validator{v: v}
}

// Struct valida s y devuelve un *domain.Error de tipo Validation con el detalle por campo, o nil.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Wrap(domain.KindValidation, domain.MsgInvalidBody, err)
	}
	details := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, domain.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return domain.Validation(details)
}

// validatePassword exige al menos una mayúscula, una minúscula y un dígito, y que bcrypt pueda hashearlo.
func validatePassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len([]rune(s)) < PasswordMinLength || len(s) > passwordMaxBytes {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func validateRole(fl validator.FieldLevel) bool {
	return entity.Role(fl.Field().String()).Valid()
}

func message(fe validator.FieldError) string {
	field := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "password":
		return fmt.Sprintf("Password must be %d-%d characters and contain an uppercase letter, a lowercase letter and a number",
			PasswordMinLength, passwordMaxBytes)
	case "role":
		return "Role must be one of USER, ADMIN"
	default:
		return field + " is invalid"
	}
}
