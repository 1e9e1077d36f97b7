package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica un error de dominio. La capa HTTP traduce el Kind a un código de estado;
// nunca se infiere a partir del texto del mensaje.
type Kind int

const (
	KindInfrastructure Kind = iota // fallo de persistencia u otro recurso externo (500)
	KindValidation                 // entrada mal formada o fuera de rango (400)
	KindAuthentication             // token ausente, inválido o expirado; credenciales erróneas (401)
	KindAuthorization              // token válido, rol insuficiente (403)
	KindNotFound                   // recurso inexistente (404)
	KindConflict                   // violación de unicidad, p. ej. email duplicado (400)
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "infrastructure"
	}
}

// FieldError describe un campo rechazado por la validación.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error es el error tipado de dominio. Message es seguro para el cliente; Err conserva la causa
// (solo para logs).
type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind y Message, de modo que errors.Is(err, ErrUserNotFound) funciona
// aunque el error haya sido reconstruido con otra causa.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// New construye un error de dominio sin causa.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap construye un error de dominio conservando la causa original.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Infrastructure envuelve un fallo de infraestructura con el mensaje genérico para el cliente.
func Infrastructure(err error) *Error {
	return Wrap(KindInfrastructure, MsgInternal, err)
}

// Validation construye un error de validación con el detalle por campo.
func Validation(details []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: MsgValidation, Details: details}
}

// KindOf devuelve el Kind del primer *Error en la cadena; cualquier otro error es infraestructura.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInfrastructure
}

// Mensajes expuestos al cliente.
const (
	MsgUnauthorized       = "Unauthorized"
	MsgInvalidToken       = "Invalid or expired token"
	MsgForbidden          = "Forbidden - Admin access required"
	MsgUserNotFound       = "User not found"
	MsgEmailExists        = "User with this email already exists"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInternal           = "Internal server error"
	MsgValidation         = "Validation failed"
	MsgInvalidBody        = "Invalid input"
	MsgEmptyUpdate        = "At least one field must be provided for update"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrUnauthenticated    = New(KindAuthentication, MsgUnauthorized)
	ErrInvalidToken       = New(KindAuthentication, MsgInvalidToken)
	ErrInvalidCredentials = New(KindAuthentication, MsgInvalidCredentials)
	ErrForbidden          = New(KindAuthorization, MsgForbidden)
	ErrUserNotFound       = New(KindNotFound, MsgUserNotFound)
	ErrEmailAlreadyExists = New(KindConflict, MsgEmailExists)
	ErrInvalidInput       = New(KindValidation, MsgInvalidBody)
	ErrEmptyUpdate        = New(KindValidation, MsgEmptyUpdate)
)
