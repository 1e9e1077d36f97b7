package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-admin-api/internal/application/dto"
	"github.com/jhoicas/user-admin-api/internal/domain"
	"github.com/jhoicas/user-admin-api/pkg/logger"
)

// statusFor traduce el Kind de dominio a código HTTP.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict:
		return fiber.StatusBadRequest
	case domain.KindAuthentication:
		return fiber.StatusUnauthorized
	case domain.KindAuthorization:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// responder escribe el sobre {success, data, error, details} y registra los errores de infraestructura.
type responder struct {
	log *logger.Logger
}

func (r responder) ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.OK(data))
}

// fail responde con el error tipado. Los errores de infraestructura se registran con su causa y
// el cliente solo recibe el mensaje genérico.
func (r responder) fail(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind == domain.KindInfrastructure {
		r.log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("error de infraestructura")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(domain.MsgInternal, nil))
	}
	return c.Status(statusFor(de.Kind)).JSON(dto.Fail(de.Message, de.Details))
}

// ErrorHandler para fiber.Config: los errores del framework (ruta inexistente, cuerpo demasiado grande,
// panics recuperados) también salen con el sobre uniforme.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	r := responder{log: log}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(dto.Fail(fe.Message, nil))
		}
		return r.fail(c, err)
	}
}
