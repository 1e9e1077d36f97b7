package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/user-admin-api/internal/application/dto"
	"github.com/jhoicas/user-admin-api/internal/application/usecase"
	"github.com/jhoicas/user-admin-api/internal/domain"
	"github.com/jhoicas/user-admin-api/pkg/logger"
)

// UserHandler administración de usuarios.
type UserHandler struct {
	responder
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{responder: responder{log: log}, uc: uc}
}

// List godoc
// @Summary      Listar usuarios (más recientes primero)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.UserListResponse}
// @Failure      401  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "email, password, name, role"
// @Success      201   {object}  dto.Envelope{data=dto.UserEnvelope}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, domain.ErrInvalidInput)
	}
	user, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusCreated, dto.UserEnvelope{User: *user})
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.Envelope{data=dto.UserEnvelope}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	user, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, dto.UserEnvelope{User: *user})
}

// Update godoc
// @Summary      Actualizar nombre y/o rol
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "User ID"
// @Param        body  body  dto.UpdateUserRequest  true  "name, role (al menos uno)"
// @Success      200   {object}  dto.Envelope{data=dto.UserEnvelope}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, domain.ErrInvalidInput)
	}
	// El cuerpo vacío se rechaza antes de mirar el id: nunca llega al store.
	if in.Empty() {
		return h.fail(c, domain.ErrEmptyUpdate)
	}
	id, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	user, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, dto.UserEnvelope{User: *user})
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.Envelope{data=dto.MessageResponse}
// @Failure      401  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// userID lee :id. Los ids son UUID: cualquier otro valor no puede existir y se responde 404.
func userID(c *fiber.Ctx) (string, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", domain.ErrUserNotFound
	}
	return id.String(), nil
}
