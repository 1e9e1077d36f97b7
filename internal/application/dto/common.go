package dto

import "github.com/jhoicas/user-admin-api/internal/domain"

// Envelope cuerpo uniforme de todas las respuestas de la API: {success, data?, error?, details?}.
type Envelope struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// OK envuelve una respuesta exitosa.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail envuelve una respuesta de error.
func Fail(msg string, details []domain.FieldError) Envelope {
	return Envelope{Success: false, Error: msg, Details: details}
}

// MessageResponse datos de respuestas que solo llevan un mensaje (logout, delete).
type MessageResponse struct {
	Message string `json:"message"`
}
