// Package password hashea y verifica contraseñas con bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost factor de trabajo por defecto (2^10 rondas).
const DefaultCost = 10

// Hasher aplica bcrypt con un costo fijo. El costo se ajusta por despliegue (BCRYPT_COST).
type Hasher struct {
	cost int
}

// NewHasher construye un Hasher. Un costo fuera de [bcrypt.MinCost, bcrypt.MaxCost] usa DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost devuelve el factor de trabajo en uso.
func (h *Hasher) Cost() int { return h.cost }

// Hash devuelve el hash bcrypt (con sal) de plaintext.
// bcrypt rechaza entradas de más de 72 bytes; la validación de entrada debe acotarlas antes.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify indica si plaintext corresponde al hash. Un hash mal formado devuelve false.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
