package jwt_test

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/user-admin-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests-32chars!"
	testIssuer = "user-admin-api-test"
)

var testIdentity = pkgjwt.Identity{
	UserID: "00000000-0000-0000-0000-000000000001",
	Email:  "a@x.com",
	Role:   "USER",
}

func newManager(t *testing.T, opts ...pkgjwt.Option) *pkgjwt.Manager {
	t.Helper()
	m, err := pkgjwt.NewManager(testSecret, testIssuer, pkgjwt.DefaultTTL, opts...)
	require.NoError(t, err)
	return m
}

func TestNewManager_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewManager("", testIssuer, time.Hour)
	assert.Error(t, err)
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := newManager(t)

	tok, err := m.Issue(testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims := m.Verify(tok)
	require.NotNil(t, claims)
	assert.Equal(t, testIdentity, claims.Identity())
	assert.Equal(t, testIdentity.UserID, claims.Subject)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 7*24*time.Hour, ttl, "la vigencia debe ser de 7 días")
}

func TestManager_Verify_Expirado(t *testing.T) {
	now := time.Now()
	m := newManager(t, pkgjwt.WithClock(func() time.Time { return now }))

	tok, err := m.Issue(testIdentity)
	require.NoError(t, err)

	now = now.Add(7*24*time.Hour - time.Minute)
	assert.NotNil(t, m.Verify(tok), "dentro de la ventana el token sigue siendo válido")

	now = now.Add(2 * time.Minute)
	assert.Nil(t, m.Verify(tok), "pasada la ventana el token debe rechazarse")
}

func TestManager_Verify_Fallos(t *testing.T) {
	m := newManager(t)
	tok, err := m.Issue(testIdentity)
	require.NoError(t, err)

	other, err := pkgjwt.NewManager("otro-secret-completamente-distinto-32+", testIssuer, time.Hour)
	require.NoError(t, err)

	otherIssuer, err := pkgjwt.NewManager(testSecret, "otro-emisor", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	cases := map[string]struct {
		m   *pkgjwt.Manager
		tok string
	}{
		"vacío":            {m, ""},
		"mal formado":      {m, "token.invalido.aqui"},
		"payload alterado": {m, tampered},
		"secret distinto":  {other, tok},
		"emisor distinto":  {otherIssuer, tok},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, tc.m.Verify(tc.tok))
		})
	}
}

func TestManager_Verify_AlgoritmoNone(t *testing.T) {
	m := newManager(t)
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: testIdentity.UserID,
		Role:   "ADMIN",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Nil(t, m.Verify(tok), "un token sin firma nunca debe aceptarse")
}

func TestManager_Verify_SinExpiracion(t *testing.T) {
	m := newManager(t)
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Issuer: testIssuer},
		UserID:           testIdentity.UserID,
		Role:             "USER",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	assert.Nil(t, m.Verify(tok))
}
