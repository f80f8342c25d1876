package jwt_test

import (
	"testing"

	"github.com/jhoicas/bodega-app/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTripClaims(t *testing.T) {
	token, err := jwt.Generate("secreto", "123", "miguel@correo.com", "bodeguero", "test", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "123", claims.UserID)
	assert.Equal(t, "miguel@correo.com", claims.Email)
	assert.Equal(t, "bodeguero", claims.Role)
	assert.Equal(t, "test", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "123", "a@b.c", "admin", "test", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "123", "a@b.c", "admin", "test", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "123", "a@b.c", "admin", "test", 5)
	assert.Error(t, err)
}
