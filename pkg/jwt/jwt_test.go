package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Fulfillment-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u1", pkgjwt.RoleOperator, "fulfillment-test", 5)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, pkgjwt.RoleOperator, claims.Role)
	assert.Equal(t, "fulfillment-test", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u1", pkgjwt.RoleAdmin, "x", 5)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u1", pkgjwt.RoleAdmin, "x", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u1", pkgjwt.RoleAdmin, "x", 5)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
	_, err = pkgjwt.Parse("", "abc")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
