package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digipos/sellthru-api/pkg/jwt"
)

const testSecret = "unit-test-secret"

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "supervisor", "", "TAP North", "sellthru-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "supervisor", claims.Role)
	assert.Equal(t, "TAP North", claims.Tap)
	assert.Empty(t, claims.Salesforce)
	assert.Equal(t, "sellthru-api", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "admin", "", "", "sellthru-api", 60)
	require.NoError(t, err)

	_, err = jwt.Parse("other-secret", token)
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "admin", "", "", "sellthru-api", -5)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "", "", "sellthru-api", 60)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := jwt.Parse(testSecret, "not.a.token")
	assert.Error(t, err)
}
