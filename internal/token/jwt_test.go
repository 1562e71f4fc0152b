package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecode(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		assert.Nil(t, Decode(""))
	})

	t.Run("opaque backend token is not a jwt", func(t *testing.T) {
		assert.Nil(t, Decode("jwt_token_0x1111222233334444555566667777888899990000_1700000000000"))
	})

	t.Run("well-formed jwt", func(t *testing.T) {
		claims := Decode(signedToken(t, jwt.MapClaims{"sub": "0xabc"}))
		require.NotNil(t, claims)
		assert.Equal(t, "0xabc", claims["sub"])
	})
}

func TestIsValid(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		assert.False(t, IsValid(""))
	})

	t.Run("undecodable token", func(t *testing.T) {
		assert.False(t, IsValid("not.a.jwt"))
	})

	t.Run("no exp claim never expires", func(t *testing.T) {
		assert.True(t, IsValid(signedToken(t, jwt.MapClaims{"sub": "0xabc"})))
	})

	t.Run("future exp", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
		assert.True(t, IsValid(signedToken(t, claims)))
	})

	t.Run("past exp", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}
		assert.False(t, IsValid(signedToken(t, claims)))
	})
}
