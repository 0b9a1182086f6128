package supabase

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTestJWT(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "local-dev-secret")

	tokenString, err := GenerateTestJWT("user-42")
	require.NoError(t, err)

	// The token must verify against the secret it was minted with.
	parsed, err := jwtv5.Parse(tokenString, func(*jwtv5.Token) (interface{}, error) {
		return []byte("local-dev-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	// And carry the claims the request path reads.
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-42", claims["sub"])
	assert.Equal(t, "authenticated", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())
}

func TestClientFromRequest_ExtractsUserFromToken(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "local-dev-secret")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_KEY", "service-key")

	tokenString, err := GenerateTestJWT("user-42")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/suggestions", nil)
	r.Header.Set("Authorization", "Bearer "+tokenString)

	client, userID, err := ClientFromRequest(r)
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "user-42", userID)
}

func TestClientFromRequest_MissingHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/suggestions", nil)

	_, _, err := ClientFromRequest(r)
	require.Error(t, err)
}
