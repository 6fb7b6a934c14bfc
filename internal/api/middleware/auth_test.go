package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premintlabs/premintpool/internal/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	m.Run()
}

// generateKeyPair returns an RSA private key and its PEM-encoded public key
func generateKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: der,
	})
	return key, string(pemBytes)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	key, publicPEM := generateKeyPair(t)
	cfg := AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"valid-key"},
	}

	t.Run("accepts a valid JWT", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{
			Subject:   "creator-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		result := Authenticate("Bearer "+token, cfg)
		require.True(t, result.Success)
		assert.Equal(t, "jwt", result.AuthType)
		assert.Equal(t, "creator-1", result.AuthSubject)
		require.NotNil(t, result.Claims)
		assert.Equal(t, "creator-1", result.Claims.Subject)
	})

	t.Run("rejects an expired JWT", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{
			Subject:   "creator-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})

		result := Authenticate("Bearer "+token, cfg)
		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})

	t.Run("rejects a JWT signed by another key", func(t *testing.T) {
		otherKey, _ := generateKeyPair(t)
		token := signToken(t, otherKey, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		result := Authenticate("Bearer "+token, cfg)
		assert.False(t, result.Success)
	})

	t.Run("rejects a JWT when no public key is configured", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{})

		result := Authenticate("Bearer "+token, AuthConfig{APIKeys: []string{"valid-key"}})
		assert.False(t, result.Success)
		assert.Contains(t, result.Error.Error(), "not configured")
	})

	t.Run("accepts a valid API key", func(t *testing.T) {
		result := Authenticate("ApiKey valid-key", cfg)
		require.True(t, result.Success)
		assert.Equal(t, "apikey", result.AuthType)
		assert.Empty(t, result.AuthSubject)
	})

	t.Run("rejects an unknown API key", func(t *testing.T) {
		result := Authenticate("ApiKey nope", cfg)
		assert.False(t, result.Success)
	})

	t.Run("rejects an API key when none are configured", func(t *testing.T) {
		result := Authenticate("ApiKey valid-key", AuthConfig{JWTPublicKey: publicPEM})
		assert.False(t, result.Success)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		result := Authenticate("", cfg)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error.Error(), "missing")
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		result := Authenticate("Bearer", cfg)
		assert.False(t, result.Success)
	})

	t.Run("rejects an unsupported auth type", func(t *testing.T) {
		result := Authenticate("Basic dXNlcjpwYXNz", cfg)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error.Error(), "unsupported")
	})
}

func TestAuthMiddleware(t *testing.T) {
	key, publicPEM := generateKeyPair(t)
	cfg := AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"valid-key"},
	}

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.POST("/protected", Auth(cfg), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"auth_type": c.GetString(string(AUTH_TYPE_KEY)),
				"subject":   c.GetString(string(AUTH_SUBJECT_KEY)),
			})
		})
		return router
	}

	t.Run("passes an authenticated request through", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{
			Subject:   "creator-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"auth_type":"jwt"`)
		assert.Contains(t, w.Body.String(), `"subject":"creator-1"`)
	})

	t.Run("aborts an unauthenticated request with 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)

		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})
}
