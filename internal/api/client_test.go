package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Alice", body["name"])
		require.Equal(t, "a@b.com", body["email"])
		require.Equal(t, "secret1", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "User registered successfully",
			"token":   "tok123",
			"user":    map[string]string{"email": "a@b.com", "name": "Alice"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", 5*time.Second)
	sess, err := c.Register(context.Background(), "Alice", "a@b.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "tok123", sess.Token)
	require.Equal(t, "a@b.com", sess.User.Email)
	require.Equal(t, "Alice", sess.User.Name)
}

func TestLoginErrorMessageFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid email or password")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.Login(context.Background(), "a@b.com", "pw")
	require.EqualError(t, err, "Login failed")
}

func TestMeSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/auth/me", r.URL.Path)
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"email": "a@b.com", "name": "Alice"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	u, err := c.Me(context.Background(), "tok123")
	require.NoError(t, err)
	require.Equal(t, "Alice", u.Name)
}

func TestMeUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)
	_, err := c.Me(context.Background(), "tok")
	require.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "a@b.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	got, ok := TokenExpiry(signed)
	require.True(t, ok)
	require.True(t, got.Equal(exp))

	_, ok = TokenExpiry("opaque-token")
	require.False(t, ok)
}
