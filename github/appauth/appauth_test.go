package appauth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	return key
}

func TestAppJWT(t *testing.T) {
	key := newKey(t)
	creds := Credentials{AppID: "12345", InstallationID: 1, PrivateKey: key}
	now := time.Now()

	signed, err := creds.AppJWT(now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &key.PublicKey, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("Expected a valid token, got err %v", err)
	}
	if claims.Issuer != "12345" {
		t.Errorf("Expected issuer 12345, got %q", claims.Issuer)
	}
	if ttl := claims.ExpiresAt.Sub(now); ttl > 10*time.Minute {
		t.Errorf("Expected expiry within 10 minutes, got %v", ttl)
	}
	if !claims.IssuedAt.Before(now) {
		t.Errorf("Expected iat to be backdated, got %v", claims.IssuedAt)
	}
}

func TestFetchInstallationToken(t *testing.T) {
	key := newKey(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/app/installations/42/access_tokens" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			t.Errorf("Expected bearer authorization, got %q", auth)
		}
		_, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(token *jwt.Token) (interface{}, error) {
			return &key.PublicKey, nil
		})
		if err != nil {
			t.Errorf("App JWT did not verify: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"token":"ghs_installation","expires_at":"2030-01-01T00:00:00Z"}`)
	}))
	defer srv.Close()

	token, err := FetchInstallationToken(context.Background(), srv.Client(), srv.URL+"/", Credentials{AppID: "7", InstallationID: 42, PrivateKey: key})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if token.Token != "ghs_installation" {
		t.Errorf("Expected ghs_installation, got %q", token.Token)
	}
	if token.ExpiresAt.Year() != 2030 {
		t.Errorf("Unexpected expiry %v", token.ExpiresAt)
	}
}

func TestFetchInstallationToken_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"A JSON web token could not be decoded"}`},
		{name: "missing token", status: http.StatusCreated, body: `{}`},
		{name: "invalid json", status: http.StatusCreated, body: `nope`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			_, err := FetchInstallationToken(context.Background(), srv.Client(), srv.URL, Credentials{AppID: "7", InstallationID: 1, PrivateKey: newKey(t)})
			if err == nil {
				t.Fatalf("Expected error, got nil")
			}
		})
	}
}

func TestLoadPrivateKey(t *testing.T) {
	key := newKey(t)
	path := filepath.Join(t.TempDir(), "app.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}

	loaded, err := LoadPrivateKey(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !loaded.Equal(key) {
		t.Errorf("Loaded key does not match")
	}

	if _, err := LoadPrivateKey(filepath.Join(t.TempDir(), "missing.pem")); err == nil {
		t.Errorf("Expected error for missing file, got nil")
	}
}
