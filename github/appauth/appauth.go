// Package appauth obtains an installation access token for a GitHub App.
// The token is fetched once and then used as a fixed bearer; it is not refreshed.
package appauth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// Credentials identify a GitHub App installation.
type Credentials struct {
	AppID          string
	InstallationID int64
	PrivateKey     *rsa.PrivateKey
}

// InstallationToken is the token returned by the access_tokens endpoint.
type InstallationToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoadPrivateKey reads a PEM encoded RSA private key, as downloaded from the App settings.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	return key, nil
}

// AppJWT signs the short-lived RS256 JWT that authenticates as the App itself.
// iat is backdated a minute to absorb clock drift; GitHub caps exp at ten minutes.
func (c Credentials) AppJWT(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    c.AppID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(9 * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(c.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign app token: %w", err)
	}
	return signed, nil
}

// FetchInstallationToken exchanges the App JWT for an installation token.
func FetchInstallationToken(ctx context.Context, httpClient *http.Client, apiURL string, c Credentials) (*InstallationToken, error) {
	appJWT, err := c.AppJWT(time.Now())
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/app/installations/%d/access_tokens", strings.TrimSuffix(apiURL, "/"), c.InstallationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+appJWT)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting installation token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var token InstallationToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if token.Token == "" {
		return nil, fmt.Errorf("response did not contain a token")
	}
	return &token, nil
}
