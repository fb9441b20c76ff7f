package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/vavalomi/ghprojects/github/appauth"
	"github.com/vavalomi/ghprojects/github/client"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// token prefers GitHub App credentials when GITHUB_APP_ID is set.
// The installation token is fetched once and lives for about an hour.
func token(ctx context.Context, l *slog.Logger) (string, error) {
	appID := os.Getenv("GITHUB_APP_ID")
	if appID == "" {
		t := os.Getenv("GITHUB_TOKEN")
		if t == "" {
			return "", errors.New("set GITHUB_TOKEN or the GITHUB_APP_* variables")
		}
		return t, nil
	}

	installationID, err := strconv.ParseInt(os.Getenv("GITHUB_APP_INSTALLATION_ID"), 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid GITHUB_APP_INSTALLATION_ID: %w", err)
	}
	key, err := appauth.LoadPrivateKey(os.Getenv("GITHUB_APP_PRIVATE_KEY_PATH"))
	if err != nil {
		return "", err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	creds := appauth.Credentials{AppID: appID, InstallationID: installationID, PrivateKey: key}
	it, err := appauth.FetchInstallationToken(ctx, httpClient, envOr("GITHUB_API_URL", appauth.DefaultAPIURL), creds)
	if err != nil {
		return "", fmt.Errorf("fetching installation token: %w", err)
	}
	l.Debug("Using GitHub App installation token", "app_id", appID, "expires_at", it.ExpiresAt)
	return it.Token, nil
}

func newClient(ctx context.Context, l *slog.Logger) (*client.Client, error) {
	t, err := token(ctx, l)
	if err != nil {
		return nil, err
	}
	return client.New(t, l, client.WithEndpoint(envOr("GITHUB_GRAPHQL_URL", client.DefaultEndpoint))), nil
}
