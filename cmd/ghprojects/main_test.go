package main

import (
	"context"
	"log/slog"
	"testing"
)

func TestDebug(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{name: "unset", value: "", want: slog.LevelInfo},
		{name: "enabled", value: "1", want: slog.LevelDebug},
		{name: "other value", value: "0", want: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DEBUG", tc.value)
			if got := debug(); got != tc.want {
				t.Errorf("Expected log level %v when DEBUG=%q, but got %v", tc.want, tc.value, got)
			}
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	for _, name := range []string{"file", "fields", "status"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Expected subcommand %q, got %v (%v)", name, cmd, err)
		}
	}

	if f := fileCmd.Flags().Lookup("plan"); f == nil || f.DefValue != "plan.yaml" {
		t.Errorf("Expected --plan flag defaulting to plan.yaml")
	}
	for _, name := range []string{"owner", "project", "user"} {
		if fieldsCmd.Flags().Lookup(name) == nil {
			t.Errorf("fields should have --%s flag", name)
		}
	}
}

func TestToken(t *testing.T) {
	t.Run("PersonalToken", func(t *testing.T) {
		t.Setenv("GITHUB_APP_ID", "")
		t.Setenv("GITHUB_TOKEN", "ghp_test")
		got, err := token(context.Background(), discardLogger())
		if err != nil || got != "ghp_test" {
			t.Errorf("Expected ghp_test, got %q (%v)", got, err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		t.Setenv("GITHUB_APP_ID", "")
		t.Setenv("GITHUB_TOKEN", "")
		if _, err := token(context.Background(), discardLogger()); err == nil {
			t.Errorf("Expected error without credentials, got nil")
		}
	})

	t.Run("BadInstallationID", func(t *testing.T) {
		t.Setenv("GITHUB_APP_ID", "1")
		t.Setenv("GITHUB_APP_INSTALLATION_ID", "abc")
		if _, err := token(context.Background(), discardLogger()); err == nil {
			t.Errorf("Expected error for bad installation id, got nil")
		}
	})
}
