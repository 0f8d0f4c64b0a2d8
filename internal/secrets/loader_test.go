package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-secret\n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}
	t.Setenv("JOBMATCH_TEST_SECRET", "env-secret")

	got, err := Load(Source{Name: "api key", File: path, Env: "JOBMATCH_TEST_SECRET", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "file-secret" {
		t.Fatalf("expected file to win, got %q", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JOBMATCH_TEST_SECRET", " env-secret ")

	got, err := Load(Source{Name: "api key", Env: "JOBMATCH_TEST_SECRET", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "env-secret" {
		t.Fatalf("expected env to win over inline value, got %q", got)
	}
}

func TestLoadFallsBackToValue(t *testing.T) {
	t.Setenv("JOBMATCH_TEST_SECRET", "")

	got, err := Load(Source{Env: "JOBMATCH_TEST_SECRET", Value: " inline "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "inline" {
		t.Fatalf("expected inline value, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("\n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}
	t.Setenv("JOBMATCH_TEST_SECRET", "")

	tests := []struct {
		name    string
		src     Source
		message string
	}{
		{name: "missing file", src: Source{Name: "api key", File: filepath.Join(t.TempDir(), "nope")}, message: "reading api key from file"},
		{name: "empty file", src: Source{Name: "api key", File: empty}, message: "is empty"},
		{name: "nothing configured", src: Source{}, message: "secret is not configured"},
		{name: "empty env", src: Source{Name: "api key", Env: "JOBMATCH_TEST_SECRET"}, message: "checked JOBMATCH_TEST_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("expected error to contain %q, got %v", tt.message, err)
			}
		})
	}
}
