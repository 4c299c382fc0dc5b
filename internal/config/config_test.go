package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PAYOUT_TEST_FROM_FILE=file\nPAYOUT_TEST_PRESET=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PAYOUT_TEST_PRESET", "env")
	t.Setenv("PAYOUT_TEST_FROM_FILE", "")
	os.Unsetenv("PAYOUT_TEST_FROM_FILE")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("PAYOUT_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("PAYOUT_TEST_PRESET"); got != "env" {
		t.Fatalf("existing variable overridden: %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
