package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port   int      `env:"TALENTHUB_TEST_PORT" envDefault:"123"`
	Admins []string `env:"TALENTHUB_TEST_ADMINS" envSeparator:"," envDefault:"a@example.com,b@example.com"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if len(cfg.Admins) != 2 || cfg.Admins[1] != "b@example.com" {
		t.Fatalf("admins = %v", cfg.Admins)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TALENTHUB_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvRejectsNilTarget(t *testing.T) {
	if err := ParseEnv(nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("load missing env file: %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "TALENTHUB_TEST_DOTENV_A=from-file\nTALENTHUB_TEST_DOTENV_B=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("TALENTHUB_TEST_DOTENV_A", "from-process")
	t.Setenv("TALENTHUB_TEST_DOTENV_B", "")
	os.Unsetenv("TALENTHUB_TEST_DOTENV_B")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load env file: %v", err)
	}
	if got := os.Getenv("TALENTHUB_TEST_DOTENV_A"); got != "from-process" {
		t.Fatalf("A = %q, want from-process", got)
	}
	if got := os.Getenv("TALENTHUB_TEST_DOTENV_B"); got != "from-file" {
		t.Fatalf("B = %q, want from-file", got)
	}
}
