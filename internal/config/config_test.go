package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"IYZIPAY_BASE_URL", "IYZIPAY_API_KEY", "IYZIPAY_SECRET_KEY", "IYZIPAY_LOCALE",
		"IYZIPAY_TIMEOUT", "IYZIPAY_SANDBOX_PORT", "IYZIPAY_SANDBOX_API_KEY", "IYZIPAY_SANDBOX_SECRET_KEY", "IYZIPAY_JOURNAL_DRIVER", "IYZIPAY_JOURNAL_DSN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Client.BaseURL != iyzipay.DefaultBaseURL {
		t.Errorf("Expected SDK base URL, got %s", cfg.Client.BaseURL)
	}
	if cfg.Client.Timeout != iyzipay.DefaultTimeout {
		t.Errorf("Expected SDK timeout, got %v", cfg.Client.Timeout)
	}
	if cfg.Journal.Enabled {
		t.Error("Journal should be disabled by default")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`client:
  api_key: file-key
  secret_key: file-secret
  timeout: 5s
sandbox:
  port: "9090"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Client.APIKey != "file-key" || cfg.Client.SecretKey != "file-secret" {
		t.Errorf("Expected credentials from file, got %q/%q", cfg.Client.APIKey, cfg.Client.SecretKey)
	}
	if cfg.Client.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.Client.Timeout)
	}
	if cfg.Sandbox.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Sandbox.Port)
	}
	if cfg.Client.Locale != "tr" {
		t.Errorf("Unset keys should keep defaults, got locale %q", cfg.Client.Locale)
	}

	t.Setenv("IYZIPAY_API_KEY", "env-key")
	t.Setenv("IYZIPAY_JOURNAL_DSN", "host=db dbname=journal")

	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Client.APIKey != "env-key" {
		t.Errorf("Environment should override file, got %s", cfg.Client.APIKey)
	}
	if !cfg.Journal.Enabled || cfg.Journal.DSN != "host=db dbname=journal" {
		t.Errorf("Journal DSN from environment should enable the journal, got %+v", cfg.Journal)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("IYZIPAY_TIMEOUT", "soon")

	if _, err := Load(""); err == nil {
		t.Error("Expected error for invalid timeout")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.Client.APIKey = "written-key"
	want.Client.Timeout = 30 * time.Second

	if err := Write(path, want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{" timeout: 30s", "read_timeout: 30s", "write_timeout: 30s"} {
		if !strings.Contains(string(data), line) {
			t.Errorf("Expected %q in written config:\n%s", line, data)
		}
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Client.APIKey != "written-key" || got.Client.Timeout != 30*time.Second {
		t.Errorf("Round trip mismatch: %+v", got.Client)
	}
}
