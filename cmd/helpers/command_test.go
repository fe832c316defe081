package helpers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	flagconfig "github.com/zinc-sig/specter/cmd/config"
	"github.com/zinc-sig/specter/internal/config"
)

func clearInputs(t *testing.T) {
	t.Helper()
	for _, key := range config.Keys {
		t.Setenv(config.EnvPrefix+key, "")
		_ = os.Unsetenv(config.EnvPrefix + key)
	}
	t.Setenv("INPUT_TEST_NAME", "")
	t.Setenv("INPUT_SETUP_COMMAND", "")
	t.Setenv("INPUT_MAX_SCORE", "")
}

func TestLoadTestConfigPrecedence(t *testing.T) {
	clearInputs(t)
	dir := t.TempDir()

	configFile := filepath.Join(dir, "test.toml")
	toml := "test-name = \"from file\"\ncommand = \"file cmd\"\nsetup-command = \"file setup\"\ntimeout = 2\nmax-score = 1\n"
	if err := os.WriteFile(configFile, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("INPUT_COMMAND=dotenv cmd\nINPUT_TIMEOUT=0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INPUT_MAX-SCORE", "5")

	cfg, err := LoadTestConfig(&flagconfig.TestFlags{
		Name:       "from flag",
		ConfigFile: configFile,
		EnvFile:    envFile,
	})
	if err != nil {
		t.Fatalf("LoadTestConfig failed: %v", err)
	}

	want := config.TestConfig{
		Name:         "from flag",
		Command:      "dotenv cmd",
		SetupCommand: "file setup",
		Timeout:      30 * time.Second,
		MaxScore:     5,
	}
	if *cfg != want {
		t.Errorf("LoadTestConfig() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadTestConfigErrors(t *testing.T) {
	clearInputs(t)

	_, err := LoadTestConfig(&flagconfig.TestFlags{Name: "t", Command: "true", Timeout: "-0.5"})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid for a negative timeout, got %v", err)
	}

	_, err = LoadTestConfig(&flagconfig.TestFlags{Name: "t", Command: "true", Timeout: "1", ConfigFile: "/nonexistent/test.toml"})
	if err == nil {
		t.Error("expected error for a missing config file")
	}

	_, err = LoadTestConfig(&flagconfig.TestFlags{Name: "t", Command: "true", Timeout: "1", EnvFile: "/nonexistent/.env"})
	if err == nil {
		t.Error("expected error for a missing env file")
	}
}

func TestPrimarySink(t *testing.T) {
	for _, format := range []string{FormatActions, FormatJSON, ""} {
		if _, err := PrimarySink(format, os.Stdout); err != nil {
			t.Errorf("PrimarySink(%q) failed: %v", format, err)
		}
	}
	if _, err := PrimarySink("yaml", os.Stdout); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestBuildWebhookConfigPrecedence(t *testing.T) {
	t.Setenv("SPECTER_WEBHOOK_URL", "https://env.example.com")
	t.Setenv("SPECTER_WEBHOOK_METHOD", "PATCH")

	conf, err := BuildWebhookConfig(&flagconfig.WebhookConfig{
		URL:      "https://flag.example.com",
		Config:   `{"method":"PUT","auth_type":"bearer"}`,
		ConfigKV: []string{"auth_token=kv-token"},
		Retries:  -1,
	})
	if err != nil {
		t.Fatalf("BuildWebhookConfig failed: %v", err)
	}

	want := map[string]any{
		"url":        "https://flag.example.com",
		"method":     "PUT",
		"auth_type":  "bearer",
		"auth_token": "kv-token",
	}
	for k, v := range want {
		if conf[k] != v {
			t.Errorf("conf[%q] = %v, want %v", k, conf[k], v)
		}
	}
	if _, ok := conf["retries"]; ok {
		t.Error("unset retries flag should not override other sources")
	}
}
