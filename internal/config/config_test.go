package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("ENV")
	os.Unsetenv("DATA_DIR")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("expected default data dir ./data, got %s", cfg.DataDir)
	}
	if !cfg.PushEnabled {
		t.Error("expected push enabled by default")
	}
}

func TestLoad_FirebaseProject(t *testing.T) {
	os.Setenv("FIREBASE_PROJECT_ID", "diacare-test")
	defer os.Unsetenv("FIREBASE_PROJECT_ID")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.RemoteConfigured() {
		t.Error("expected RemoteConfigured() with FIREBASE_PROJECT_ID set")
	}
}

func TestValidate_RequiresJWTSecretOutsideDev(t *testing.T) {
	c := &Config{Env: "production", DataDir: "./data"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing in production")
	}

	c.JWTSecret = "secret"
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CredentialsNeedProject(t *testing.T) {
	c := &Config{Env: "development", DataDir: "./data", FirebaseCredentialsFile: "sa.json"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when credentials file is set without a project id")
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
