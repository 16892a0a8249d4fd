package internal

import (
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.App.Transport != TransportStdio {
		t.Errorf("default transport = %q", cfg.App.Transport)
	}
}

func TestTransportValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.Transport = "pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown transport should fail validation")
	}
}

func TestHTTPPortOnlyValidatedInHTTPMode(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.Transport = TransportStdio
	cfg.App.HTTP.Port = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("stdio mode should ignore the HTTP port: %v", err)
	}

	cfg.App.Transport = TransportHTTP
	if err := cfg.Validate(); err == nil {
		t.Fatal("http mode with port 0 should fail")
	}
}

func TestAnkiConfigRequiresURL(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Anki.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty backend URL should fail validation")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}
