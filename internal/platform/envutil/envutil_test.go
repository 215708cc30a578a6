package envutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sample struct {
	Port    string        `env:"PORT" envDefault:"8080"`
	Secret  string        `env:"SESSION_SECRET"`
	Timeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	Origins []string      `env:"CORS_ORIGINS" envSeparator:","`
	SSL     bool          `env:"FORCE_SSL"`
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestParseDefaults(t *testing.T) {
	var s sample
	if err := Parse(&s, ""); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Port != "8080" || s.Timeout != 5*time.Second {
		t.Fatalf("defaults not applied: %+v", s)
	}
}

func TestParseFileThenEnvPrecedence(t *testing.T) {
	path := writeFile(t, "port: 9000\nsession_secret: from-file\nforce_ssl: true\ncors_origins:\n  - https://a.example\n  - https://b.example\n")
	t.Setenv("SESSION_SECRET", "from-env")

	var s sample
	if err := Parse(&s, path); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Port != "9000" {
		t.Fatalf("port: want=9000 got=%q", s.Port)
	}
	if s.Secret != "from-env" {
		t.Fatalf("secret: env must win, got=%q", s.Secret)
	}
	if !s.SSL {
		t.Fatalf("force_ssl: want true")
	}
	if len(s.Origins) != 2 || s.Origins[1] != "https://b.example" {
		t.Fatalf("origins: got=%v", s.Origins)
	}
}

func TestParseMissingFile(t *testing.T) {
	var s sample
	if err := Parse(&s, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
