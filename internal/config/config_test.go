package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWith_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  addr: ":9090"
  mode: release
database:
  driver: sqlite
  dsn: file:demo.db
unique:
  backend: gorm
theme:
  name: acme
  templates:
    submissions.text: themes/acme/text
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	env := map[string]string{
		"SUBMISSIONS_SERVER_ADDR": ":7070",
		"SUBMISSIONS_REDIS_DB":    "3",
		"SUBMISSIONS_LOG_FORMAT":  "console",
	}
	cfg, err := LoadWith(path, func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Server.Addr = ":7070"
	want.Server.Mode = "release"
	want.Database = DatabaseConfig{Driver: "sqlite", DSN: "file:demo.db"}
	want.Unique.Backend = "gorm"
	want.Redis.DB = 3
	want.Log.Format = "console"
	want.Theme = ThemeConfig{Name: "acme", Templates: map[string]string{"submissions.text": "themes/acme/text"}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "driver", env: map[string]string{"SUBMISSIONS_DATABASE_DRIVER": "oracle"}, want: "database.driver"},
		{name: "mysql dsn", env: map[string]string{"SUBMISSIONS_DATABASE_DRIVER": "mysql"}, want: "database.dsn"},
		{name: "backend", env: map[string]string{"SUBMISSIONS_UNIQUE_BACKEND": "etcd"}, want: "unique.backend"},
		{name: "gorm without db", env: map[string]string{"SUBMISSIONS_UNIQUE_BACKEND": "gorm"}, want: "needs a sql database"},
		{name: "redis db", env: map[string]string{"SUBMISSIONS_REDIS_DB": "two"}, want: "REDIS_DB"},
		{name: "mode", env: map[string]string{"SUBMISSIONS_SERVER_MODE": "prod"}, want: "server.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith("", func(key string) (string, bool) {
				value, ok := tt.env[key]
				return value, ok
			})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadWith_MissingFile(t *testing.T) {
	if _, err := LoadWith(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatalf("expected missing file error")
	}
}
