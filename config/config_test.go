package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  driver: postgres
  host: db.internal
  port: "5432"
  username: app
  password: secret
  database: food
redis:
  ttl: 30s
server:
  corsOrigin: https://eathub.example
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadConfig(path, &cfg); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Redis.TTL != 30*time.Second {
		t.Errorf("redis ttl = %v, want 30s", cfg.Redis.TTL)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, default should survive", cfg.Server.Port)
	}
	want := "host=db.internal port=5432 user=app password=secret dbname=food sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLoadEnvironmentWins(t *testing.T) {
	t.Setenv("EATHUB_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ORIGIN", "https://shop.example")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("jwt secret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Server.CORSOrigin != "https://shop.example" {
		t.Errorf("cors origin = %q", cfg.Server.CORSOrigin)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("token ttl = %v", cfg.Auth.TokenTTL)
	}
	if cfg.Notify.TelegramChatID != -100123 {
		t.Errorf("chat id = %d", cfg.Notify.TelegramChatID)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("EATHUB_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CACHE_TTL", "forever")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad CACHE_TTL")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Error("missing secret should fail")
	}
	cfg.Auth.JWTSecret = "x"
	cfg.Database.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown driver should fail")
	}
}

func TestSetupDatabaseSQLite(t *testing.T) {
	db, err := SetupDatabase(DatabaseConfig{
		Driver:   "sqlite",
		URL:      "file:config_test?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("SetupDatabase: %v", err)
	}
	for _, table := range []string{"menu_items", "orders", "order_items", "vouchers", "user_rewards", "reward_transactions"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s not migrated", table)
		}
	}
	if SetupRedisConnection(RedisConfig{}) != nil {
		t.Error("empty redis addr should give nil client")
	}
}
