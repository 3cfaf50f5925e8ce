package config

import (
	"strings"
	"testing"
	"time"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "local")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "medreport")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "medreport")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_AUDIENCE", "")
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("JWT_REFRESH_TTL", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("AUTH_LOOKUP_TIMEOUT", "")
	t.Setenv("LOGIN_THROTTLE_LIMIT", "")
	t.Setenv("LOGIN_THROTTLE_WINDOW", "")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setValidEnv(t)

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Auth.JWTIssuer != "medreport-api" || c.Auth.JWTAudience != "medreport-clients" {
		t.Fatalf("unexpected issuer/audience defaults: %q %q", c.Auth.JWTIssuer, c.Auth.JWTAudience)
	}
	if c.Auth.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("expected 15m access TTL, got %v", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 168h refresh TTL, got %v", c.Auth.RefreshTokenTTL)
	}
	if c.Auth.BcryptCost != 12 {
		t.Fatalf("expected default bcrypt cost 12, got %d", c.Auth.BcryptCost)
	}
	if c.Auth.DirectoryLookupTimeout != 3*time.Second {
		t.Fatalf("expected 3s lookup timeout, got %v", c.Auth.DirectoryLookupTimeout)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable outside production, got %q", c.DB.SSLMode)
	}
}

func TestLoadOverrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("JWT_REFRESH_TTL", "48h")
	t.Setenv("BCRYPT_COST", "10")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Auth.AccessTokenTTL != 5*time.Minute || c.Auth.RefreshTokenTTL != 48*time.Hour {
		t.Fatalf("TTL overrides not applied: %v %v", c.Auth.AccessTokenTTL, c.Auth.RefreshTokenTTL)
	}
	if c.Auth.BcryptCost != 10 {
		t.Fatalf("cost override not applied: %d", c.Auth.BcryptCost)
	}
}

func TestLoadRejectsSharedSecrets(t *testing.T) {
	setValidEnv(t)
	t.Setenv("REFRESH_TOKEN_SECRET", "access-secret")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "must differ") {
		t.Fatalf("expected shared-secret error, got %v", err)
	}
}

func TestLoadRejectsRefreshTTLNotGreater(t *testing.T) {
	setValidEnv(t)
	t.Setenv("JWT_ACCESS_TTL", "1h")
	t.Setenv("JWT_REFRESH_TTL", "30m")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_REFRESH_TTL") {
		t.Fatalf("expected TTL ordering error, got %v", err)
	}
}

func TestLoadRequiresSSLModeInProduction(t *testing.T) {
	setValidEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DB_SSLMODE") {
		t.Fatalf("expected production sslmode error, got %v", err)
	}
}

func TestLoadJoinsParseErrors(t *testing.T) {
	setValidEnv(t)
	t.Setenv("APP_PORT", "not-a-port")
	t.Setenv("DB_PORT", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "APP_PORT") || !strings.Contains(err.Error(), "DB_PORT") {
		t.Fatalf("expected both parse errors reported, got %v", err)
	}
}
