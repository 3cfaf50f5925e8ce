package utils

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewLoginThrottleValidation(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()

	if _, err := NewLoginThrottle(nil, 10, time.Minute); err == nil {
		t.Fatalf("nil client must be rejected")
	}
	if _, err := NewLoginThrottle(rdb, 0, time.Minute); err == nil {
		t.Fatalf("non-positive limit must be rejected")
	}
	if _, err := NewLoginThrottle(rdb, 10, 0); err == nil {
		t.Fatalf("non-positive window must be rejected")
	}
	if _, err := NewLoginThrottle(rdb, 10, time.Minute); err != nil {
		t.Fatalf("valid throttle: %v", err)
	}
}

func TestLoginThrottleRequiresKey(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()

	throttle, err := NewLoginThrottle(rdb, 10, time.Minute)
	if err != nil {
		t.Fatalf("new throttle: %v", err)
	}
	if _, err := throttle.Allow(context.Background(), ""); err == nil {
		t.Fatalf("empty key must be rejected before hitting redis")
	}
}

func TestLoginAttemptScriptIsLoaded(t *testing.T) {
	if loginAttemptScript == nil || loginAttemptScript.Hash() == "" {
		t.Fatalf("login attempt script must be initialized")
	}
}
