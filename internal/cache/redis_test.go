package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(Config{RedisAddr: mr.Addr(), KeyPrefix: "mortgage:", TTLSeconds: 30})
	defer func() { _ = r.Close() }()

	ctx := context.Background()

	value, ok, err := r.Get(ctx, "schedule:a")
	if err != nil || ok || value != nil {
		t.Fatalf("Get(missing) = %q, ok %v, err %v; expected a miss with nil error", value, ok, err)
	}

	if err := r.Set(ctx, "schedule:a", []byte("payload")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if !mr.Exists("mortgage:schedule:a") {
		t.Fatalf("expected key stored under prefix, keys = %v", mr.Keys())
	}
	if mr.Exists("schedule:a") {
		t.Errorf("key stored without prefix")
	}
	if ttl := mr.TTL("mortgage:schedule:a"); ttl != 30*time.Second {
		t.Errorf("TTL = %v, expected 30s", ttl)
	}

	value, ok, err = r.Get(ctx, "schedule:a")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v err %v, expected hit", ok, err)
	}
	if string(value) != "payload" {
		t.Errorf("Get() = %q, expected payload", value)
	}

	mr.FastForward(31 * time.Second)
	if _, ok, err := r.Get(ctx, "schedule:a"); ok || err != nil {
		t.Errorf("Get() after TTL = ok %v err %v, expected miss", ok, err)
	}
}

func TestRedisDefaultTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(Config{RedisAddr: mr.Addr()})
	defer func() { _ = r.Close() }()

	if err := r.Set(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ttl := mr.TTL("k"); ttl != 300*time.Second {
		t.Errorf("TTL = %v, expected default 300s", ttl)
	}
}

func TestNewRedisBackendFromConfig(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := New(Config{Backend: "redis", RedisAddr: mr.Addr(), KeyPrefix: "p:"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = c.(*Redis).Close() }()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, err := mr.Get("p:k"); err != nil || got != "v" {
		t.Errorf("stored value = %q, err %v; expected v", got, err)
	}
}
