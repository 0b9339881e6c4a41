package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/slicehaus/slicehaus-backend/pkg/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := miniredis.RunT(t)
	return NewFromRedis(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))
}

func TestCartKeyNamespacing(t *testing.T) {
	c := &Client{}
	if got := c.CartKey("owner-1"); got != "sh:cart:owner-1" {
		t.Fatalf("unexpected cart key %q", got)
	}
}

func TestSetGetDel(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if err := c.Set(ctx, c.CartKey("o1"), "payload", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := c.Get(ctx, c.CartKey("o1"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "payload" {
		t.Fatalf("unexpected value %q", got)
	}

	if err := c.Del(ctx, c.CartKey("o1")); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if _, err := c.Get(ctx, c.CartKey("o1")); !IsNil(err) {
		t.Fatalf("expected redis nil after delete, got %v", err)
	}
}

func TestOptionsFromConfigRequiresURL(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error for missing url")
	}
}
