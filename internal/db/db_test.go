package db

import (
	"testing"

	"github.com/fer-gc05/AventuraLocalApi/internal/config"
)

func TestConnectPostgresInvalidURL(t *testing.T) {
	_, err := ConnectPostgres(config.Config{PostgresURL: "not-a-url"})
	if err == nil {
		t.Fatalf("expected error for invalid postgres url")
	}
}

func TestConnectRedis(t *testing.T) {
	if client := ConnectRedis(config.Config{}); client != nil {
		t.Fatalf("expected nil client without an address")
	}
	client := ConnectRedis(config.Config{RedisAddr: "localhost:6379"})
	if client == nil {
		t.Fatalf("expected client")
	}
	_ = client.Close()
}
