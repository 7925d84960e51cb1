package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != DriverMongo || cfg.Mongo.Database != "devconnector" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 100*time.Hour {
		t.Fatalf("expected 100h token ttl, got %v", cfg.TokenTTL)
	}
	if !cfg.Purge.Cascade || cfg.Purge.Workers != 4 {
		t.Fatalf("unexpected purge defaults: %+v", cfg.Purge)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.TTL != 10*time.Minute {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
}

func TestLoad_SecretRequired(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected an error without JWT_SECRET")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":               "s3cret",
		"STORE_DRIVER":             "memory",
		"CASCADE_AUTHORED_CONTENT": "false",
		"TOKEN_TTL":                "1h",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != DriverMemory || cfg.Purge.Cascade || cfg.TokenTTL != time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"STORE_DRIVER": "postgres",
	}))
	if err == nil {
		t.Fatal("expected an error for an unknown driver")
	}
}
