package server

import (
	"context"
	"testing"

	"rockie-classroom-api/internal/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8081",
		Stage:       "test",
		Store:       config.StoreConfig{Type: "memory"},
		Auth:        config.AuthConfig{TokenTTLMinutes: 60, ValidateTimeoutSeconds: 5},
	}
}

func TestNewContainer_MemoryStore(t *testing.T) {
	container, err := NewContainer(context.Background(), memoryConfig())
	if err != nil {
		t.Fatalf("NewContainer failed: %v", err)
	}
	defer container.Close()

	if container.Stores.Activities == nil || container.Stores.Purchasables == nil ||
		container.Stores.Rewards == nil || container.Stores.Rockies == nil {
		t.Error("Entity stores not initialized")
	}
	if container.Tokens == nil || container.Students == nil || container.Transactions == nil {
		t.Error("Supporting stores not initialized")
	}
	if container.Validator == nil || container.Resolver == nil || container.Pipeline == nil {
		t.Error("Auth components not initialized")
	}
	if container.Activities == nil || container.Purchasables == nil ||
		container.Rewards == nil || container.Rockies == nil || container.Auth == nil {
		t.Error("Handlers not initialized")
	}
}

func TestContainer_RouterConfig(t *testing.T) {
	container, err := NewContainer(context.Background(), memoryConfig())
	if err != nil {
		t.Fatalf("NewContainer failed: %v", err)
	}
	defer container.Close()

	rc := container.RouterConfig()
	if rc.Activities != container.Activities || rc.Auth != container.Auth {
		t.Error("RouterConfig must expose the container handlers")
	}
}
