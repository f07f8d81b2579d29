package queue

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/wallmasters/storefront/internal/config"
)

func TestDisabledClientRefusesEnqueue(t *testing.T) {
	c := NewClient(&config.QueueConfig{Enabled: false})
	if c.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := c.EnqueueOrderPlaced(OrderPlacedPayload{OrderID: 1}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("want ErrDisabled got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close disabled client: %v", err)
	}
}

func TestNewOrderPlacedTaskPayload(t *testing.T) {
	task, err := NewOrderPlacedTask(OrderPlacedPayload{OrderID: 42, Locale: "en-US"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskOrderPlaced {
		t.Fatalf("unexpected type: %s", task.Type())
	}
	var payload OrderPlacedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.OrderID != 42 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 5 || cfg.Queues["critical"] != 3 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
