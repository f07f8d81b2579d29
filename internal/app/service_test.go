package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wallmasters/storefront/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	stopped  atomic.Bool
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-ctx.Done()
	return nil
}

func (f *fakeService) Stop(context.Context) error {
	f.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllWhenOneFails(t *testing.T) {
	boom := errors.New("listen failed")
	healthy := &fakeService{name: "worker"}
	broken := &fakeService{name: "http", startErr: boom}

	err := NewRunner(healthy, broken).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want %v got %v", boom, err)
	}
	if !healthy.stopped.Load() || !broken.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	svc := &fakeService{name: "http"}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewRunner(svc).Run(ctx, time.Second, nil)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancel should exit cleanly, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not exit after cancel")
	}
	if !svc.stopped.Load() {
		t.Fatalf("service should be stopped")
	}
}

func TestRunRejectsUnknownMode(t *testing.T) {
	err := Run(Options{Config: &config.Config{}, Mode: "cron"})
	if err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestBuildRunnerRequiresContainer(t *testing.T) {
	if _, err := BuildRunner(&config.Config{}, nil, ModeAPI); err == nil {
		t.Fatalf("nil container should fail")
	}
}

func TestOptionsPrepareDefaults(t *testing.T) {
	opts, err := Options{Config: &config.Config{}, Mode: " API "}.prepare()
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if opts.Mode != ModeAPI {
		t.Fatalf("mode should be normalized, got %q", opts.Mode)
	}
	if opts.ShutdownTimeout != defaultShutdownTimeout || opts.Logger == nil {
		t.Fatalf("defaults not applied: %+v", opts)
	}
	if _, err := (Options{}).prepare(); err == nil {
		t.Fatalf("nil config should fail")
	}
}
