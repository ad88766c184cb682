// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// mockService fails maxFails times, then runs until canceled.
type mockService struct {
	name       string
	maxFails   int32
	startCount atomic.Int32
}

func (m *mockService) Serve(ctx context.Context) error {
	if n := m.startCount.Add(1); n <= m.maxFails {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string {
	return m.name
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSupervisorTreeConstruction(t *testing.T) {
	tests := []struct {
		name string
		in   TreeConfig
		want TreeConfig
	}{
		{
			name: "zero config gets defaults",
			in:   TreeConfig{},
			want: DefaultTreeConfig(),
		},
		{
			name: "explicit values are kept",
			in:   TreeConfig{FailureThreshold: 2, FailureDecay: 5, FailureBackoff: time.Second, ShutdownTimeout: 3 * time.Second},
			want: TreeConfig{FailureThreshold: 2, FailureDecay: 5, FailureBackoff: time.Second, ShutdownTimeout: 3 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := NewSupervisorTree(quietLogger(), tt.in)
			if err != nil {
				t.Fatalf("failed to create tree: %v", err)
			}
			if tree.Root() == nil {
				t.Fatal("root supervisor should not be nil")
			}
			if tree.config != tt.want {
				t.Errorf("config = %+v, want %+v", tree.config, tt.want)
			}
		})
	}
}

func TestSupervisorTreeLifecycle(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureBackoff:  50 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}

	janitor := &mockService{name: "mock-janitor"}
	server := &mockService{name: "mock-http"}
	tree.AddMaintenanceService(janitor)
	tree.AddAPIService(server)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err = <-tree.ServeBackground(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected error: %v", err)
	}
	if janitor.startCount.Load() != 1 {
		t.Errorf("maintenance service started %d times, want 1", janitor.startCount.Load())
	}
	if server.startCount.Load() != 1 {
		t.Errorf("api service started %d times, want 1", server.startCount.Load())
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport: %v", err)
	}
	if len(report) != 0 {
		t.Errorf("expected all services to stop, got %d unstopped", len(report))
	}
}

func TestSupervisorTreeRestartsFailedService(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}

	flaky := &mockService{name: "flaky", maxFails: 2}
	steady := &mockService{name: "steady"}
	tree.AddMaintenanceService(flaky)
	tree.AddAPIService(steady)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	<-tree.ServeBackground(ctx)

	if got := flaky.startCount.Load(); got < 3 {
		t.Errorf("flaky service started %d times, want at least 3", got)
	}
	if got := steady.startCount.Load(); got != 1 {
		t.Errorf("sibling layer restarted: started %d times, want 1", got)
	}
}
