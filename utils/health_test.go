package utils

import (
	"context"
	"errors"
	"testing"
)

func TestRunHealthChecks(t *testing.T) {
	status := RunHealthChecks(context.Background(), map[string]HealthCheck{
		"mongo": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})

	if !status.Services["mongo"] || status.Services["redis"] {
		t.Fatalf("unexpected services: %+v", status.Services)
	}
	if status.Healthy() {
		t.Fatal("expected unhealthy snapshot")
	}
	if got := GetHealthStatus(); got.CheckedAt != status.CheckedAt {
		t.Fatal("snapshot was not stored")
	}
}
