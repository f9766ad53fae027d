package otel

import (
	"context"
	"testing"
)

func TestSetup_NoEndpointReturnsNoop(t *testing.T) {
	t.Setenv("PARTYKEEP_OTEL_ENDPOINT", "")

	shutdown, err := Setup(context.Background(), "client")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if shutdown == nil {
		t.Fatalf("shutdown func is nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestSetup_DisabledReturnsNoop(t *testing.T) {
	t.Setenv("PARTYKEEP_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("PARTYKEEP_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "client")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
