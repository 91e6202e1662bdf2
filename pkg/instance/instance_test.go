package instance

import "testing"

func TestGetIDPrefersEnv(t *testing.T) {
	t.Setenv("WORKER_ID", " cron-1 ")
	if got := GetID(); got != "cron-1" {
		t.Fatalf("expected cron-1, got %q", got)
	}
}

func TestGetIDFallsBack(t *testing.T) {
	t.Setenv("WORKER_ID", "")
	if got := GetID(); got == "" {
		t.Fatal("expected a non-empty id")
	}
}
