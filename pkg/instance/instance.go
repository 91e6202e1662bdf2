package instance

import (
	"os"
	"strings"
)

// GetID names this process for lock ownership and logs. WORKER_ID wins, then
// the hostname, then a fixed fallback.
func GetID() string {
	if id := strings.TrimSpace(os.Getenv("WORKER_ID")); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "bidboard-worker"
}
