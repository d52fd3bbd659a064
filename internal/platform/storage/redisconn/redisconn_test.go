package redisconn

import (
	"context"
	"os"
	"testing"
)

func TestOpenRejectsInvalidURL(t *testing.T) {
	t.Parallel()

	tests := []string{"", "   ", "http://localhost:6379", "redis://:bad port"}
	for _, url := range tests {
		if _, err := Open(context.Background(), url); err == nil {
			t.Fatalf("Open(%q) expected error", url)
		}
	}
}

func TestOpenConnects(t *testing.T) {
	url := os.Getenv("TALENTHUB_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TALENTHUB_TEST_REDIS_URL not set")
	}
	client, err := Open(context.Background(), url)
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer client.Close()
}
