// Package containers starts the throwaway postgres and redis servers the
// integration tests run against.
package containers

import (
	"context"
	"log"
	"os"

	"github.com/testcontainers/testcontainers-go"
)

// imageFromEnv lets CI pin a mirrored image, e.g. TEST_POSTGRES_IMAGE.
func imageFromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func terminate(name string, c testcontainers.Container) {
	if err := c.Terminate(context.Background()); err != nil {
		log.Fatalf("error terminating %s container: %v", name, err)
	}
}
