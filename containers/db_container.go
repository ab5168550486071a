package containers

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16.3-alpine"
	votesDB       = "votes"
	votesUser     = "votes"
	votesPassword = "secret"
)

// DBContainer is a vote ledger database created from schema/schema.sql.
type DBContainer struct {
	container *postgres.PostgresContainer
}

func NewDBContainer() *DBContainer {
	container, err := postgres.Run(context.Background(),
		imageFromEnv("TEST_POSTGRES_IMAGE", postgresImage),
		postgres.WithDatabase(votesDB),
		postgres.WithUsername(votesUser),
		postgres.WithPassword(votesPassword),
		postgres.WithInitScripts(filepath.Join("..", "schema", "schema.sql")),
		// postgres logs "ready" once for the init run and again for the real server
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}
	return &DBContainer{container: container}
}

func (c *DBContainer) Shutdown() {
	terminate("postgres", c.container)
}

// ConnectionString points at the votes database with TLS off.
func (c *DBContainer) ConnectionString() string {
	connStr, err := c.container.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		log.Fatalf("error getting postgres connection string: %v", err)
	}
	return connStr
}

// Reset removes every recorded vote so a test starts from an empty ledger.
func (c *DBContainer) Reset(ctx context.Context) error {
	code, out, err := c.container.Exec(ctx, []string{
		"psql", "-U", votesUser, "-d", votesDB, "-v", "ON_ERROR_STOP=1", "-c", "TRUNCATE votes",
	})
	if err != nil {
		return fmt.Errorf("error truncating votes: %w", err)
	}
	if code != 0 {
		msg, _ := io.ReadAll(out)
		return fmt.Errorf("error truncating votes: psql exited with %d: %s", code, msg)
	}
	return nil
}
