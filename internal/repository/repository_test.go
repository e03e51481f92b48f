package repository_test

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres runs a disposable postgres with every up migration applied.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	scripts, err := filepath.Glob("../migrations/*.up.sql")
	if err != nil {
		return nil, "", fmt.Errorf("filepath.Glob: %w", err)
	}

	pc, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithDatabase("shopcart"),
		postgres.WithInitScripts(scripts...),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := pc.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return pc, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return pc, connStr, nil
}
