//go:build integration

package testutil

import (
	"context"
	"time"

	pgrepo "github.com/Gunvolt24/calllog/internal/repo/postgres"
)

// ApplyMigrationsGoose — применяет встроенные миграции к базе контейнера.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := pgrepo.Migrate(ctx, dsn)
	return err
}
