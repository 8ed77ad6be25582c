// Package repomanager picks the storage backend from the database DSN and
// vends the user and feedback repositories bound to it.
package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/feedback"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Feedback() feedback.Repository
	RunMigrations(ctx context.Context) error
	Close(ctx context.Context) error
}

const (
	schemePostgres   = "postgres://"
	schemePostgreSQL = "postgresql://"
	schemeMongo      = "mongodb://"
	schemeMongoSRV   = "mongodb+srv://"
	schemeMemory     = "memory://"
)

// New opens the backend named by the DSN scheme. mongoDB is the database name
// used for mongodb:// DSNs and ignored otherwise.
func New(ctx context.Context, dsn string, mongoDB string) (RepositoryManager, error) {
	switch {
	case strings.HasPrefix(dsn, schemePostgres), strings.HasPrefix(dsn, schemePostgreSQL):
		return NewPostgresRepositoryManager(ctx, dsn)
	case strings.HasPrefix(dsn, schemeMongo), strings.HasPrefix(dsn, schemeMongoSRV):
		return NewMongoRepositoryManager(ctx, dsn, mongoDB)
	case strings.HasPrefix(dsn, schemeMemory):
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database dsn scheme: %q", redact(dsn))
	}
}

// redact keeps only the scheme so credentials never reach error messages.
func redact(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	return "..."
}
