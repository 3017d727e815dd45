package store

import (
	"context"
	"fmt"
	"strings"
)

// DefaultURL is the database used when the environment names none.
const DefaultURL = "mongodb://localhost/crud-api"

// urlEnvKeys are checked in order by URLFromEnv. The MongoLab and MongoHQ
// variables are the ones hosting add-ons set.
var urlEnvKeys = []string{"DATABASE_URL", "MONGODB_URI", "MONGOLAB_URI", "MONGOHQ_URL"}

// URLFromEnv returns the first database URL set in the environment, or
// DefaultURL.
func URLFromEnv(getenv func(string) string) string {
	for _, key := range urlEnvKeys {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return DefaultURL
}

// Open creates a Store for the backend named by the scheme of rawURL.
//
// Supported schemes:
//
//	mongodb://, mongodb+srv://  - MongoDB
//	postgres://, postgresql://  - PostgreSQL (JSONB documents table)
//	sqlite://<path>, file:<path> - SQLite database file
//	memory://                   - in-memory (ephemeral, for testing)
func Open(ctx context.Context, rawURL string) (Store, error) {
	scheme, rest, _ := strings.Cut(rawURL, ":")
	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return NewMongoStore(ctx, rawURL)
	case "postgres", "postgresql":
		return NewPostgresStore(ctx, rawURL)
	case "sqlite":
		return NewSqliteStore(ctx, strings.TrimPrefix(rest, "//"))
	case "file":
		return NewSqliteStore(ctx, rawURL)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: mongodb, postgres, sqlite, file, memory)", ErrUnsupportedScheme, scheme)
	}
}

// Redact hides the password in a connection string so it can be logged.
func Redact(rawURL string) string {
	const marker = "://"
	start := strings.Index(rawURL, marker)
	if start < 0 {
		return rawURL
	}
	start += len(marker)
	end := strings.Index(rawURL[start:], "@")
	if end < 0 {
		return rawURL
	}
	creds := rawURL[start : start+end]
	if user, _, ok := strings.Cut(creds, ":"); ok {
		return rawURL[:start] + user + ":***" + rawURL[start+end:]
	}
	return rawURL
}
