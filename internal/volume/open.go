package volume

import (
	"context"
	"fmt"
	"strings"

	"volumeapi/internal/config"

	"github.com/sirupsen/logrus"
)

// Open connects to the store backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (Repository, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		logrus.Infof("connecting to mongo at %s", RedactDSN(cfg.MongoURI))
		return OpenMongoRepo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, cfg.StoreTimeout)
	case config.DriverPostgres:
		logrus.Infof("connecting to postgres at %s", RedactDSN(cfg.PostgresDSN))
		return OpenPostgresRepo(ctx, cfg.PostgresDSN, cfg.StoreTimeout)
	case config.DriverMemory:
		return NewMemoryRepo(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// RedactDSN hides the credentials of a URL-style connection string.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
