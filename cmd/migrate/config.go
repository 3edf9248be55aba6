package main

import (
	"io/fs"
	"os"

	"volumeapi/db"
)

// migrationsSource returns the filesystem and directory goose reads from. MIGRATIONS_DIR
// points it at a directory on disk instead of the migrations compiled into the binary.
func migrationsSource() (fs.FS, string) {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return nil, v
	}
	return db.Migrations, db.MigrationsDir
}
