package main

import (
	"os"
	"testing"

	"volumeapi/db"
)

func TestMigrationsSource_EnvOverride(t *testing.T) {
	os.Setenv("MIGRATIONS_DIR", "/custom/migrations")
	t.Cleanup(func() { _ = os.Unsetenv("MIGRATIONS_DIR") })

	fsys, dir := migrationsSource()
	if fsys != nil {
		t.Fatal("expected on-disk migrations when MIGRATIONS_DIR is set")
	}
	if dir != "/custom/migrations" {
		t.Fatalf("expected MIGRATIONS_DIR override, got %q", dir)
	}
}

func TestMigrationsSource_DefaultIsEmbedded(t *testing.T) {
	_ = os.Unsetenv("MIGRATIONS_DIR")

	fsys, dir := migrationsSource()
	if fsys == nil {
		t.Fatal("expected embedded migrations by default")
	}
	if dir != db.MigrationsDir {
		t.Fatalf("expected embedded migrations dir, got %q", dir)
	}
}

func TestRun_CreateRequiresName(t *testing.T) {
	if err := run("create", "", ""); err == nil {
		t.Fatal("expected create without name to fail")
	}
}
