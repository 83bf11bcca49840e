package docstore

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenBackendDrivers(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		cfg  Config
		want Driver
	}{
		{cfg: Config{Dir: t.TempDir()}, want: DriverFilesystem},
		{cfg: Config{Driver: DriverFilesystem, Dir: t.TempDir()}, want: DriverFilesystem},
		{cfg: Config{Driver: DriverMemory}, want: DriverMemory},
	}
	for _, tc := range cases {
		s, err := Open(ctx, tc.cfg)
		if err != nil {
			t.Fatalf("open %q: %v", tc.cfg.Driver, err)
		}
		if s.Driver() != tc.want {
			t.Fatalf("open %q: got %s", tc.cfg.Driver, s.Driver())
		}
	}
}

func TestOpenSQLite(t *testing.T) {
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "crm.db")})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if s.Driver() != DriverSQLite {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	ctx := context.Background()
	if err := Save(ctx, s, "rows.json", []row{{ID: 7}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	items, status, err := Load[row](ctx, s, "rows.json")
	if err != nil || status != StatusLoaded || len(items) != 1 || items[0].ID != 7 {
		t.Fatalf("unexpected load %v %s %v", items, status, err)
	}
}

func TestOpenS3RequiresBucket(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: DriverS3}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: "ftp"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestMockS3StoreRoundTrip(t *testing.T) {
	s := NewMockS3ForTests()
	ctx := context.Background()
	if err := Save(ctx, s, "rows.json", []row{{ID: 1, Name: "a"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	items, status, err := Load[row](ctx, s, "rows.json")
	if err != nil || status != StatusLoaded || len(items) != 1 {
		t.Fatalf("unexpected load %v %s %v", items, status, err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TAGCRM_DATA_DRIVER", " SQLite ")
	t.Setenv("TAGCRM_DATA_DIR", "")
	t.Setenv("TAGCRM_SQLITE_PATH", "/var/lib/tagcrm.db")
	t.Setenv("TAGCRM_POSTGRES_DSN", "postgres://crm@db/crm")
	t.Setenv("TAGCRM_S3_BUCKET", "crm-bucket")
	t.Setenv("TAGCRM_REDIS_ADDR", "cache:6379")
	cfg := ConfigFromEnv()
	if cfg.Driver != DriverSQLite {
		t.Fatalf("driver: %q", cfg.Driver)
	}
	if cfg.Dir != "./wwwroot/data" {
		t.Fatalf("dir default: %q", cfg.Dir)
	}
	if cfg.SQLitePath != "/var/lib/tagcrm.db" || cfg.PostgresDSN != "postgres://crm@db/crm" {
		t.Fatalf("unexpected paths %+v", cfg)
	}
	if cfg.S3.Bucket != "crm-bucket" || cfg.Redis.Addr != "cache:6379" {
		t.Fatalf("unexpected driver config %+v", cfg)
	}
}
