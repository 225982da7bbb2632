package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Equal(t, "OrderAdmin", cfg.System.Appid)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 1899, cfg.Web.Port)
}

func TestLoadConfigFile(t *testing.T) {
	raw := []byte(`
system:
  appid: OrderAdmin
  workdir: /tmp/orderadmin-test
web:
  host: 127.0.0.1
  port: 2899
database:
  type: postgres
  host: db.local
  port: 5433
  name: orders
`)
	path := filepath.Join(t.TempDir(), "orderadmin.yml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg := LoadConfig(path)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 2899, cfg.Web.Port)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "orders", cfg.Database.Name)
	// unset logger filename falls back under the workdir
	assert.Equal(t, filepath.Join("/tmp/orderadmin-test", "orderadmin.log"), cfg.Logger.Filename)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orderadmin.yml")
	require.NoError(t, os.WriteFile(path, []byte("web:\n  port: 2899\n"), 0o644))

	t.Setenv("ORDERADMIN_WEB_PORT", "3899")
	t.Setenv("ORDERADMIN_DB_NAME", "orders_env")

	cfg := LoadConfig(path)
	assert.Equal(t, 3899, cfg.Web.Port)
	assert.Equal(t, "orders_env", cfg.Database.Name)
}
