package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	c, err := Read(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, 168, c.TokenTTLHours)
	assert.Equal(t, 60, c.LeaderboardCacheSeconds)
	assert.Equal(t, 120, c.RotationLockTTLSeconds)
	assert.Equal(t, []string{"http://localhost:3000"}, c.AllowedOrigins)
	assert.Empty(t, c.JWTSecret)
}

func TestReadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	body := `{"app_port":"9000","db_driver":"SQLite","db_name":"dc","admin_usernames":["root"],"leaderboard_cache_seconds":15}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o600))

	t.Setenv("DC_JWT_SECRET", "from-env")
	t.Setenv("DC_APP_PORT", "9100")
	t.Setenv("DC_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	c, err := Read(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWTSecret)
	assert.Equal(t, "9100", c.AppPort, "environment wins over the file")
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, []string{"root"}, c.AdminUsernames)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.Equal(t, 15, c.LeaderboardCacheSeconds)
	assert.Equal(t, "dc.db", DSN(c))
}

func TestReadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0o600))
	_, err := Read(viper.New(), dir)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	base := AppConfig{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "n"}

	mysqlCfg := base
	mysqlCfg.DBDriver = "mysql"
	assert.Equal(t, "u:p@tcp(h:1)/n?charset=utf8mb4&parseTime=True&loc=UTC", DSN(mysqlCfg))

	pg := base
	pg.DBDriver = "postgres"
	assert.Contains(t, DSN(pg), "TimeZone=UTC")

	pg.DatabaseURI = "postgres://override"
	assert.Equal(t, "postgres://override", DSN(pg))
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open("sqlite", ":memory:", "silent")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("submissions"))
	assert.True(t, db.Migrator().HasIndex("submissions", "idx_user_challenge_submission"))

	_, err = Open("oracle", "", "silent")
	assert.Error(t, err)
}
