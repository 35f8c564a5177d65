package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SERVER_PORT", "SERVER_HOST", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "APP_ENV",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_URL",
	"REDIS_ENABLED", "REDIS_URL", "REDIS_UNREAD_TTL",
	"JWT_SECRET", "JWT_TTL_HOURS", "JWT_ISSUER",
	"LOG_LEVEL",
}

func TestLoadConfig_DefaultBehavior(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	config := LoadConfig()

	require.NotNil(t, config)

	assert.Equal(t, "mysql", config.Database.Driver)
	assert.Equal(t, "localhost", config.Database.Host)
	assert.Equal(t, "3306", config.Database.Port)
	assert.Equal(t, "gomentor", config.Database.Username)
	assert.Equal(t, "gomentor123", config.Database.Password)
	assert.Equal(t, "gomentor", config.Database.DatabaseName)
	assert.Equal(t, 25, config.Database.MaxOpenConns)
	assert.Equal(t, 5, config.Database.MaxIdleConns)

	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 15, config.Server.ReadTimeout)
	assert.Equal(t, "development", config.Server.Environment)

	assert.False(t, config.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, config.UnreadTTL())

	assert.Equal(t, 24*time.Hour, config.TokenTTL())
	assert.Equal(t, "gomentor", config.Auth.Issuer)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig_WithEnvironmentOverrides(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	testEnvVars := map[string]string{
		"DB_DRIVER":        "POSTGRES",
		"DB_HOST":          "test-db-host",
		"DB_PORT":          "5433",
		"DB_USER":          "test-user",
		"SERVER_PORT":      "9090",
		"REDIS_ENABLED":    "true",
		"REDIS_UNREAD_TTL": "60",
		"JWT_TTL_HOURS":    "2",
		"LOG_LEVEL":        "DEBUG",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config := LoadConfig()

	assert.Equal(t, "postgres", config.Database.Driver)
	assert.Equal(t, "test-db-host", config.Database.Host)
	assert.Equal(t, "5433", config.Database.Port)
	assert.Equal(t, "test-user", config.Database.Username)
	assert.Equal(t, "9090", config.Server.Port)
	assert.True(t, config.Redis.Enabled)
	assert.Equal(t, time.Minute, config.UnreadTTL())
	assert.Equal(t, 2*time.Hour, config.TokenTTL())
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadConfig_ReadsDotEnvFile(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	createTestEnvFile(t)
	defer removeTestEnvFile()

	config := LoadConfig()

	assert.Equal(t, "from-dotenv", config.Database.DatabaseName)
	assert.Equal(t, "7000", config.Server.Port)
}

func TestDSN_Generation(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Driver:       "mysql",
			Host:         "test-host",
			Port:         "3307",
			Username:     "testuser",
			Password:     "testpass",
			DatabaseName: "testdb",
		},
	}

	dsn := config.DSN()
	expected := "testuser:testpass@tcp(test-host:3307)/testdb?charset=utf8mb4&parseTime=True&loc=UTC"
	assert.Equal(t, expected, dsn)
}

func TestDSN_WithEmptyHostPort(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Username:     "testuser",
			Password:     "testpass",
			DatabaseName: "testdb",
		},
	}

	dsn := config.DSN()
	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=True&loc=UTC"
	assert.Equal(t, expected, dsn)
}

func TestDSN_Postgres(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Driver:       "postgres",
			Host:         "pg",
			Port:         "3306",
			Username:     "u",
			Password:     "p",
			DatabaseName: "db",
			SSLMode:      "disable",
		},
	}

	assert.Equal(t, "host=pg port=5432 user=u password=p dbname=db sslmode=disable", config.DSN())
}

func TestDSN_SQLiteAndOverride(t *testing.T) {
	config := &Config{Database: DatabaseConfig{Driver: "sqlite"}}
	assert.Equal(t, ":memory:", config.DSN())

	config.Database.DatabaseName = "mentor.db"
	assert.Equal(t, "mentor.db", config.DSN())

	config.Database.URL = "file:other.db"
	assert.Equal(t, "file:other.db", config.DSN())
}

func TestGetEnvInt_HelperFunction(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvInt("TEST_INT", 10))

	t.Setenv("INVALID_INT", "not-a-number")
	assert.Equal(t, 10, getEnvInt("INVALID_INT", 10))

	assert.Equal(t, 100, getEnvInt("NON_EXISTENT_INT", 100))
}

func createTestEnvFile(t *testing.T) {
	content := `# Test .env file
DB_NAME=from-dotenv
SERVER_PORT=7000
`
	err := os.WriteFile(".env", []byte(content), 0644)
	require.NoError(t, err)
}

func removeTestEnvFile() {
	os.Remove(".env")
}

func clearTestEnvVars() {
	for _, key := range envKeys {
		os.Unsetenv(key)
	}
}
