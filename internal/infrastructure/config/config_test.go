package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("fills empty config with defaults", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)

		assert.Equal(t, "beamworkflow-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "beamworkflow", cfg.Database.DBName)
		assert.Equal(t, 24*time.Hour, cfg.JWT.TokenExpiration)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Equal(t, "./data/images", cfg.Storage.LocalDir)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := &Config{}
		cfg.App.Port = "9090"
		cfg.Log.Level = "debug"
		applyDefaults(cfg)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("valid defaults pass", func(t *testing.T) {
		require.NoError(t, base().validate())
	})

	t.Run("rejects idle conns exceeding open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxOpenConns = 5
		cfg.Database.MaxIdleConns = 10
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects unknown storage driver", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Driver = "ftp"
		assert.Error(t, cfg.validate())
	})

	t.Run("s3 driver requires bucket", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Driver = "s3"
		assert.Error(t, cfg.validate())

		cfg.Storage.Bucket = "images"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		assert.Error(t, cfg.validate())

		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production rejects wildcard cors origin", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDSN(t *testing.T) {
	t.Run("builds postgres url", func(t *testing.T) {
		d := &DatabaseConfig{
			Host:     "db.internal",
			Port:     5432,
			User:     "beam",
			Password: "pw",
			DBName:   "beamworkflow",
			SSLMode:  "disable",
		}
		assert.Equal(t, "postgres://beam:pw@db.internal:5432/beamworkflow?sslmode=disable", d.DSN())
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		d := &DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "beam",
			Password: "p@ss/word",
			DBName:   "beamworkflow",
			SSLMode:  "disable",
		}
		assert.Contains(t, d.DSN(), "p%40ss%2Fword")
	})
}
