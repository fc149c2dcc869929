package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	if c.Port == "8080" {
		assert.Equal(t, "0.0.0.0:8080", c.Address())
	}
	assert.Equal(t, "/media/", c.MediaURL)
	assert.Equal(t, 200*time.Millisecond, c.SlowQuery)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_TYPE", " Postgres ")
	t.Setenv("ACCEPTED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("READ_TIMEOUT", "5s")
	t.Setenv("DB_REPLICA_DSNS", "host=r1 dbname=blog;host=r2 dbname=blog")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", c.DBType)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AcceptedOrigins)
	assert.Equal(t, 5*time.Second, c.ReadTimeout)
	assert.Equal(t, []string{"host=r1 dbname=blog", "host=r2 dbname=blog"}, c.DBReplicaDSNs)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("WRITE_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestPostgresDSN(t *testing.T) {
	c := Config{DBType: "supa", DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "blog", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=blog port=5432 sslmode=require", c.PostgresDSN())

	c.DBType = "postgres"
	assert.Contains(t, c.PostgresDSN(), "sslmode=disable")
}
