package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
db:
  login: muskan
  password: from-yaml
  port: 5432
  database: muskan
  host: localhost
redis:
  addr: localhost:6379
es:
  addresses: ["http://localhost:9200"]
  index: products
kafka:
  brokers: ["localhost:9092"]
  topic: shop-events
  group_id: analytics-group
shop:
  name: Muskan Meat Shop
  whatsapp_number: "+977 9828913363"
  phones: ["9828913363", "9841194692"]
  address: Kathmandu 44600
cart:
  key_prefix: muskan-cart
  ttl: 720h
etl_search_timeout: 30s
inventory_cache_ttl: 1m
max_open_conns: 10
secret: yaml-secret
srv_port: ":8080"
analytics_port: ":8082"
session_duration: 24h
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	c, err := NewConfig(writeFile(t, "config.yaml", testConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-yaml", c.CfgDB.Password)
	assert.Equal(t, uint(5432), c.CfgDB.Port)
	assert.Equal(t, []string{"localhost:9092"}, c.CfgKafka.Brokers)
	assert.Equal(t, 720*time.Hour, c.CfgCart.TTL)
	assert.Equal(t, time.Minute, c.InventoryCacheTTL)
	assert.Equal(t, 24*time.Hour, c.SessionDuration)
	assert.Equal(t, []string{"9828913363", "9841194692"}, c.CfgShop.Phones)
	assert.Equal(t, "host=localhost port=5432 user=muskan password=from-yaml dbname=muskan sslmode=disable", c.CfgDB.DSN())
}

func TestNewConfig_EnvOverridesYAML(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("SESSION_SECRET", "env-secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CART_TTL", "2h")

	c, err := NewConfig(writeFile(t, "config.yaml", testConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.CfgDB.Password)
	assert.Equal(t, "env-secret", c.Secret)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.CfgKafka.Brokers)
	assert.Equal(t, 2*time.Hour, c.CfgCart.TTL)
	assert.Equal(t, "muskan", c.CfgDB.Login)
}

func TestNewConfig_MissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))

	path := writeFile(t, ".env", "MUSKAN_TEST_DOTENV=loaded\n")
	t.Setenv("MUSKAN_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("MUSKAN_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("MUSKAN_TEST_DOTENV"))
}
