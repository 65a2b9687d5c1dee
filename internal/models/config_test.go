package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	viper.Reset()
	origHome, origEnvFiles := homeDir, envFiles
	homeDir = func() (string, error) { return dir, nil }
	envFiles = nil
	t.Cleanup(func() {
		homeDir = origHome
		envFiles = origEnvFiles
		viper.Reset()
	})
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, MenuSourceConfig, cfg.MenuSource)
	assert.Equal(t, OutputNone, cfg.OutputDestination)
	assert.Equal(t, TopicOrderParsed, cfg.KafkaTopic)
	assert.Equal(t, CloudProviderLocal, cfg.CloudStorage.Provider)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, DefaultMenuEntries(), cfg.Menu)
}

func TestLoadConfig_YAMLMenu(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "menu.yaml")
	writeFile(t, path, `
output_destination: console
log_level: debug
menu:
  - time_of_day: morning
    slot: entree
    name: pancakes
    rule: single
  - time_of_day: Morning
    slot: 3
    name: tea
    rule: MULTIPLE
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, OutputConsole, cfg.OutputDestination)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []MenuEntry{
		{TimeOfDay: Morning, Slot: Entree, Name: "pancakes", Rule: Single},
		{TimeOfDay: Morning, Slot: Drink, Name: "tea", Rule: Multiple},
	}, cfg.Menu)

	data, err := cfg.MenuData()
	require.NoError(t, err)
	assert.Len(t, data, 2)
}

func TestLoadConfig_HomeFile(t *testing.T) {
	dir := isolateConfig(t)
	writeFile(t, filepath.Join(dir, ".foodorder.yaml"), "output_destination: parquet\noutput_folder: parsed\n")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, OutputParquet, cfg.OutputDestination)
	assert.Equal(t, "parsed", cfg.OutputFolder)
}

func TestLoadConfig_JSONDatabase(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{
  "menu_source": "postgres",
  "database": {"host": "db", "port": "6543", "user": "orders", "password": "secret", "dbname": "menu", "sslmode": "require"}
}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, MenuSourcePostgres, cfg.MenuSource)
	assert.Equal(t, "host=db port=6543 user=orders password=secret dbname=menu sslmode=require", cfg.Database.ConnString())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown output", content: "output_destination: printer\n"},
		{name: "unknown menu source", content: "menu_source: csv\n"},
		{name: "unknown time of day", content: "menu:\n  - time_of_day: brunch\n    slot: entree\n    name: eggs\n    rule: single\n"},
		{name: "unknown rule", content: "menu:\n  - time_of_day: night\n    slot: entree\n    name: steak\n    rule: twice\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolateConfig(t)
			path := filepath.Join(dir, "config.yaml")
			writeFile(t, path, tt.content)

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	dir := isolateConfig(t)

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_Environment(t *testing.T) {
	isolateConfig(t)
	t.Setenv("FOODORDER_OUTPUT_DESTINATION", "kafka")
	t.Setenv("FOODORDER_KAFKA_BROKER_LIST", "broker-1:9092,broker-2:9092")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, OutputKafka, cfg.OutputDestination)
	assert.Equal(t, "broker-1:9092,broker-2:9092", cfg.KafkaBrokerList)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "FOODORDER_KAFKA_TOPIC=from_dotenv\nFOODORDER_OUTPUT_FOLDER=from_dotenv\n")
	envFiles = []string{filepath.Join(dir, "missing.env"), path}

	t.Setenv("FOODORDER_OUTPUT_FOLDER", "from_env")
	t.Cleanup(func() { os.Unsetenv("FOODORDER_KAFKA_TOPIC") })

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "from_dotenv", cfg.KafkaTopic)
	assert.Equal(t, "from_env", cfg.OutputFolder)
}

func TestLoadConfig_RedisOutput(t *testing.T) {
	isolateConfig(t)
	t.Setenv("FOODORDER_OUTPUT_DESTINATION", OutputRedis)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, int64(10000), cfg.Redis.StreamMaxLen)
}
