package models

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var homeDir = os.UserHomeDir

// envFiles are dotenv files consulted before the environment is read; the
// first one present is loaded.
var envFiles = []string{".env"}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ConnString renders the config as a libpq keyword/value connection string.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	StreamMaxLen int64  `mapstructure:"stream_max_len"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	MenuSource        string             `mapstructure:"menu_source"`
	Menu              []MenuEntry        `mapstructure:"menu"`
	Database          DatabaseConfig     `mapstructure:"database"`
	OutputDestination string             `mapstructure:"output_destination"`
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	KafkaBrokerList   string             `mapstructure:"kafka_broker_list"`
	KafkaTopic        string             `mapstructure:"kafka_topic"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
	Redis             RedisConfig        `mapstructure:"redis"`
	MetricsFile       string             `mapstructure:"metrics_file"`
	LogLevel          string             `mapstructure:"log_level"`
	LogFormat         string             `mapstructure:"log_format"`
	Seed              int64              `mapstructure:"seed"`
	GenerateCount     int                `mapstructure:"generate_count"`
}

func setDefaults() {
	viper.SetDefault("menu_source", MenuSourceConfig)
	viper.SetDefault("output_destination", OutputNone)
	viper.SetDefault("output_path", ".")
	viper.SetDefault("output_folder", "output")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("kafka_topic", TopicOrderParsed)
	viper.SetDefault("cloud_storage.provider", CloudProviderLocal)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.stream_max_len", 10000)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "console")
	viper.SetDefault("seed", 42)
	viper.SetDefault("generate_count", 10)
}

// LoadConfig initializes and reads the configuration using Viper. Without an
// explicit file a missing $HOME/.foodorder.yaml is not an error.
func LoadConfig(cfgFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := homeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".foodorder")
	}

	viper.SetEnvPrefix("foodorder")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			menuEnumHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if len(config.Menu) == 0 {
		config.Menu = DefaultMenuEntries()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// loadEnvFile exports the variables of the first existing dotenv file.
// Variables already set in the process environment are left untouched.
func loadEnvFile() error {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("error loading %s: %w", path, err)
		}
		return nil
	}
	return nil
}

func (cfg *Config) Validate() error {
	switch cfg.MenuSource {
	case MenuSourceConfig, MenuSourcePostgres:
	default:
		return fmt.Errorf("unsupported menu source: %q", cfg.MenuSource)
	}

	switch cfg.OutputDestination {
	case OutputNone, OutputConsole, OutputKafka, OutputParquet, OutputPostgres, OutputRedis:
	default:
		return fmt.Errorf("unsupported output destination: %q", cfg.OutputDestination)
	}

	if cfg.OutputDestination == OutputKafka && cfg.KafkaBrokerList == "" {
		return errors.New("kafka_broker_list is required for kafka output")
	}
	if cfg.OutputDestination == OutputRedis && cfg.Redis.Address == "" {
		return errors.New("redis.address is required for redis output")
	}
	return nil
}

// MenuData builds the menu declared in the config file.
func (cfg *Config) MenuData() (MenuData, error) {
	return BuildMenuData(cfg.Menu)
}

// menuEnumHookFunc decodes names such as "morning", "entree" or "multiple"
// into the menu enums.
func menuEnumHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()

		switch t {
		case reflect.TypeOf(TimeOfDay(0)):
			if v, ok := ParseTimeOfDay(s); ok {
				return v, nil
			}
			return nil, fmt.Errorf("unknown time of day %q", s)
		case reflect.TypeOf(DishSlot(0)):
			if v, ok := ParseDishSlot(s); ok {
				return v, nil
			}
			return nil, fmt.Errorf("unknown dish slot %q", s)
		case reflect.TypeOf(OrderRule(0)):
			if v, ok := ParseOrderRule(s); ok {
				return v, nil
			}
			return nil, fmt.Errorf("unknown order rule %q", s)
		}
		return data, nil
	}
}
