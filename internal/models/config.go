package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a libpq style connection string for pgx.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// OrderTTL expires stored orders; zero keeps them.
	OrderTTL time.Duration `mapstructure:"order_ttl"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type PricingConfig struct {
	DeliveryFee         float64 `mapstructure:"delivery_fee"`
	PlatformFee         float64 `mapstructure:"platform_fee"`
	TaxRate             float64 `mapstructure:"tax_rate"`
	Discount            float64 `mapstructure:"discount"`
	StrictCustomization bool    `mapstructure:"strict_customization"`
}

type TrackingConfig struct {
	PreparingAfter      time.Duration `mapstructure:"preparing_after"`
	OutForDeliveryAfter time.Duration `mapstructure:"out_for_delivery_after"`
	ReachedAfter        time.Duration `mapstructure:"reached_after"`
	DeliveredAfter      time.Duration `mapstructure:"delivered_after"`
	TickInterval        time.Duration `mapstructure:"tick_interval"`
	Live                bool          `mapstructure:"live"` // run a background tracker per placed order
}

type Config struct {
	Seed                 int64       `mapstructure:"seed"`
	HTTPAddr             string      `mapstructure:"http_addr"`
	Preferences          Preferences `mapstructure:"preferences"`
	GeneratedRestaurants int         `mapstructure:"generated_restaurants"`

	// memory | postgres
	CatalogStore string `mapstructure:"catalog_store"`
	// memory | postgres | redis
	OrderStore string         `mapstructure:"order_store"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`

	Pricing  PricingConfig  `mapstructure:"pricing"`
	Tracking TrackingConfig `mapstructure:"tracking"`

	KafkaEnabled      bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList   string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs  int    `mapstructure:"session_timeout_ms"`
	RabbitMQEnabled   bool   `mapstructure:"rabbitmq_enabled"`
	RabbitMQURL       string `mapstructure:"rabbitmq_url"`
	RabbitMQExchange  string `mapstructure:"rabbitmq_exchange"`
	OutputFormat      string `mapstructure:"output_format"` // json | csv | parquet
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`
	OutputDestination string `mapstructure:"output_destination"` // local | cloud

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("seed", 42)
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("preferences.veg_mode", false)
	v.SetDefault("preferences.theme", string(ThemeSystem))
	v.SetDefault("generated_restaurants", 0)
	v.SetDefault("catalog_store", "memory")
	v.SetDefault("order_store", "memory")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "fooddash")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("pricing.delivery_fee", 2.99)
	v.SetDefault("pricing.platform_fee", 1.99)
	v.SetDefault("pricing.tax_rate", 0.08875)
	v.SetDefault("pricing.discount", 0)
	v.SetDefault("pricing.strict_customization", true)
	v.SetDefault("tracking.preparing_after", "3s")
	v.SetDefault("tracking.out_for_delivery_after", "8s")
	v.SetDefault("tracking.reached_after", "14s")
	v.SetDefault("tracking.delivered_after", "18s")
	v.SetDefault("tracking.tick_interval", "250ms")
	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("rabbitmq_exchange", "fooddash_events")
	v.SetDefault("output_folder", "events")
	v.SetDefault("output_destination", "local")
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match
	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (cfg *Config) Validate() error {
	switch cfg.CatalogStore {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unsupported catalog store %q", cfg.CatalogStore)
	}
	switch cfg.OrderStore {
	case "memory", "postgres", "redis":
	default:
		return fmt.Errorf("unsupported order store %q", cfg.OrderStore)
	}
	switch cfg.Preferences.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return fmt.Errorf("unsupported theme %q", cfg.Preferences.Theme)
	}
	if cfg.Pricing.TaxRate < 0 || cfg.Pricing.DeliveryFee < 0 || cfg.Pricing.PlatformFee < 0 || cfg.Pricing.Discount < 0 {
		return errors.New("pricing values must not be negative")
	}
	return nil
}
