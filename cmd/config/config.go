package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const _envPrefix = "posbridge_server"

var configDir = pflag.String("config-dir", "config", "directory holding server.yaml")

var loadConfigOnce sync.Once
var configInstance AppConfig

// LoadConfig reads the process wide configuration once. It panics on a
// missing or unreadable file: the api cannot start without it.
func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		if !pflag.Parsed() {
			pflag.Parse()
		}

		cfg, err := Load(*configDir)
		if err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = cfg
	})

	return configInstance
}

// Load reads server.yaml from dir (and /config as a fallback). Every key can
// be overridden with POSBRIDGE_SERVER_<SECTION>_<KEY>.
func Load(dir string) (AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(_envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("server")
	v.AddConfigPath(dir)
	v.AddConfigPath("/config")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return AppConfig{}, err
	}

	return AppConfig{
		General: GeneralConfig{
			LogLevel:    v.GetString("general.log_level"),
			Environment: v.GetString("general.environment"),
		},
		HTTP: HTTPConfig{
			Port:           v.GetInt("http.port"),
			AllowedOrigins: v.GetStringSlice("http.allowed_origins"),
		},
		Postgresql: PostgresqlConfig{
			URL:          v.GetString("database.url"),
			DSN:          v.GetString("database.dsn"),
			QueryTimeout: v.GetDuration("database.query_timeout"),
		},
		Kafka: KafkaConfig{
			Brokers:           v.GetStringSlice("kafka.brokers"),
			SchemaRegistryURL: v.GetString("kafka.schema_registry_url"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		MQTTClient: MQTTClientConfig{
			Broker:      v.GetString("mqtt_client.broker"),
			ClientID:    v.GetString("mqtt_client.client_id"),
			Username:    v.GetString("mqtt_client.username"),
			Password:    v.GetString("mqtt_client.password"),
			TopicPrefix: v.GetString("mqtt_client.topic_prefix"),
		},
		Auth: AuthConfig{
			AgentJWTSecret: v.GetString("auth.agent_jwt_secret"),
			WebhookSecret:  v.GetString("auth.webhook_secret"),
		},
		Bridge: BridgeConfig{
			RequestTimeout: v.GetDuration("bridge.request_timeout"),
		},
		Agent: AgentConfig{
			MaxAttempts: v.GetInt("agent.max_attempts"),
		},
		SaleCommands: SaleCommandsConfig{
			TTL: v.GetDuration("sale_commands.ttl"),
		},
		Retention: RetentionConfig{
			SaleCommandTTL: v.GetDuration("retention.sale_command_ttl"),
			Schedule:       v.GetString("retention.schedule"),
		},
		Cache: CacheConfig{
			HealthTTL: v.GetDuration("cache.health_ttl"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.environment", "production")
	v.SetDefault("http.port", 3000)
	v.SetDefault("database.query_timeout", 5*time.Second)
	v.SetDefault("mqtt_client.client_id", "posbridge_server")
	v.SetDefault("mqtt_client.topic_prefix", "posbridge")
	v.SetDefault("bridge.request_timeout", 10*time.Second)
	v.SetDefault("agent.max_attempts", 5)
	v.SetDefault("sale_commands.ttl", 5*time.Minute)
	v.SetDefault("retention.sale_command_ttl", 24*time.Hour)
	v.SetDefault("retention.schedule", "@every 1h")
	v.SetDefault("cache.health_ttl", time.Minute)
}

type AppConfig struct {
	General      GeneralConfig
	HTTP         HTTPConfig
	Postgresql   PostgresqlConfig
	Kafka        KafkaConfig
	Redis        RedisConfig
	MQTTClient   MQTTClientConfig
	Auth         AuthConfig
	Bridge       BridgeConfig
	Agent        AgentConfig
	SaleCommands SaleCommandsConfig
	Retention    RetentionConfig
	Cache        CacheConfig
}

func (c AppConfig) IsLocal() bool {
	return c.General.Environment == "local"
}

type GeneralConfig struct {
	LogLevel    string
	Environment string
}

type HTTPConfig struct {
	Port           int
	AllowedOrigins []string
}

type PostgresqlConfig struct {
	URL          string
	DSN          string
	QueryTimeout time.Duration
}

// KafkaConfig leaves SchemaRegistryURL empty to publish plain avro bodies.
type KafkaConfig struct {
	Brokers           []string
	SchemaRegistryURL string
}

// RedisConfig is empty (no Addr) when the health cache stays in process.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MQTTClientConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

type AuthConfig struct {
	AgentJWTSecret string
	WebhookSecret  string
}

type BridgeConfig struct {
	RequestTimeout time.Duration
}

// AgentConfig.MaxAttempts caps claims per task; 0 disables the cap.
type AgentConfig struct {
	MaxAttempts int
}

type SaleCommandsConfig struct {
	TTL time.Duration
}

type RetentionConfig struct {
	SaleCommandTTL time.Duration
	Schedule       string
}

type CacheConfig struct {
	HealthTTL time.Duration
}
