package wire

import (
	"context"
	"log/slog"
	"time"

	"posbridge-server/cmd/config"
	"posbridge-server/internal/control_plane/communication"
	"posbridge-server/internal/control_plane/httpapi"
	"posbridge-server/internal/control_plane/persistence"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/async"
	"posbridge-server/internal/infra/cache"
	"posbridge-server/internal/infra/httpserver"
	"posbridge-server/internal/infra/mqtt"
	"posbridge-server/internal/infra/pubsub"
	"posbridge-server/internal/infra/sql"
)

const (
	_databaseOpenTimeout = 2 * time.Minute
	_retentionTick       = time.Minute
)

// ControlPlane holds everything the api binary serves or runs.
type ControlPlane struct {
	FiscalDevices   *httpapi.FiscalDeviceController
	AgentTasks      *httpapi.AgentTaskController
	Terminals       *httpapi.TerminalController
	DeviceHealth    *httpapi.DeviceHealthWebSocketController
	RetentionWorker *usecases.RetentionWorker
	Database        sql.ORM
	Cache           cache.Cache
}

func (c *ControlPlane) Controllers() []httpserver.Controller {
	return []httpserver.Controller{
		c.FiscalDevices,
		c.AgentTasks,
		c.Terminals,
		c.DeviceHealth,
	}
}

func (c *ControlPlane) Workers() []async.Worker {
	return []async.Worker{c.RetentionWorker}
}

// ReadinessChecks covers the stores every request depends on. The in-process
// cache has nothing to check.
func (c *ControlPlane) ReadinessChecks() map[string]httpserver.ReadinessCheck {
	checks := map[string]httpserver.ReadinessCheck{
		"database": c.Database.Ping,
	}
	if pinger, ok := c.Cache.(interface{ Ping(context.Context) error }); ok {
		checks["cache"] = pinger.Ping
	}
	return checks
}

func (c *ControlPlane) Shutdown() {
	c.DeviceHealth.Shutdown()
	for _, worker := range c.Workers() {
		worker.Shutdown()
	}
}

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideDatabase(cfg config.AppConfig) (sql.ORM, func(), error) {
	if cfg.IsLocal() {
		orm, err := sql.NewMemoryORM()
		if err != nil {
			return nil, nil, err
		}
		return orm, func() {}, nil
	}

	db := sql.NewPosgreDatabase(cfg.Postgresql.URL)
	ctx, cancel := context.WithTimeout(context.Background(), _databaseOpenTimeout)
	defer cancel()
	if err := db.Open(ctx); err != nil {
		return nil, nil, err
	}

	orm, err := sql.NewPosgreORM(cfg.Postgresql.DSN, cfg.Postgresql.QueryTimeout)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return orm, db.Close, nil
}

// provideCache shares health snapshots through redis when an address is
// configured and keeps them in process otherwise.
func provideCache(cfg config.AppConfig) (cache.Cache, error) {
	if cfg.Redis.Addr == "" {
		local, err := cache.New(nil)
		if err != nil {
			return nil, err
		}
		return local, nil
	}

	redisConfig := cache.DefaultRedisConfig()
	redisConfig.Addr = cfg.Redis.Addr
	redisConfig.Password = cfg.Redis.Password
	redisConfig.DB = cfg.Redis.DB

	shared, err := cache.NewRedisCache(redisConfig)
	if err != nil {
		return nil, err
	}
	return shared, nil
}

func provideDeviceHealthCacheConfig(cfg config.AppConfig, backend cache.Cache) *persistence.DeviceHealthCacheConfig {
	cacheConfig := persistence.DefaultDeviceHealthCacheConfig()
	cacheConfig.Cache = backend
	if cfg.Cache.HealthTTL > 0 {
		cacheConfig.TTL = cfg.Cache.HealthTTL
	}
	return cacheConfig
}

func providePublisherFactory(cfg config.AppConfig) pubsub.PublisherFactory {
	return pubsub.NewPublisherFactory(pubsub.FactoryOptions{
		Environment:       cfg.General.Environment,
		KafkaBrokers:      cfg.Kafka.Brokers,
		SchemaRegistryURL: cfg.Kafka.SchemaRegistryURL,
	})
}

// provideTaskNotifier never fails: agents poll anyway, so a missing broker
// only delays pickup.
func provideTaskNotifier(cfg config.AppConfig) (usecases.TaskNotifier, func()) {
	if cfg.MQTTClient.Broker == "" {
		slog.Info("mqtt broker not configured, agents rely on polling")
		return communication.NoopTaskNotifier{}, func() {}
	}

	client, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
		Broker:   cfg.MQTTClient.Broker,
		ClientID: cfg.MQTTClient.ClientID,
		Username: cfg.MQTTClient.Username,
		Password: cfg.MQTTClient.Password, //pragma: allowlist secret
	})
	if err != nil {
		slog.Warn("mqtt broker unavailable, agents rely on polling", slog.String("error", err.Error()))
		return communication.NoopTaskNotifier{}, func() {}
	}

	return communication.NewMQTTTaskNotifier(client, cfg.MQTTClient.TopicPrefix), client.Disconnect
}

func provideAtolClientConfig(cfg config.AppConfig) communication.AtolClientConfig {
	return communication.AtolClientConfig{RequestTimeout: cfg.Bridge.RequestTimeout}
}

func provideAgentTaskServiceConfig(cfg config.AppConfig) usecases.AgentTaskServiceConfig {
	return usecases.AgentTaskServiceConfig{MaxAttempts: cfg.Agent.MaxAttempts}
}

func provideSaleCommandServiceConfig(cfg config.AppConfig) usecases.SaleCommandServiceConfig {
	return usecases.SaleCommandServiceConfig{TTL: cfg.SaleCommands.TTL}
}

func provideRetentionConfig(cfg config.AppConfig) usecases.RetentionConfig {
	return usecases.RetentionConfig{
		TTL:      cfg.Retention.SaleCommandTTL,
		Schedule: cfg.Retention.Schedule,
	}
}

func provideRetentionTicker() *time.Ticker {
	return time.NewTicker(_retentionTick)
}

func provideAgentTaskController(cfg config.AppConfig, tasks usecases.AgentTaskService) *httpapi.AgentTaskController {
	return httpapi.NewAgentTaskController(tasks, []byte(cfg.Auth.AgentJWTSecret))
}

func provideTerminalController(
	cfg config.AppConfig,
	terminals usecases.TerminalService,
	saleCommands usecases.SaleCommandService,
) *httpapi.TerminalController {
	return httpapi.NewTerminalController(terminals, saleCommands, cfg.Auth.WebhookSecret)
}
