package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/cache"
)

type DeviceHealthCacheConfig struct {
	Cache     cache.Cache
	KeyPrefix string
	TTL       time.Duration
}

func DefaultDeviceHealthCacheConfig() *DeviceHealthCacheConfig {
	return &DeviceHealthCacheConfig{
		KeyPrefix: "device_health:",
		TTL:       time.Minute,
	}
}

// NewDeviceHealthCache stores snapshots as JSON strings so the ristretto and
// redis backends hand back the same shape.
func NewDeviceHealthCache(config *DeviceHealthCacheConfig) (*SimpleDeviceHealthCache, error) {
	if config == nil {
		config = DefaultDeviceHealthCacheConfig()
	}
	if config.Cache == nil {
		return nil, fmt.Errorf("cache instance is required")
	}

	return &SimpleDeviceHealthCache{
		cache:     config.Cache,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}, nil
}

var _ usecases.DeviceHealthCache = (*SimpleDeviceHealthCache)(nil)

type SimpleDeviceHealthCache struct {
	cache     cache.Cache
	keyPrefix string
	ttl       time.Duration
}

func (s *SimpleDeviceHealthCache) Get(ctx context.Context, id domain.ID) (usecases.HealthSnapshot, bool) {
	value, found := s.cache.Get(ctx, s.key(id))
	if !found {
		return usecases.HealthSnapshot{}, false
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return usecases.HealthSnapshot{}, false
		}
		raw = data
	default:
		slog.Error("unexpected value type in health cache",
			slog.String("device_id", id.String()),
			slog.String("type", fmt.Sprintf("%T", value)))
		return usecases.HealthSnapshot{}, false
	}

	var snapshot usecases.HealthSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		slog.Error("failed to unmarshal device health from cache",
			slog.String("device_id", id.String()),
			slog.String("error", err.Error()))
		return usecases.HealthSnapshot{}, false
	}

	return snapshot, true
}

func (s *SimpleDeviceHealthCache) Set(ctx context.Context, snapshot usecases.HealthSnapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		slog.Error("failed to marshal device health",
			slog.String("device_id", snapshot.DeviceID.String()),
			slog.String("error", err.Error()))
		return
	}

	if !s.cache.Set(ctx, s.key(snapshot.DeviceID), string(data), s.ttl) {
		slog.Warn("device health not cached", slog.String("device_id", snapshot.DeviceID.String()))
	}
}

func (s *SimpleDeviceHealthCache) Delete(ctx context.Context, id domain.ID) {
	s.cache.Delete(ctx, s.key(id))
}

func (s *SimpleDeviceHealthCache) key(id domain.ID) string {
	return s.keyPrefix + id.String()
}
