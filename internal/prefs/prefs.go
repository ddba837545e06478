// Package prefs persiste preferencias de vista del dashboard (períodos
// de tendencia, configuración de reportes). Las fallas se tragan: una
// preferencia que no se pudo guardar nunca rompe la vista.
package prefs

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Claves conocidas. Los handlers validan contra esta lista para no
// convertir el store en un key-value arbitrario.
const (
	KeyDashboardTrendPeriod = "dashboard-trend-period"
	KeyCOGSPeriod           = "cogs-period-setting"
	KeyCOGSTrendSettings    = "cogs-trend-settings"
)

// KnownKey indica si la clave es una preferencia soportada
func KnownKey(key string) bool {
	switch key {
	case KeyDashboardTrendPeriod, KeyCOGSPeriod, KeyCOGSTrendSettings:
		return true
	}
	return false
}

// Store lectura y escritura de preferencias
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

const redisPrefix = "prefs:"

// redisStore implementa Store sobre Redis, sin TTL
type redisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore crea un Store respaldado por Redis
func NewRedisStore(client *redis.Client, logger *zap.Logger) Store {
	return &redisStore{client: client, logger: logger}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.client.Get(ctx, redisPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Error leyendo preferencia",
				zap.String("key", key),
				zap.Error(err))
		}
		return "", false
	}
	return value, true
}

func (s *redisStore) Set(ctx context.Context, key, value string) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.client.Set(ctx, redisPrefix+key, value, 0).Err(); err != nil {
		s.logger.Warn("Error guardando preferencia",
			zap.String("key", key),
			zap.Error(err))
	}
}

// memoryStore implementa Store en memoria, para tests y para correr
// sin Redis
type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore crea un Store en memoria
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *memoryStore) Set(_ context.Context, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
