package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheStats estadísticas del caché
type CacheStats struct {
	Hits          int64
	Misses        int64
	TotalRequests int64
	TotalKeys     int
}

// l1Entry valor serializado con su vencimiento en memoria local
type l1Entry struct {
	data      []byte
	expiresAt time.Time
}

// QueryCache caché multi-nivel para respuestas del API de inventario.
// Las claves llevan prefijo de grupo ("inventory:", "transactions:",
// "search:") para poder invalidar todo un grupo tras una escritura.
type QueryCache struct {
	// L1: Memoria local (más rápido)
	l1Cache map[string]l1Entry
	l1Mutex sync.RWMutex

	// L2: Redis (compartido entre instancias)
	redisClient *redis.Client

	maxL1Size int
	ttl       time.Duration

	logger *zap.Logger

	statsMutex sync.RWMutex
	hits       int64
	misses     int64
}

// NewQueryCache crea una nueva instancia del caché. redisClient puede
// ser nil: en ese caso solo opera el nivel L1.
func NewQueryCache(redisClient *redis.Client, maxL1Size int, ttl time.Duration, logger *zap.Logger) *QueryCache {
	qc := &QueryCache{
		l1Cache:     make(map[string]l1Entry),
		redisClient: redisClient,
		maxL1Size:   maxL1Size,
		ttl:         ttl,
		logger:      logger,
	}

	go qc.cleanupL1Cache()

	return qc
}

// GetStats retorna estadísticas del caché
func (qc *QueryCache) GetStats() CacheStats {
	qc.statsMutex.RLock()
	defer qc.statsMutex.RUnlock()

	qc.l1Mutex.RLock()
	totalKeys := len(qc.l1Cache)
	qc.l1Mutex.RUnlock()

	return CacheStats{
		Hits:          qc.hits,
		Misses:        qc.misses,
		TotalRequests: qc.hits + qc.misses,
		TotalKeys:     totalKeys,
	}
}

// Get busca una respuesta cacheada y la decodifica en out. Retorna
// false si no está en ningún nivel o si ya venció.
func (qc *QueryCache) Get(ctx context.Context, key string, out any) bool {
	start := time.Now()

	// 1. L1 (memoria local)
	if data := qc.getFromL1(key); data != nil {
		if err := json.Unmarshal(data, out); err == nil {
			qc.recordHit()
			qc.logger.Debug("L1 cache hit",
				zap.String("key", key),
				zap.Duration("latency", time.Since(start)))
			return true
		}
	}

	// 2. L2 (Redis)
	if data := qc.getFromL2(ctx, key); data != nil {
		if err := json.Unmarshal(data, out); err == nil {
			// Mover a L1 para futuras consultas
			qc.setToL1(key, data)
			qc.recordHit()
			qc.logger.Debug("L2 cache hit",
				zap.String("key", key),
				zap.Duration("latency", time.Since(start)))
			return true
		}
	}

	qc.recordMiss()
	qc.logger.Debug("Cache miss",
		zap.String("key", key),
		zap.Duration("latency", time.Since(start)))
	return false
}

// Set almacena una respuesta en ambos niveles. Los errores de Redis se
// registran y se ignoran: el caché nunca bloquea una lectura upstream.
func (qc *QueryCache) Set(ctx context.Context, key string, value any) {
	qc.SetWithTTL(ctx, key, value, qc.ttl)
}

// SetWithTTL igual que Set con un TTL propio (ej: typeahead corto)
func (qc *QueryCache) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		qc.logger.Warn("No se pudo serializar valor para caché",
			zap.String("key", key),
			zap.Error(err))
		return
	}

	qc.setToL1WithTTL(key, data, ttl)

	if qc.redisClient != nil {
		if err := qc.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
			qc.logger.Warn("Error escribiendo en Redis",
				zap.String("key", key),
				zap.Error(err))
		}
	}
}

// Invalidate elimina una clave puntual en ambos niveles
func (qc *QueryCache) Invalidate(ctx context.Context, key string) {
	qc.l1Mutex.Lock()
	delete(qc.l1Cache, key)
	qc.l1Mutex.Unlock()

	if qc.redisClient != nil {
		if err := qc.redisClient.Del(ctx, key).Err(); err != nil {
			qc.logger.Warn("Error invalidando clave en Redis",
				zap.String("key", key),
				zap.Error(err))
		}
	}
}

// InvalidateGroup elimina todas las claves de un grupo (prefijo). Se
// usa tras registrar una transacción: los listados y el resumen quedan
// desactualizados en bloque.
func (qc *QueryCache) InvalidateGroup(ctx context.Context, group string) {
	prefix := group + ":"

	qc.l1Mutex.Lock()
	for key := range qc.l1Cache {
		if strings.HasPrefix(key, prefix) {
			delete(qc.l1Cache, key)
		}
	}
	qc.l1Mutex.Unlock()

	if qc.redisClient == nil {
		return
	}

	iter := qc.redisClient.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		qc.logger.Warn("Error escaneando grupo en Redis",
			zap.String("group", group),
			zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := qc.redisClient.Del(ctx, keys...).Err(); err != nil {
			qc.logger.Warn("Error invalidando grupo en Redis",
				zap.String("group", group),
				zap.Error(err))
		}
	}
}

func (qc *QueryCache) recordHit() {
	qc.statsMutex.Lock()
	qc.hits++
	qc.statsMutex.Unlock()
}

func (qc *QueryCache) recordMiss() {
	qc.statsMutex.Lock()
	qc.misses++
	qc.statsMutex.Unlock()
}

// getFromL1 obtiene el valor serializado del L1, nil si venció
func (qc *QueryCache) getFromL1(key string) []byte {
	qc.l1Mutex.RLock()
	entry, ok := qc.l1Cache[key]
	qc.l1Mutex.RUnlock()

	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		qc.l1Mutex.Lock()
		delete(qc.l1Cache, key)
		qc.l1Mutex.Unlock()
		return nil
	}
	return entry.data
}

func (qc *QueryCache) setToL1(key string, data []byte) {
	qc.setToL1WithTTL(key, data, qc.ttl)
}

func (qc *QueryCache) setToL1WithTTL(key string, data []byte, ttl time.Duration) {
	qc.l1Mutex.Lock()
	defer qc.l1Mutex.Unlock()

	if len(qc.l1Cache) >= qc.maxL1Size {
		qc.evictOne()
	}

	qc.l1Cache[key] = l1Entry{data: data, expiresAt: time.Now().Add(ttl)}
}

// evictOne elimina una entrada arbitraria cuando el L1 está lleno
func (qc *QueryCache) evictOne() {
	for key := range qc.l1Cache {
		delete(qc.l1Cache, key)
		break
	}
}

// getFromL2 obtiene el valor serializado de Redis, nil si no está
func (qc *QueryCache) getFromL2(ctx context.Context, key string) []byte {
	if qc.redisClient == nil {
		return nil
	}
	data, err := qc.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

// cleanupL1Cache barre entradas vencidas del L1 periódicamente
func (qc *QueryCache) cleanupL1Cache() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		qc.l1Mutex.Lock()
		for key, entry := range qc.l1Cache {
			if now.After(entry.expiresAt) {
				delete(qc.l1Cache, key)
			}
		}
		qc.logger.Debug("L1 cache cleanup", zap.Int("items", len(qc.l1Cache)))
		qc.l1Mutex.Unlock()
	}
}

// Stats retorna estadísticas en formato para el endpoint de debug
func (qc *QueryCache) Stats() map[string]interface{} {
	stats := qc.GetStats()
	hitRate := 0.0
	if stats.TotalRequests > 0 {
		hitRate = float64(stats.Hits) / float64(stats.TotalRequests)
	}
	return map[string]interface{}{
		"hits":           stats.Hits,
		"misses":         stats.Misses,
		"total_requests": stats.TotalRequests,
		"total_keys":     stats.TotalKeys,
		"hit_rate":       hitRate,
	}
}
