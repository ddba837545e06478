// Package database mantiene la conexión Redis que respalda el nivel L2 del
// caché de consultas y el almacén de preferencias de vista. El gateway no es
// dueño de ninguna persistencia de inventario; Redis aquí es solo memoria
// compartida entre instancias.
package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// connectTimeout tiempo máximo para el ping de verificación inicial
const connectTimeout = 5 * time.Second

type RedisDB struct {
	Client *redis.Client
}

// Stats resumen compacto del estado de Redis para el health check
type Stats struct {
	Keys     int64  `json:"keys"`
	MemoryMB string `json:"memory_mb"`
}

// NewRedisDB abre y verifica la conexión. La URL usa el formato
// redis://[:password@]host:port/db; una contraseña explícita pisa la de la URL.
func NewRedisDB(url, password string, db int, logger *zap.Logger) (*RedisDB, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if password != "" {
		opt.Password = password
	}
	opt.DB = db

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info("Redis connection established",
		zap.String("addr", opt.Addr),
		zap.Int("db", db),
	)

	return &RedisDB{Client: client}, nil
}

func (r *RedisDB) Close() error {
	return r.Client.Close()
}

func (r *RedisDB) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// GetStats devuelve el total de claves y la memoria usada, parseada de la
// sección memory de INFO
func (r *RedisDB) GetStats(ctx context.Context) (Stats, error) {
	keys, err := r.Client.DBSize(ctx).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get Redis key count: %w", err)
	}

	info, err := r.Client.Info(ctx, "memory").Result()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get Redis memory info: %w", err)
	}

	return Stats{Keys: keys, MemoryMB: parseUsedMemoryMB(info)}, nil
}

// parseUsedMemoryMB extrae used_memory (bytes) de la salida de INFO memory
func parseUsedMemoryMB(info string) string {
	for _, line := range strings.Split(info, "\r\n") {
		if !strings.HasPrefix(line, "used_memory:") {
			continue
		}
		raw := strings.TrimPrefix(line, "used_memory:")
		bytes, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			break
		}
		return fmt.Sprintf("%.2f", float64(bytes)/1024/1024)
	}
	return "0.00"
}
